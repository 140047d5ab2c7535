package index

import (
	"encoding/json"
	"fmt"
)

// DecodeIndex parses filters.json contents (spec §6).
func DecodeIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return Index{}, fmt.Errorf("index: decode filters.json: %w", err)
	}
	return idx, nil
}

// DecodeIndexI18N parses filters_i18n.json contents (spec §6).
func DecodeIndexI18N(data []byte) (IndexI18N, error) {
	var idx IndexI18N
	if err := json.Unmarshal(data, &idx); err != nil {
		return IndexI18N{}, fmt.Errorf("index: decode filters_i18n.json: %w", err)
	}
	return idx, nil
}
