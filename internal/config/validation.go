package config

import "fmt"

// Validate checks invariants Load cannot express as plain defaults.
func Validate(cfg *Config) error {
	switch cfg.FilterListType {
	case FilterListTypeStandard, FilterListTypeDNS:
	default:
		return fmt.Errorf("config: invalid filter_list_type %q", cfg.FilterListType)
	}

	switch cfg.RequestProxyMode.Mode {
	case ProxyModeSystem, ProxyModeNone:
	case ProxyModeCustom:
		if cfg.RequestProxyMode.Addr == "" {
			return fmt.Errorf("config: request_proxy_mode is custom but addr is empty")
		}
	default:
		return fmt.Errorf("config: invalid request_proxy_mode %q", cfg.RequestProxyMode.Mode)
	}

	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout_ms must be positive")
	}
	if cfg.Updater.Parallelism <= 0 {
		return fmt.Errorf("config: updater.parallelism must be positive")
	}
	if cfg.Database.Path == "" {
		return fmt.Errorf("config: database.path must not be empty")
	}
	return nil
}
