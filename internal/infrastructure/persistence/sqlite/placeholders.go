package sqlite

import "strings"

// placeholders returns "?, ?, ..." for n positional parameters, used to
// build IN (...) clauses database/sql has no native slice expansion for.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
