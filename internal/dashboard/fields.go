package dashboard

import "go-shop-admin/internal/tabular"

func strField(row tabular.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func intField(row tabular.Row, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
