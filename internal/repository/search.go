package repository

import (
	"fmt"
	"sort"
	"strings"

	"go-shop-admin/internal/tabular"
)

// FieldMap whitelists the API field names a table may filter or sort on and
// maps them to SQL columns. Anything not in the map is ignored, never
// interpolated.
type FieldMap map[string]string

// whereClause builds the WHERE fragment and bind args for a search query.
// String filters match case-insensitively as substrings; other values match
// by equality. The global search term ORs a substring match across the
// query's global fields. Filter keys are applied in sorted order so the
// generated SQL is deterministic.
func whereClause(q tabular.Query, fields FieldMap, startArg int) (string, []any) {
	where := make([]string, 0, len(q.Filters)+1)
	args := make([]any, 0, len(q.Filters)+1)
	argIdx := startArg

	keys := make([]string, 0, len(q.Filters))
	for key := range q.Filters {
		if _, ok := fields[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		col := fields[key]
		value := q.Filters[key]

		if s, ok := value.(string); ok {
			where = append(where, fmt.Sprintf("%s ILIKE $%d", col, argIdx))
			args = append(args, "%"+strings.TrimSpace(s)+"%")
		} else {
			where = append(where, fmt.Sprintf("%s = $%d", col, argIdx))
			args = append(args, value)
		}
		argIdx++
	}

	if q.Global != nil && strings.TrimSpace(q.Global.Value) != "" {
		ors := make([]string, 0, len(q.Global.Fields))
		for _, field := range q.Global.Fields {
			col, ok := fields[field]
			if !ok {
				continue
			}
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, argIdx))
		}
		if len(ors) > 0 {
			where = append(where, "("+strings.Join(ors, " OR ")+")")
			args = append(args, "%"+strings.TrimSpace(q.Global.Value)+"%")
			argIdx++
		}
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

// orderClause builds the ORDER BY fragment from the query's first sort,
// falling back to the given default when the sort field is absent or not
// whitelisted.
func orderClause(q tabular.Query, fields FieldMap, fallback string) string {
	if len(q.Sorts) == 0 {
		return "ORDER BY " + fallback
	}

	s := q.Sorts[0]
	col, ok := fields[s.Field]
	if !ok {
		return "ORDER BY " + fallback
	}

	dir := "ASC"
	if s.Direction == tabular.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// clampPaging normalizes page/size and returns the LIMIT and OFFSET values.
func clampPaging(q tabular.Query) (limit int, offset int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size <= 0 {
		size = 10
	}
	if size > 200 {
		size = 200
	}
	return size, (page - 1) * size
}
