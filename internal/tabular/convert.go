package tabular

import "strings"

// TableEvent is the generic filter/sort/page snapshot a table emits when it
// needs data.
type TableEvent struct {
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	SortField     string         `json:"sortField,omitempty"`
	SortDirection Direction      `json:"sortDirection,omitempty"`
	Filters       map[string]any `json:"filters,omitempty"`
	GlobalValue   string         `json:"globalValue,omitempty"`
	GlobalFields  []string       `json:"globalFields,omitempty"`
}

// ConvertTableEvent maps a table event into the backend's search-parameter
// shape, merging in the global-search marker when a free-text term is
// present alongside per-column filters.
func ConvertTableEvent(ev TableEvent) Query {
	q := Query{Page: ev.Page, Size: ev.Size}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = 10
	}

	if len(ev.Filters) > 0 {
		q.Filters = make(map[string]any, len(ev.Filters))
		for field, value := range ev.Filters {
			if value == nil {
				continue
			}
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			q.Filters[field] = value
		}
		if len(q.Filters) == 0 {
			q.Filters = nil
		}
	}

	if ev.SortField != "" {
		dir := ev.SortDirection
		if dir != Descending {
			dir = Ascending
		}
		q.Sorts = []Sort{{Field: ev.SortField, Direction: dir}}
	}

	if term := strings.TrimSpace(ev.GlobalValue); term != "" {
		q.Global = &GlobalSearch{Value: term, Fields: ev.GlobalFields}
	}

	return q
}
