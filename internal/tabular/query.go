package tabular

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// GlobalSearch is the free-text search marker merged alongside per-column
// filters when the user types into the table's global search box.
type GlobalSearch struct {
	Value  string   `json:"value"`
	Fields []string `json:"fields"`
}

// Query is the backend search-parameter payload the orchestrator hands to a
// tab's data loader.
type Query struct {
	Page    int            `json:"page"`
	Size    int            `json:"size"`
	Sorts   []Sort         `json:"sorts,omitempty"`
	Filters map[string]any `json:"filters,omitempty"`
	Global  *GlobalSearch  `json:"globalSearch,omitempty"`
}

// Page is one page of search results.
type Page struct {
	Items      []Row `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PageCount returns the number of pages needed for total items at the given
// page size.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
