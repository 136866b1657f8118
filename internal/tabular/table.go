package tabular

import (
	"context"
	"sync"
	"time"
)

// Table is the orchestrator of one managed table: it owns filter, sort,
// pagination and selection state, converts state changes into data-load
// requests, and caches the currently loaded page of rows. It never filters
// or sorts client-side when pagination is lazy; every state change re-issues
// a load through the configured data handler.
type Table struct {
	cfg      *Config
	Sessions *SessionManager

	mu            sync.Mutex
	columnFilters map[string]any
	globalFilter  string
	sortField     string
	sortDirection Direction
	currentPage   int
	rowsPerPage   int
	selection     map[string]Row
	rows          []Row
	total         int

	debounce *Debouncer
	seq      uint64
	applied  uint64
}

// NewTable builds an orchestrator over a table config. The debounce window
// applies to global-search keystrokes only; column filters and sort changes
// load immediately.
func NewTable(cfg *Config, searchDebounce time.Duration) *Table {
	rows := cfg.Pagination.RowsPerPage
	if rows <= 0 {
		rows = 10
	}
	return &Table{
		cfg:           cfg,
		Sessions:      NewSessionManager(),
		columnFilters: map[string]any{},
		currentPage:   1,
		rowsPerPage:   rows,
		selection:     map[string]Row{},
		debounce:      NewDebouncer(searchDebounce),
	}
}

func (t *Table) Config() *Config { return t.cfg }

// SetFilter applies one column filter. Any filter change resets the table to
// page 1 before the next load.
func (t *Table) SetFilter(ctx context.Context, field string, value any) error {
	t.mu.Lock()
	if value == nil {
		delete(t.columnFilters, field)
	} else {
		t.columnFilters[field] = value
	}
	t.currentPage = 1
	t.mu.Unlock()

	return t.Reload(ctx)
}

// SetGlobalFilter applies the free-text search term. Keystroke bursts are
// debounced; the stale-response guard in applyPage keeps a slow early
// response from clobbering a later one.
func (t *Table) SetGlobalFilter(ctx context.Context, value string) {
	t.mu.Lock()
	t.globalFilter = value
	t.currentPage = 1
	t.mu.Unlock()

	t.debounce.Trigger(func() {
		_ = t.Reload(ctx)
	})
}

// ToggleSort cycles the sort direction on the active column and resets to
// ascending when a different column is clicked. A single sort field is
// active at a time.
func (t *Table) ToggleSort(ctx context.Context, field string) error {
	t.mu.Lock()
	if t.sortField == field {
		if t.sortDirection == Ascending {
			t.sortDirection = Descending
		} else {
			t.sortDirection = Ascending
		}
	} else {
		t.sortField = field
		t.sortDirection = Ascending
	}
	t.currentPage = 1
	t.mu.Unlock()

	return t.Reload(ctx)
}

func (t *Table) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	t.mu.Lock()
	t.currentPage = page
	t.mu.Unlock()

	return t.Reload(ctx)
}

func (t *Table) SetRowsPerPage(ctx context.Context, rows int) error {
	if rows <= 0 {
		rows = 10
	}
	t.mu.Lock()
	t.rowsPerPage = rows
	t.currentPage = 1
	t.mu.Unlock()

	return t.Reload(ctx)
}

// BuildQuery assembles the search-parameter payload for the current state.
func (t *Table) BuildQuery() Query {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buildQueryLocked()
}

func (t *Table) buildQueryLocked() Query {
	filters := make(map[string]any, len(t.columnFilters))
	for k, v := range t.columnFilters {
		filters[k] = v
	}

	return ConvertTableEvent(TableEvent{
		Page:          t.currentPage,
		Size:          t.rowsPerPage,
		SortField:     t.sortField,
		SortDirection: t.sortDirection,
		Filters:       filters,
		GlobalValue:   t.globalFilter,
		GlobalFields:  t.cfg.Search.GlobalFields,
	})
}

// Reload issues a data load for the current state. Each load carries a
// sequence number; a response that lost the race to a newer one is dropped
// instead of overwriting fresher rows. A failed load keeps the previous page
// of data in place.
func (t *Table) Reload(ctx context.Context) error {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	q := t.buildQueryLocked()
	t.mu.Unlock()

	if t.cfg.Handlers.LoadData == nil {
		return nil
	}

	page, err := t.cfg.Handlers.LoadData(ctx, q)
	if err != nil {
		return err
	}

	t.applyPage(seq, page)
	return nil
}

// applyPage installs a load result unless a newer load already applied.
func (t *Table) applyPage(seq uint64, page Page) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq <= t.applied {
		return false
	}
	t.applied = seq
	t.rows = page.Items
	t.total = page.Total
	return true
}

func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

func (t *Table) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *Table) CurrentPage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPage
}

// rowKey extracts the identity value of a row under the table's dataKey.
func (t *Table) rowKey(row Row) string {
	key, _ := fieldString(row, t.cfg.DataKey)
	return key
}

// ToggleSelect flips one row's membership in the selection. Selection is
// identity-based via the dataKey value, not object reference, because
// flattened rows are freshly constructed on every load.
func (t *Table) ToggleSelect(row Row) {
	key := t.rowKey(row)
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.selection[key]; ok {
		delete(t.selection, key)
	} else {
		t.selection[key] = row
	}
}

// SelectAll toggles between "none selected" and "all currently loaded rows
// selected" (not all rows matching the filter).
func (t *Table) SelectAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	allSelected := len(t.rows) > 0
	for _, row := range t.rows {
		key, _ := fieldString(row, t.cfg.DataKey)
		if _, ok := t.selection[key]; !ok {
			allSelected = false
			break
		}
	}

	t.selection = map[string]Row{}
	if !allSelected {
		for _, row := range t.rows {
			if key, ok := fieldString(row, t.cfg.DataKey); ok {
				t.selection[key] = row
			}
		}
	}
}

func (t *Table) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = map[string]Row{}
}

func (t *Table) SelectedKeys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]string, 0, len(t.selection))
	for key := range t.selection {
		keys = append(keys, key)
	}
	return keys
}

func (t *Table) IsSelected(row Row) bool {
	key := t.rowKey(row)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.selection[key]
	return ok
}

// ApplyOptimistic mutates the cached rows immediately and returns a rollback
// that restores the pre-update snapshot, for use when the backing call
// fails.
func (t *Table) ApplyOptimistic(mutate func(rows []Row) []Row) (rollback func()) {
	t.mu.Lock()
	snapshot := make([]Row, len(t.rows))
	for i, row := range t.rows {
		snapshot[i] = row.Clone()
	}
	snapshotTotal := t.total
	t.rows = mutate(t.rows)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		t.rows = snapshot
		t.total = snapshotTotal
		t.mu.Unlock()
	}
}
