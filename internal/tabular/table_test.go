package tabular

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingLoader struct {
	mu      sync.Mutex
	queries []Query
	page    Page
	err     error
}

func (l *capturingLoader) load(_ context.Context, q Query) (Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
	return l.page, l.err
}

func newTestTable(loader *capturingLoader) *Table {
	cfg := &Config{
		Entity:  "products",
		DataKey: "id",
		Columns: []Column{
			{Field: "name", Header: "Name", Type: ColumnText, Sortable: true, Filterable: true},
			{Field: "price", Header: "Price", Type: ColumnNumber, Sortable: true},
		},
		Search:     SearchConfig{Enabled: true, GlobalFields: []string{"name", "description"}},
		Pagination: PaginationConfig{Lazy: true, RowsPerPage: 10},
		Handlers:   Handlers{LoadData: loader.load},
	}
	return NewTable(cfg, 0)
}

func TestTable_SortToggleCycle(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{}
	table := newTestTable(loader)
	ctx := context.Background()

	require.NoError(t, table.ToggleSort(ctx, "price"))
	q := loader.queries[len(loader.queries)-1]
	require.Equal(t, []Sort{{Field: "price", Direction: Ascending}}, q.Sorts)

	require.NoError(t, table.ToggleSort(ctx, "price"))
	q = loader.queries[len(loader.queries)-1]
	require.Equal(t, []Sort{{Field: "price", Direction: Descending}}, q.Sorts)

	// A different column resets to ascending, not a continuation of the
	// previous column's direction.
	require.NoError(t, table.ToggleSort(ctx, "name"))
	q = loader.queries[len(loader.queries)-1]
	require.Equal(t, []Sort{{Field: "name", Direction: Ascending}}, q.Sorts)
}

func TestTable_FilterResetsPage(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{}
	table := newTestTable(loader)
	ctx := context.Background()

	require.NoError(t, table.SetPage(ctx, 3))
	require.Equal(t, 3, loader.queries[len(loader.queries)-1].Page)

	require.NoError(t, table.SetFilter(ctx, "name", "mug"))
	q := loader.queries[len(loader.queries)-1]
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "mug", q.Filters["name"])
}

func TestTable_GlobalSearchMarker(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{}
	table := newTestTable(loader)

	table.SetGlobalFilter(context.Background(), "lamp")

	q := loader.queries[len(loader.queries)-1]
	require.NotNil(t, q.Global)
	assert.Equal(t, "lamp", q.Global.Value)
	assert.Equal(t, []string{"name", "description"}, q.Global.Fields)
}

func TestTable_StaleResponseGuard(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{}
	table := newTestTable(loader)

	// A newer load applies first; the slower, older response must be
	// discarded instead of clobbering fresher rows.
	applied := table.applyPage(2, Page{Items: []Row{{"id": "fresh"}}, Total: 1})
	require.True(t, applied)

	applied = table.applyPage(1, Page{Items: []Row{{"id": "stale"}}, Total: 1})
	require.False(t, applied)

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "fresh", rows[0]["id"])
}

func TestTable_LoadFailureKeepsPreviousRows(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{page: Page{Items: []Row{{"id": "a"}}, Total: 1}}
	table := newTestTable(loader)
	ctx := context.Background()

	require.NoError(t, table.Reload(ctx))
	require.Len(t, table.Rows(), 1)

	loader.err = assert.AnError
	require.Error(t, table.Reload(ctx))
	assert.Len(t, table.Rows(), 1, "failed load must leave the previous page in place")
}

func TestTable_SelectAllToggle(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{page: Page{
		Items: []Row{{"id": "a"}, {"id": "b"}, {"id": "c"}},
		Total: 3,
	}}
	table := newTestTable(loader)
	require.NoError(t, table.Reload(context.Background()))

	table.SelectAll()
	assert.Len(t, table.SelectedKeys(), 3)

	table.SelectAll()
	assert.Empty(t, table.SelectedKeys())

	// A partial selection toggles up to all loaded rows, not down to none.
	table.ToggleSelect(Row{"id": "a"})
	table.SelectAll()
	assert.Len(t, table.SelectedKeys(), 3)
}

func TestTable_SelectionIsIdentityBased(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{}
	table := newTestTable(loader)

	table.ToggleSelect(Row{"id": "x", "name": "first load"})
	assert.True(t, table.IsSelected(Row{"id": "x", "name": "fresh object"}))

	table.ToggleSelect(Row{"id": "x"})
	assert.False(t, table.IsSelected(Row{"id": "x"}))
}

func TestTable_OptimisticRollback(t *testing.T) {
	t.Parallel()

	loader := &capturingLoader{page: Page{Items: []Row{{"id": "a", "quantity": 1}}, Total: 1}}
	table := newTestTable(loader)
	require.NoError(t, table.Reload(context.Background()))

	rollback := table.ApplyOptimistic(func(rows []Row) []Row {
		rows[0]["quantity"] = 5
		return append(rows, Row{"id": "b"})
	})

	require.Len(t, table.Rows(), 2)
	assert.Equal(t, 5, table.Rows()[0]["quantity"])

	rollback()

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0]["quantity"])
}
