package dashboard

import (
	"context"
	"sort"
	"sync"

	"go-shop-admin/internal/tabular"
)

// Registry holds the ordered set of dashboard tabs.
type Registry struct {
	tabs     []*TabConfig
	byEntity map[string]*TabConfig
}

func NewRegistry(tabs ...*TabConfig) *Registry {
	sorted := make([]*TabConfig, len(tabs))
	copy(sorted, tabs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Meta.Order < sorted[j].Meta.Order
	})

	byEntity := make(map[string]*TabConfig, len(sorted))
	for _, tab := range sorted {
		byEntity[tab.Config.Entity] = tab
	}
	return &Registry{tabs: sorted, byEntity: byEntity}
}

func (r *Registry) Tabs() []*TabConfig {
	return r.tabs
}

func (r *Registry) Get(entity string) (*TabConfig, bool) {
	tab, ok := r.byEntity[entity]
	return tab, ok
}

// LoadAll runs the initial load of every tab in parallel. Tabs are
// independent, so one failing load does not block the others; failed tabs
// map to a zero page and their error is reported alongside.
func (r *Registry) LoadAll(ctx context.Context) (map[string]tabular.Page, map[string]error) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		pages = make(map[string]tabular.Page, len(r.tabs))
		errs  = make(map[string]error)
	)

	for _, tab := range r.tabs {
		if tab.Config.Handlers.LoadData == nil {
			continue
		}
		wg.Add(1)
		go func(tab *TabConfig) {
			defer wg.Done()

			q := tabular.Query{Page: 1, Size: tab.Config.Pagination.RowsPerPage}
			page, err := tab.Config.Handlers.LoadData(ctx, q)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[tab.Config.Entity] = err
				return
			}
			pages[tab.Config.Entity] = page
		}(tab)
	}

	wg.Wait()
	return pages, errs
}
