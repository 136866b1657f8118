package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-shop-admin/internal/dashboard"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

// AdminHandler exposes the managed dashboard tables over HTTP: one uniform
// surface for every tab, with CRUD routed through the dispatcher.
type AdminHandler struct {
	registry   *dashboard.Registry
	dispatcher *dashboard.Dispatcher
	exports    *service.ExportService
}

func NewAdminHandler(registry *dashboard.Registry, dispatcher *dashboard.Dispatcher, exports *service.ExportService) *AdminHandler {
	return &AdminHandler{registry: registry, dispatcher: dispatcher, exports: exports}
}

// Tabs returns the schema of every dashboard tab: columns, actions,
// hierarchy and operation availability. Handler closures never serialize.
func (h *AdminHandler) Tabs(w http.ResponseWriter, r *http.Request) {
	tabs := h.registry.Tabs()
	out := make([]map[string]any, 0, len(tabs))
	for _, tab := range tabs {
		out = append(out, map[string]any{
			"entity":     tab.Config.Entity,
			"title":      tab.Config.Title,
			"dataKey":    tab.Config.DataKey,
			"columns":    tab.Config.Columns,
			"actions":    tab.Config.Actions,
			"hierarchy":  tab.Config.Hierarchy,
			"search":     tab.Config.Search,
			"export":     tab.Config.Export,
			"pagination": tab.Config.Pagination,
			"meta":       tab.Meta,
			"operations": tab.Operations,
		})
	}
	writeSuccess(w, http.StatusOK, out, nil)
}

// Search loads one page of a tab's data. The body is the table's
// filter/sort/page event; hierarchical tabs return flattened rows.
func (h *AdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}
	if tab.Config.Handlers.LoadData == nil {
		writeError(w, dashboard.ErrOperationNotSupported)
		return
	}

	var ev tabular.TableEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if len(ev.GlobalFields) == 0 {
		ev.GlobalFields = tab.Config.Search.GlobalFields
	}

	page, err := tab.Config.Handlers.LoadData(r.Context(), tabular.ConvertTableEvent(ev))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, nil)
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	var item tabular.Row
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.dispatcher.Create(r.Context(), tab, item)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	var item tabular.Row
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	updated, err := h.dispatcher.Update(r.Context(), tab, rowRefFromRequest(r, item), item)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, updated, nil)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	if err := h.dispatcher.Delete(r.Context(), tab, rowRefFromRequest(r, nil)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func (h *AdminHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if len(payload.IDs) == 0 {
		writeError(w, apierror.New("BAD_REQUEST", "ids is required", "ids", http.StatusBadRequest))
		return
	}

	result, err := h.dispatcher.BulkDelete(r.Context(), tab, payload.IDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// Export streams the current query's rows as CSV, using each column's
// display formatting.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	q := queryFromParams(r)
	if q.Global != nil && len(q.Global.Fields) == 0 {
		q.Global.Fields = tab.Config.Search.GlobalFields
	}

	rows, err := h.dispatcher.Export(r.Context(), tab, q)
	if err != nil {
		writeError(w, err)
		return
	}

	columns := exportColumns(tab)
	data, err := h.exports.CSV(columns, rows)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := tab.Config.Export.Filename
	if filename == "" {
		filename = tab.Config.Entity + ".csv"
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CustomAction executes a named per-row action (e.g. contact triage).
func (h *AdminHandler) CustomAction(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tab, ok := h.tab(r)
	if !ok {
		writeError(w, errUnknownTab(r))
		return
	}

	action := chi.URLParam(r, "action")
	row := tabular.Row{"id": chi.URLParam(r, "id")}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
			return
		}
		if _, ok := row["id"]; !ok {
			row["id"] = chi.URLParam(r, "id")
		}
	}

	if err := h.dispatcher.CustomAction(r.Context(), tab, action, row); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"executed": action}, nil)
}

func (h *AdminHandler) tab(r *http.Request) (*dashboard.TabConfig, bool) {
	return h.registry.Get(chi.URLParam(r, "tab"))
}

func errUnknownTab(r *http.Request) error {
	return apierror.New("NOT_FOUND", "unknown tab", chi.URLParam(r, "tab"), http.StatusNotFound)
}

// rowRefFromRequest derives the operation target. A child row is addressed
// by the parent query parameter plus the path id; otherwise the body row (if
// any) is classified, falling back to the path id as a parent target.
func rowRefFromRequest(r *http.Request, item tabular.Row) tabular.RowRef {
	id := chi.URLParam(r, "id")

	if parent := strings.TrimSpace(r.URL.Query().Get("parent")); parent != "" {
		probe := tabular.Row{"productId": id, "parentUserId": parent}
		if item != nil {
			if it, ok := item["itemType"]; ok {
				probe["itemType"] = it
			}
		}
		if it := strings.TrimSpace(r.URL.Query().Get("itemType")); it != "" {
			probe["itemType"] = it
		}
		return tabular.Classify(probe)
	}

	if item != nil {
		ref := tabular.Classify(item)
		if ref.ParentID != "" {
			return ref
		}
	}
	return tabular.RowRef{Kind: tabular.KindParent, ParentID: id}
}

// queryFromParams builds an export query from URL parameters, mirroring the
// search body shape for GET requests.
func queryFromParams(r *http.Request) tabular.Query {
	params := r.URL.Query()

	ev := tabular.TableEvent{
		SortField:   params.Get("sortField"),
		GlobalValue: params.Get("q"),
	}
	if dir := params.Get("sortDirection"); dir == string(tabular.Descending) {
		ev.SortDirection = tabular.Descending
	}

	filters := map[string]any{}
	for key, values := range params {
		if !strings.HasPrefix(key, "filter.") || len(values) == 0 {
			continue
		}
		filters[strings.TrimPrefix(key, "filter.")] = values[0]
	}
	if len(filters) > 0 {
		ev.Filters = filters
	}

	return tabular.ConvertTableEvent(ev)
}

// exportColumns flattens hierarchy level columns into one export header set.
func exportColumns(tab *dashboard.TabConfig) []tabular.Column {
	h := tab.Config.Hierarchy
	if h == nil || !h.Enabled || len(h.Levels) == 0 {
		return tab.Config.Columns
	}

	seen := map[string]bool{}
	var out []tabular.Column
	for _, level := range h.Levels {
		for _, col := range level.Columns {
			if seen[col.Field] || col.Type == tabular.ColumnActions {
				continue
			}
			seen[col.Field] = true
			out = append(out, col)
		}
	}
	return out
}
