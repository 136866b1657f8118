package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/tabular"
)

// CatalogHandler serves the public product listing and image thumbnails.
type CatalogHandler struct {
	products   *service.ProductService
	thumbnails *service.ThumbnailService
}

func NewCatalogHandler(products *service.ProductService, thumbnails *service.ThumbnailService) *CatalogHandler {
	return &CatalogHandler{products: products, thumbnails: thumbnails}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	ev := tabular.TableEvent{
		GlobalValue:  params.Get("q"),
		GlobalFields: []string{"name", "description", "category"},
	}
	ev.Page, _ = strconv.Atoi(params.Get("page"))
	ev.Size, _ = strconv.Atoi(params.Get("size"))
	if category := params.Get("category"); category != "" {
		ev.Filters = map[string]any{"category": category}
	}
	if sort := params.Get("sort"); sort != "" {
		ev.SortField = sort
		if params.Get("order") == string(tabular.Descending) {
			ev.SortDirection = tabular.Descending
		}
	}

	page, err := h.products.Search(r.Context(), tabular.ConvertTableEvent(ev))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page.Items, &model.Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, p, nil)
}

func (h *CatalogHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	file, info, err := h.thumbnails.ProductThumbnail(r.Context(), chi.URLParam(r, "id"), size)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, file)
}
