package dashboard

import (
	"context"

	"go-shop-admin/internal/service"
	"go-shop-admin/internal/tabular"
)

// exportPageSize caps how many rows a CSV export pulls in one query.
const exportPageSize = 200

func ProductsTab(products *service.ProductService) *TabConfig {
	cfg := tabular.Config{
		Entity:  "products",
		Title:   "Products",
		DataKey: "id",
		Columns: []tabular.Column{
			{Field: "name", Header: "Name", Type: tabular.ColumnText, Sortable: true, Filterable: true, Editable: true, Required: true},
			{Field: "description", Header: "Description", Type: tabular.ColumnText, Editable: true, DisplayFormat: "truncate:50"},
			{Field: "price", Header: "Price", Type: tabular.ColumnNumber, Sortable: true, Filterable: true, Editable: true, Required: true, DisplayFormat: "currency"},
			{Field: "stockQuantity", Header: "Stock", Type: tabular.ColumnNumber, Sortable: true, Editable: true},
			{Field: "category", Header: "Category", Type: tabular.ColumnEnum, Filterable: true, Editable: true, Required: true, Options: []tabular.Option{
				{Label: "Electronics", Value: "electronics"},
				{Label: "Clothing", Value: "clothing"},
				{Label: "Home & Garden", Value: "home"},
				{Label: "Sports", Value: "sports"},
				{Label: "Books", Value: "books"},
			}},
			{Field: "rating", Header: "Rating", Type: tabular.ColumnNumber, Sortable: true, DisplayFormat: "rating"},
			{Field: "imageUrl", Header: "Image", Type: tabular.ColumnImage},
			{Field: "active", Header: "Active", Type: tabular.ColumnBoolean, Editable: true},
			{Field: "actions", Header: "", Type: tabular.ColumnActions},
		},
		Actions: tabular.Actions{
			Add: true, Edit: true, Delete: true, BulkDelete: true, Export: true, ConfirmDelete: true,
		},
		Search: tabular.SearchConfig{
			Enabled:      true,
			Placeholder:  "Search products...",
			GlobalFields: []string{"name", "description", "category"},
		},
		Export:     tabular.ExportConfig{Enabled: true, Filename: "products.csv"},
		Pagination: tabular.PaginationConfig{Lazy: true, RowsPerPage: 10, PageSizes: []int{10, 25, 50}},
	}

	cfg.Handlers = tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return products.Search(ctx, q)
		},
		CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
			p, err := products.Create(ctx, item)
			if err != nil {
				return nil, err
			}
			return tabular.Row{"id": p.ID, "name": p.Name}, nil
		},
		UpdateItem: func(ctx context.Context, ref tabular.RowRef, item tabular.Row) (tabular.Row, error) {
			p, err := products.Update(ctx, ref.ParentID, item)
			if err != nil {
				return nil, err
			}
			return tabular.Row{"id": p.ID, "name": p.Name}, nil
		},
		DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
			return products.Delete(ctx, ref.ParentID)
		},
		BulkDelete: func(ctx context.Context, ids []string) (tabular.BulkResult, error) {
			return products.BulkDelete(ctx, ids)
		},
		ExportData: exportViaSearch(func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return products.Search(ctx, q)
		}),
	}

	return &TabConfig{
		Config: cfg,
		Meta:   TabMeta{Icon: "box", Order: 1},
		Operations: Operations{
			Create:     Operation{Enabled: true, SuccessMessage: "Product created", ErrorPrefix: "Failed to create product", RefreshAfter: true},
			Update:     Operation{Enabled: true, SuccessMessage: "Product updated", ErrorPrefix: "Failed to update product", RefreshAfter: true},
			Delete:     Operation{Enabled: true, SuccessMessage: "Product deleted", ErrorPrefix: "Failed to delete product", RefreshAfter: true},
			BulkDelete: Operation{Enabled: true, SuccessMessage: "Products deleted", ErrorPrefix: "Failed to delete products", RefreshAfter: true},
			Export:     Operation{Enabled: true, ErrorPrefix: "Failed to export products"},
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}

// exportViaSearch adapts a paged search into the full-result export handler:
// the current filters and sort apply, paging is widened to the export cap.
func exportViaSearch(search func(ctx context.Context, q tabular.Query) (tabular.Page, error)) func(ctx context.Context, q tabular.Query) ([]tabular.Row, error) {
	return func(ctx context.Context, q tabular.Query) ([]tabular.Row, error) {
		q.Page = 1
		q.Size = exportPageSize
		page, err := search(ctx, q)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}
}
