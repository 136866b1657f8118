package dashboard

import (
	"context"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
)

// CartOps is the slice of the cart service the carts tab binds to.
type CartOps interface {
	Search(ctx context.Context, q tabular.Query) (tabular.Page, error)
	UserCart(ctx context.Context, userID string) (tabular.Row, error)
	AddItemToUserCart(ctx context.Context, userID string, in model.CartItemInput) error
	UpdateUserCartItem(ctx context.Context, userID, productID string, item tabular.Row) error
	RemoveItemFromUserCart(ctx context.Context, userID, productID string) error
	ClearUserCart(ctx context.Context, userID string) error
}

// CartsTab manages user carts as a two-level table: users at level 0, their
// cart lines flattened below them at level 1. Delete targets one line for a
// child row and the whole cart for a parent row.
func CartsTab(carts CartOps) *TabConfig {
	hierarchy := &tabular.Hierarchy{
		Enabled:             true,
		ParentKeyField:      "userId",
		ParentIDField:       "parentUserId",
		ChildAttributeField: "cart",
		LoadStrategy:        tabular.LoadEager,
		MaxDepth:            2,
		Levels: []tabular.LevelConfig{
			{
				Level:          0,
				AllowExpansion: true,
				Columns: []tabular.Column{
					{Field: "username", Header: "User", Type: tabular.ColumnText, Sortable: true, Filterable: true},
					{Field: "email", Header: "Email", Type: tabular.ColumnText, Filterable: true},
					{Field: "cartSummary", Header: "Cart", Type: tabular.ColumnText},
					{Field: "cartTotalValue", Header: "Total", Type: tabular.ColumnNumber, Sortable: true, DisplayFormat: "currency"},
					{Field: "actions", Header: "", Type: tabular.ColumnActions},
				},
			},
			{
				Level: 1,
				Columns: []tabular.Column{
					{Field: "productName", Header: "Product", Type: tabular.ColumnText},
					{Field: "productPrice", Header: "Unit Price", Type: tabular.ColumnNumber, DisplayFormat: "currency"},
					{Field: "quantity", Header: "Qty", Type: tabular.ColumnNumber, Editable: true, Required: true},
					{Field: "subtotal", Header: "Subtotal", Type: tabular.ColumnNumber, DisplayFormat: "currency"},
					{Field: "actions", Header: "", Type: tabular.ColumnActions},
				},
			},
		},
	}

	cfg := tabular.Config{
		Entity:    "carts",
		Title:     "User Carts",
		DataKey:   "dataKey",
		Hierarchy: hierarchy,
		Columns: []tabular.Column{
			{Field: "username", Header: "User", Type: tabular.ColumnText, Sortable: true, Filterable: true},
			{Field: "email", Header: "Email", Type: tabular.ColumnText, Filterable: true},
			{Field: "cartTotalValue", Header: "Total", Type: tabular.ColumnNumber, Sortable: true, DisplayFormat: "currency"},
		},
		Actions: tabular.Actions{
			Edit: true, Delete: true, Export: true, ConfirmDelete: true,
		},
		Search: tabular.SearchConfig{
			Enabled:      true,
			Placeholder:  "Search carts by user...",
			GlobalFields: []string{"username", "email"},
		},
		Export:     tabular.ExportConfig{Enabled: true, Filename: "carts.csv"},
		Pagination: tabular.PaginationConfig{Lazy: true, RowsPerPage: 10, PageSizes: []int{10, 25, 50}},
	}

	cfg.ChildAction = &tabular.ChildAction{
		ParentIDField: "userId",
		ChildTemplate: tabular.Row{
			"productId":            nil,
			"productName":          nil,
			"productPrice":         nil,
			"productStockQuantity": nil,
			"quantity":             1,
		},
		Save: func(ctx context.Context, parentID string, child tabular.Row) error {
			return carts.AddItemToUserCart(ctx, parentID, model.CartItemInput{
				ProductID: strField(child, "productId"),
				Quantity:  intField(child, "quantity"),
			})
		},
		KeepExpandedOnSave: true,
		CollapseOnCancel: func(parent tabular.Row) bool {
			// A parent left with no persisted lines collapses back.
			items, _ := parent["cart"].([]tabular.Row)
			return len(items) == 0
		},
	}

	cfg.Handlers = tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			page, err := carts.Search(ctx, q)
			if err != nil {
				return tabular.Page{}, err
			}
			page.Items = tabular.Flatten(page.Items, hierarchy, tabular.KindCartItem)
			return page, nil
		},
		CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
			ref := tabular.Classify(item)
			if !ref.IsChild() {
				return nil, ErrOperationNotSupported
			}
			err := carts.AddItemToUserCart(ctx, ref.ParentID, model.CartItemInput{
				ProductID: ref.ChildID,
				Quantity:  intField(item, "quantity"),
			})
			if err != nil {
				return nil, err
			}
			return carts.UserCart(ctx, ref.ParentID)
		},
		UpdateItem: func(ctx context.Context, ref tabular.RowRef, item tabular.Row) (tabular.Row, error) {
			if !ref.IsChild() {
				return nil, ErrOperationNotSupported
			}
			if err := carts.UpdateUserCartItem(ctx, ref.ParentID, ref.ChildID, item); err != nil {
				return nil, err
			}
			return carts.UserCart(ctx, ref.ParentID)
		},
		DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
			if ref.IsChild() {
				return carts.RemoveItemFromUserCart(ctx, ref.ParentID, ref.ChildID)
			}
			return carts.ClearUserCart(ctx, ref.ParentID)
		},
		ExportData: func(ctx context.Context, q tabular.Query) ([]tabular.Row, error) {
			q.Page = 1
			q.Size = exportPageSize
			page, err := carts.Search(ctx, q)
			if err != nil {
				return nil, err
			}
			return tabular.Flatten(page.Items, hierarchy, tabular.KindCartItem), nil
		},
	}

	return &TabConfig{
		Config: cfg,
		Meta:   TabMeta{Icon: "shopping-cart", Order: 3},
		Operations: Operations{
			Create:     Operation{Enabled: true, SuccessMessage: "Item added to cart", ErrorPrefix: "Failed to add item", RefreshAfter: true},
			Update:     Operation{Enabled: true, SuccessMessage: "Cart item updated", ErrorPrefix: "Failed to update cart item", RefreshAfter: true},
			Delete:     Operation{Enabled: true, SuccessMessage: "Removed from cart", ErrorPrefix: "Failed to remove from cart", RefreshAfter: true},
			BulkDelete: Operation{Enabled: false},
			Export:     Operation{Enabled: true, ErrorPrefix: "Failed to export carts"},
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}
