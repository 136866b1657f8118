package dashboard

import (
	"context"

	"go-shop-admin/internal/tabular"
)

// WishlistOps is the slice of the wishlist service the wishlists tab binds to.
type WishlistOps interface {
	Search(ctx context.Context, q tabular.Query) (tabular.Page, error)
	UserWishlist(ctx context.Context, userID string) (tabular.Row, error)
	AddItemToUserWishlist(ctx context.Context, userID, productID string) error
	RemoveItemFromUserWishlist(ctx context.Context, userID, productID string) error
	ClearUserWishlist(ctx context.Context, userID string) error
}

func WishlistsTab(wishlists WishlistOps) *TabConfig {
	hierarchy := &tabular.Hierarchy{
		Enabled:             true,
		ParentKeyField:      "userId",
		ParentIDField:       "parentUserId",
		ChildAttributeField: "wishlist",
		LoadStrategy:        tabular.LoadEager,
		MaxDepth:            2,
		Levels: []tabular.LevelConfig{
			{
				Level:          0,
				AllowExpansion: true,
				Columns: []tabular.Column{
					{Field: "username", Header: "User", Type: tabular.ColumnText, Sortable: true, Filterable: true},
					{Field: "email", Header: "Email", Type: tabular.ColumnText, Filterable: true},
					{Field: "wishlistSummary", Header: "Wishlist", Type: tabular.ColumnText},
					{Field: "actions", Header: "", Type: tabular.ColumnActions},
				},
			},
			{
				Level: 1,
				Columns: []tabular.Column{
					{Field: "productName", Header: "Product", Type: tabular.ColumnText},
					{Field: "productPrice", Header: "Price", Type: tabular.ColumnNumber, DisplayFormat: "currency"},
					{Field: "addedAt", Header: "Added", Type: tabular.ColumnDate},
					{Field: "actions", Header: "", Type: tabular.ColumnActions},
				},
			},
		},
	}

	cfg := tabular.Config{
		Entity:    "wishlists",
		Title:     "User Wishlists",
		DataKey:   "dataKey",
		Hierarchy: hierarchy,
		Columns: []tabular.Column{
			{Field: "username", Header: "User", Type: tabular.ColumnText, Sortable: true, Filterable: true},
			{Field: "email", Header: "Email", Type: tabular.ColumnText, Filterable: true},
		},
		Actions: tabular.Actions{
			Delete: true, Export: true, ConfirmDelete: true,
		},
		Search: tabular.SearchConfig{
			Enabled:      true,
			Placeholder:  "Search wishlists by user...",
			GlobalFields: []string{"username", "email"},
		},
		Export:     tabular.ExportConfig{Enabled: true, Filename: "wishlists.csv"},
		Pagination: tabular.PaginationConfig{Lazy: true, RowsPerPage: 10, PageSizes: []int{10, 25, 50}},
	}

	cfg.ChildAction = &tabular.ChildAction{
		ParentIDField: "userId",
		ChildTemplate: tabular.Row{
			"productId":    nil,
			"productName":  nil,
			"productPrice": nil,
		},
		Save: func(ctx context.Context, parentID string, child tabular.Row) error {
			return wishlists.AddItemToUserWishlist(ctx, parentID, strField(child, "productId"))
		},
	}

	cfg.Handlers = tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			page, err := wishlists.Search(ctx, q)
			if err != nil {
				return tabular.Page{}, err
			}
			page.Items = tabular.Flatten(page.Items, hierarchy, tabular.KindWishlistItem)
			return page, nil
		},
		CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
			ref := tabular.Classify(item)
			if !ref.IsChild() {
				return nil, ErrOperationNotSupported
			}
			if err := wishlists.AddItemToUserWishlist(ctx, ref.ParentID, ref.ChildID); err != nil {
				return nil, err
			}
			return wishlists.UserWishlist(ctx, ref.ParentID)
		},
		DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
			if ref.IsChild() {
				return wishlists.RemoveItemFromUserWishlist(ctx, ref.ParentID, ref.ChildID)
			}
			return wishlists.ClearUserWishlist(ctx, ref.ParentID)
		},
		ExportData: func(ctx context.Context, q tabular.Query) ([]tabular.Row, error) {
			q.Page = 1
			q.Size = exportPageSize
			page, err := wishlists.Search(ctx, q)
			if err != nil {
				return nil, err
			}
			return tabular.Flatten(page.Items, hierarchy, tabular.KindWishlistItem), nil
		},
	}

	return &TabConfig{
		Config: cfg,
		Meta:   TabMeta{Icon: "heart", Order: 4},
		Operations: Operations{
			Create:     Operation{Enabled: true, SuccessMessage: "Item added to wishlist", ErrorPrefix: "Failed to add item", RefreshAfter: true},
			Update:     Operation{Enabled: false},
			Delete:     Operation{Enabled: true, SuccessMessage: "Removed from wishlist", ErrorPrefix: "Failed to remove from wishlist", RefreshAfter: true},
			BulkDelete: Operation{Enabled: false},
			Export:     Operation{Enabled: true, ErrorPrefix: "Failed to export wishlists"},
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}
