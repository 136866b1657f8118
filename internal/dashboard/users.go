package dashboard

import (
	"context"

	"go-shop-admin/internal/service"
	"go-shop-admin/internal/tabular"
)

func UsersTab(users *service.UserService) *TabConfig {
	cfg := tabular.Config{
		Entity:  "users",
		Title:   "Users",
		DataKey: "id",
		Columns: []tabular.Column{
			{Field: "username", Header: "Username", Type: tabular.ColumnText, Sortable: true, Filterable: true, Editable: true, Required: true},
			{Field: "email", Header: "Email", Type: tabular.ColumnText, Sortable: true, Filterable: true, Editable: true, Required: true},
			{Field: "role", Header: "Role", Type: tabular.ColumnEnum, Filterable: true, Editable: true, Required: true, Options: []tabular.Option{
				{Label: "Administrator", Value: "admin", Color: "red"},
				{Label: "Staff", Value: "staff", Color: "orange"},
				{Label: "Customer", Value: "customer", Color: "green"},
			}},
			{Field: "active", Header: "Active", Type: tabular.ColumnBoolean, Editable: true},
			{Field: "createdAt", Header: "Joined", Type: tabular.ColumnDate, Sortable: true},
			{Field: "actions", Header: "", Type: tabular.ColumnActions},
		},
		Actions: tabular.Actions{
			Add: true, Edit: true, Delete: true, BulkDelete: true, Export: true, ConfirmDelete: true,
		},
		Search: tabular.SearchConfig{
			Enabled:      true,
			Placeholder:  "Search users...",
			GlobalFields: []string{"username", "email"},
		},
		Export:     tabular.ExportConfig{Enabled: true, Filename: "users.csv"},
		Pagination: tabular.PaginationConfig{Lazy: true, RowsPerPage: 10, PageSizes: []int{10, 25, 50}},
	}

	cfg.Handlers = tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return users.Search(ctx, q)
		},
		CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
			u, err := users.Create(ctx, item)
			if err != nil {
				return nil, err
			}
			return tabular.Row{"id": u.ID, "username": u.Username}, nil
		},
		UpdateItem: func(ctx context.Context, ref tabular.RowRef, item tabular.Row) (tabular.Row, error) {
			u, err := users.Update(ctx, ref.ParentID, item)
			if err != nil {
				return nil, err
			}
			return tabular.Row{"id": u.ID, "username": u.Username}, nil
		},
		DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
			return users.Delete(ctx, ref.ParentID)
		},
		BulkDelete: func(ctx context.Context, ids []string) (tabular.BulkResult, error) {
			return users.BulkDelete(ctx, ids)
		},
		ExportData: exportViaSearch(func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return users.Search(ctx, q)
		}),
	}

	return &TabConfig{
		Config: cfg,
		Meta:   TabMeta{Icon: "users", Order: 2},
		Operations: Operations{
			Create:     Operation{Enabled: true, SuccessMessage: "User created", ErrorPrefix: "Failed to create user", RefreshAfter: true},
			Update:     Operation{Enabled: true, SuccessMessage: "User updated", ErrorPrefix: "Failed to update user", RefreshAfter: true},
			Delete:     Operation{Enabled: true, SuccessMessage: "User deleted", ErrorPrefix: "Failed to delete user", RefreshAfter: true},
			BulkDelete: Operation{Enabled: true, SuccessMessage: "Users deleted", ErrorPrefix: "Failed to delete users", RefreshAfter: true},
			Export:     Operation{Enabled: true, ErrorPrefix: "Failed to export users"},
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}
