package dashboard

import (
	"context"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/tabular"
)

func ContactsTab(contacts *service.ContactService) *TabConfig {
	cfg := tabular.Config{
		Entity:  "contacts",
		Title:   "Contact Submissions",
		DataKey: "id",
		Columns: []tabular.Column{
			{Field: "name", Header: "Name", Type: tabular.ColumnText, Sortable: true, Filterable: true},
			{Field: "email", Header: "Email", Type: tabular.ColumnText, Filterable: true},
			{Field: "subject", Header: "Subject", Type: tabular.ColumnText, Filterable: true, DisplayFormat: "truncate:40"},
			{Field: "message", Header: "Message", Type: tabular.ColumnText, DisplayFormat: "truncate:60"},
			{Field: "status", Header: "Status", Type: tabular.ColumnEnum, Filterable: true, Editable: true, Required: true, Options: []tabular.Option{
				{Label: "New", Value: model.ContactStatusNew, Color: "blue"},
				{Label: "Read", Value: model.ContactStatusRead, Color: "orange"},
				{Label: "Resolved", Value: model.ContactStatusResolved, Color: "green"},
			}},
			{Field: "date", Header: "Received", Type: tabular.ColumnDate, Sortable: true},
			{Field: "actions", Header: "", Type: tabular.ColumnActions},
		},
		Actions: tabular.Actions{
			Edit: true, Delete: true, BulkDelete: true, Export: true, ConfirmDelete: true,
			Custom: []tabular.CustomAction{
				{
					Label: "Mark read", Icon: "eye", Action: "markRead", Severity: "info",
					Condition: func(row tabular.Row) bool {
						return row["status"] == model.ContactStatusNew
					},
				},
				{
					Label: "Resolve", Icon: "check", Action: "markResolved", Severity: "success",
					Disabled: func(row tabular.Row) bool {
						return row["status"] == model.ContactStatusResolved
					},
				},
			},
		},
		Search: tabular.SearchConfig{
			Enabled:      true,
			Placeholder:  "Search submissions...",
			GlobalFields: []string{"name", "email", "subject", "message"},
		},
		Export:     tabular.ExportConfig{Enabled: true, Filename: "contacts.csv"},
		Pagination: tabular.PaginationConfig{Lazy: true, RowsPerPage: 10, PageSizes: []int{10, 25, 50}},
	}

	cfg.Handlers = tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return contacts.Search(ctx, q)
		},
		UpdateItem: func(ctx context.Context, ref tabular.RowRef, item tabular.Row) (tabular.Row, error) {
			if err := contacts.Update(ctx, ref.ParentID, item); err != nil {
				return nil, err
			}
			return tabular.Row{"id": ref.ParentID}, nil
		},
		DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
			return contacts.Delete(ctx, ref.ParentID)
		},
		BulkDelete: func(ctx context.Context, ids []string) (tabular.BulkResult, error) {
			return contacts.BulkDelete(ctx, ids)
		},
		ExportData: exportViaSearch(func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return contacts.Search(ctx, q)
		}),
		ExecuteCustomAction: func(ctx context.Context, action string, row tabular.Row) error {
			id := strField(row, "id")
			switch action {
			case "markRead":
				return contacts.UpdateStatus(ctx, id, model.ContactStatusRead)
			case "markResolved":
				return contacts.UpdateStatus(ctx, id, model.ContactStatusResolved)
			default:
				return ErrOperationNotSupported
			}
		},
	}

	return &TabConfig{
		Config: cfg,
		Meta:   TabMeta{Icon: "mail", Order: 5},
		Operations: Operations{
			Update:     Operation{Enabled: true, SuccessMessage: "Submission updated", ErrorPrefix: "Failed to update submission", RefreshAfter: true},
			Delete:     Operation{Enabled: true, SuccessMessage: "Submission deleted", ErrorPrefix: "Failed to delete submission", RefreshAfter: true},
			BulkDelete: Operation{Enabled: true, SuccessMessage: "Submissions deleted", ErrorPrefix: "Failed to delete submissions", RefreshAfter: true},
			Export:     Operation{Enabled: true, ErrorPrefix: "Failed to export submissions"},
			Custom:     Operation{Enabled: true, SuccessMessage: "Status updated", ErrorPrefix: "Failed to update status", RefreshAfter: true},
		},
		Notifications: NotificationConfig{Enabled: true},
	}
}
