package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-shop-admin/internal/event"
	"go-shop-admin/internal/tabular"
)

// ErrOperationNotSupported is returned for any verb a tab has disabled.
var ErrOperationNotSupported = errors.New("operation not supported")

// Dispatcher routes CRUD operations uniformly across every tab: one success
// and failure protocol, no entity-specific branches. The only row-level
// disambiguation is parent versus child targeting, and that is decided by
// tabular.Classify before a handler runs.
type Dispatcher struct {
	bus    event.Bus
	logger *slog.Logger
}

func NewDispatcher(bus event.Bus, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{bus: bus, logger: logger}
}

func (d *Dispatcher) Create(ctx context.Context, tab *TabConfig, item tabular.Row) (tabular.Row, error) {
	if !tab.Operations.Create.Enabled || tab.Config.Handlers.CreateItem == nil {
		return nil, ErrOperationNotSupported
	}

	created, err := tab.Config.Handlers.CreateItem(ctx, item)
	if err != nil {
		d.fail(tab, tab.Operations.Create, err)
		return nil, err
	}
	d.succeed(tab, tab.Operations.Create)
	return created, nil
}

func (d *Dispatcher) Update(ctx context.Context, tab *TabConfig, ref tabular.RowRef, item tabular.Row) (tabular.Row, error) {
	if !tab.Operations.Update.Enabled || tab.Config.Handlers.UpdateItem == nil {
		return nil, ErrOperationNotSupported
	}

	updated, err := tab.Config.Handlers.UpdateItem(ctx, ref, item)
	if err != nil {
		d.fail(tab, tab.Operations.Update, err)
		return nil, err
	}
	d.succeed(tab, tab.Operations.Update)
	return updated, nil
}

func (d *Dispatcher) Delete(ctx context.Context, tab *TabConfig, ref tabular.RowRef) error {
	if !tab.Operations.Delete.Enabled || tab.Config.Handlers.DeleteItem == nil {
		return ErrOperationNotSupported
	}

	if err := tab.Config.Handlers.DeleteItem(ctx, ref); err != nil {
		d.fail(tab, tab.Operations.Delete, err)
		return err
	}
	d.succeed(tab, tab.Operations.Delete)
	return nil
}

func (d *Dispatcher) BulkDelete(ctx context.Context, tab *TabConfig, ids []string) (tabular.BulkResult, error) {
	if !tab.Operations.BulkDelete.Enabled || tab.Config.Handlers.BulkDelete == nil {
		return tabular.BulkResult{}, ErrOperationNotSupported
	}

	result, err := tab.Config.Handlers.BulkDelete(ctx, ids)
	if err != nil {
		d.fail(tab, tab.Operations.BulkDelete, err)
		return tabular.BulkResult{}, err
	}
	d.succeed(tab, tab.Operations.BulkDelete)
	return result, nil
}

func (d *Dispatcher) Export(ctx context.Context, tab *TabConfig, q tabular.Query) ([]tabular.Row, error) {
	if !tab.Operations.Export.Enabled || tab.Config.Handlers.ExportData == nil {
		return nil, ErrOperationNotSupported
	}

	rows, err := tab.Config.Handlers.ExportData(ctx, q)
	if err != nil {
		d.fail(tab, tab.Operations.Export, err)
		return nil, err
	}
	d.succeed(tab, tab.Operations.Export)
	return rows, nil
}

func (d *Dispatcher) CustomAction(ctx context.Context, tab *TabConfig, action string, row tabular.Row) error {
	if !tab.Operations.Custom.Enabled || tab.Config.Handlers.ExecuteCustomAction == nil {
		return ErrOperationNotSupported
	}

	if err := tab.Config.Handlers.ExecuteCustomAction(ctx, action, row); err != nil {
		d.fail(tab, tab.Operations.Custom, err)
		return err
	}
	d.succeed(tab, tab.Operations.Custom)
	return nil
}

func (d *Dispatcher) succeed(tab *TabConfig, op Operation) {
	if op.SuccessMessage != "" {
		d.publish(event.TypeNotifySuccess, event.Notification{
			Severity: "success",
			Summary:  "Success",
			Detail:   op.SuccessMessage,
		})
	}
	if op.RefreshAfter {
		d.publish(event.TypeDataRefreshed, event.Refresh{Entity: tab.Config.Entity})
	}
}

func (d *Dispatcher) fail(tab *TabConfig, op Operation, err error) {
	detail := err.Error()
	if op.ErrorPrefix != "" {
		detail = fmt.Sprintf("%s: %s", op.ErrorPrefix, detail)
	}
	d.logger.Error("operation failed", "entity", tab.Config.Entity, "error", err)
	d.publish(event.TypeNotifyError, event.Notification{
		Severity: "error",
		Summary:  "Error",
		Detail:   detail,
	})
}

func (d *Dispatcher) publish(t event.Type, payload any) {
	if d.bus == nil {
		return
	}
	d.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
