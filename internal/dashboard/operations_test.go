package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/event"
	"go-shop-admin/internal/tabular"
)

type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(e event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe() (<-chan event.Event, func()) {
	ch := make(chan event.Event)
	close(ch)
	return ch, func() {}
}

func (b *recordingBus) byType(t event.Type) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []event.Event
	for _, e := range b.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestTab(ops Operations, handlers tabular.Handlers) *TabConfig {
	return &TabConfig{
		Config: tabular.Config{
			Entity:   "widgets",
			Title:    "Widgets",
			DataKey:  "id",
			Handlers: handlers,
		},
		Operations:    ops,
		Notifications: NotificationConfig{Enabled: true},
	}
}

func TestDispatcherDisabledOperation(t *testing.T) {
	t.Parallel()

	bus := &recordingBus{}
	d := NewDispatcher(bus, nil)

	tab := newTestTab(Operations{}, tabular.Handlers{
		CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
			t.Fatal("handler must not run for a disabled operation")
			return nil, nil
		},
	})

	_, err := d.Create(context.Background(), tab, tabular.Row{"name": "w"})
	require.ErrorIs(t, err, ErrOperationNotSupported)
	assert.Empty(t, bus.events)
}

func TestDispatcherSuccessPublishesToastAndRefresh(t *testing.T) {
	t.Parallel()

	bus := &recordingBus{}
	d := NewDispatcher(bus, nil)

	tab := newTestTab(
		Operations{Create: Operation{Enabled: true, SuccessMessage: "Widget created", RefreshAfter: true}},
		tabular.Handlers{
			CreateItem: func(ctx context.Context, item tabular.Row) (tabular.Row, error) {
				return tabular.Row{"id": "w1"}, nil
			},
		},
	)

	created, err := d.Create(context.Background(), tab, tabular.Row{"name": "w"})
	require.NoError(t, err)
	assert.Equal(t, "w1", created["id"])

	toasts := bus.byType(event.TypeNotifySuccess)
	require.Len(t, toasts, 1)
	note, ok := toasts[0].Payload.(event.Notification)
	require.True(t, ok)
	assert.Equal(t, "Widget created", note.Detail)

	refreshes := bus.byType(event.TypeDataRefreshed)
	require.Len(t, refreshes, 1)
	refresh, ok := refreshes[0].Payload.(event.Refresh)
	require.True(t, ok)
	assert.Equal(t, "widgets", refresh.Entity)
}

func TestDispatcherFailurePublishesErrorAndReturnsIt(t *testing.T) {
	t.Parallel()

	bus := &recordingBus{}
	d := NewDispatcher(bus, nil)

	boom := errors.New("constraint violated")
	tab := newTestTab(
		Operations{Delete: Operation{Enabled: true, ErrorPrefix: "Failed to delete widget", RefreshAfter: true}},
		tabular.Handlers{
			DeleteItem: func(ctx context.Context, ref tabular.RowRef) error {
				return boom
			},
		},
	)

	err := d.Delete(context.Background(), tab, tabular.RowRef{Kind: tabular.KindParent, ParentID: "w1"})
	require.ErrorIs(t, err, boom)

	toasts := bus.byType(event.TypeNotifyError)
	require.Len(t, toasts, 1)
	note, ok := toasts[0].Payload.(event.Notification)
	require.True(t, ok)
	assert.Equal(t, "Failed to delete widget: constraint violated", note.Detail)

	// No refresh after a failed operation.
	assert.Empty(t, bus.byType(event.TypeDataRefreshed))
}

func TestDispatcherCustomActionRouting(t *testing.T) {
	t.Parallel()

	bus := &recordingBus{}
	d := NewDispatcher(bus, nil)

	var got string
	tab := newTestTab(
		Operations{Custom: Operation{Enabled: true, SuccessMessage: "done"}},
		tabular.Handlers{
			ExecuteCustomAction: func(ctx context.Context, action string, row tabular.Row) error {
				got = action
				return nil
			},
		},
	)

	require.NoError(t, d.CustomAction(context.Background(), tab, "markRead", tabular.Row{"id": "c1"}))
	assert.Equal(t, "markRead", got)
}

func TestRegistryOrdersAndIndexesTabs(t *testing.T) {
	t.Parallel()

	a := newTestTab(Operations{}, tabular.Handlers{})
	a.Config.Entity = "b-tab"
	a.Meta.Order = 2
	b := newTestTab(Operations{}, tabular.Handlers{})
	b.Config.Entity = "a-tab"
	b.Meta.Order = 1

	r := NewRegistry(a, b)

	tabs := r.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, "a-tab", tabs[0].Config.Entity)
	assert.Equal(t, "b-tab", tabs[1].Config.Entity)

	got, ok := r.Get("b-tab")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryLoadAllRunsEveryTab(t *testing.T) {
	t.Parallel()

	ok1 := newTestTab(Operations{}, tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return tabular.Page{Items: []tabular.Row{{"id": "1"}}, Total: 1, Page: 1}, nil
		},
	})
	ok1.Config.Entity = "ok"
	bad := newTestTab(Operations{}, tabular.Handlers{
		LoadData: func(ctx context.Context, q tabular.Query) (tabular.Page, error) {
			return tabular.Page{}, errors.New("db down")
		},
	})
	bad.Config.Entity = "bad"

	pages, errs := NewRegistry(ok1, bad).LoadAll(context.Background())

	require.Contains(t, pages, "ok")
	assert.Equal(t, 1, pages["ok"].Total)
	require.Contains(t, errs, "bad")
	assert.NotContains(t, pages, "bad")
}
