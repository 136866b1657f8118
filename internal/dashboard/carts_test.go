package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
)

type fakeCartOps struct {
	removed [][2]string
	cleared []string
	updated [][2]string
	added   []string
}

func (f *fakeCartOps) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	parents := []tabular.Row{
		{
			"userId": "u1", "username": "ana", "email": "ana@shop.test",
			"cart": []tabular.Row{
				{"productId": "p1", "productName": "Mug", "productPrice": 10.0, "quantity": 2},
			},
		},
	}
	return tabular.Page{Items: parents, Total: 1, Page: 1, Limit: 10, TotalPages: 1}, nil
}

func (f *fakeCartOps) UserCart(ctx context.Context, userID string) (tabular.Row, error) {
	return tabular.Row{"userId": userID}, nil
}

func (f *fakeCartOps) AddItemToUserCart(ctx context.Context, userID string, in model.CartItemInput) error {
	f.added = append(f.added, userID+"/"+in.ProductID)
	return nil
}

func (f *fakeCartOps) UpdateUserCartItem(ctx context.Context, userID, productID string, item tabular.Row) error {
	f.updated = append(f.updated, [2]string{userID, productID})
	return nil
}

func (f *fakeCartOps) RemoveItemFromUserCart(ctx context.Context, userID, productID string) error {
	f.removed = append(f.removed, [2]string{userID, productID})
	return nil
}

func (f *fakeCartOps) ClearUserCart(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func TestCartsTabDeleteRoutesChildAndParent(t *testing.T) {
	t.Parallel()

	ops := &fakeCartOps{}
	tab := CartsTab(ops)
	ctx := context.Background()

	childRef := tabular.Classify(tabular.Row{
		"productId": "p1", "parentUserId": "u1", "itemType": "cart_item",
	})
	require.True(t, childRef.IsChild())
	require.NoError(t, tab.Config.Handlers.DeleteItem(ctx, childRef))
	require.Len(t, ops.removed, 1)
	assert.Equal(t, [2]string{"u1", "p1"}, ops.removed[0])
	assert.Empty(t, ops.cleared)

	parentRef := tabular.Classify(tabular.Row{"userId": "u1", "username": "ana"})
	require.False(t, parentRef.IsChild())
	require.NoError(t, tab.Config.Handlers.DeleteItem(ctx, parentRef))
	assert.Equal(t, []string{"u1"}, ops.cleared)
	assert.Len(t, ops.removed, 1)
}

func TestCartsTabUpdateOnlyTargetsChildRows(t *testing.T) {
	t.Parallel()

	ops := &fakeCartOps{}
	tab := CartsTab(ops)
	ctx := context.Background()

	childRef := tabular.RowRef{Kind: tabular.KindCartItem, ParentID: "u1", ChildID: "p1"}
	_, err := tab.Config.Handlers.UpdateItem(ctx, childRef, tabular.Row{"quantity": 3})
	require.NoError(t, err)
	require.Len(t, ops.updated, 1)
	assert.Equal(t, [2]string{"u1", "p1"}, ops.updated[0])

	parentRef := tabular.RowRef{Kind: tabular.KindParent, ParentID: "u1"}
	_, err = tab.Config.Handlers.UpdateItem(ctx, parentRef, tabular.Row{"quantity": 3})
	assert.ErrorIs(t, err, ErrOperationNotSupported)
}

func TestCartsTabLoadDataFlattensHierarchy(t *testing.T) {
	t.Parallel()

	tab := CartsTab(&fakeCartOps{})

	page, err := tab.Config.Handlers.LoadData(context.Background(), tabular.Query{Page: 1, Size: 10})
	require.NoError(t, err)

	// One parent plus its single cart line.
	require.Len(t, page.Items, 2)
	assert.Equal(t, 0, page.Items[0]["level"])
	assert.Equal(t, "u1", page.Items[0]["dataKey"])
	assert.Equal(t, 1, page.Items[1]["level"])
	assert.Equal(t, "u1_p1", page.Items[1]["dataKey"])
	assert.InDelta(t, 20.0, page.Items[1]["subtotal"], 1e-9)
}

func TestCartsTabChildActionSavesThroughCartService(t *testing.T) {
	t.Parallel()

	ops := &fakeCartOps{}
	tab := CartsTab(ops)

	require.NotNil(t, tab.Config.ChildAction)
	child := tab.Config.ChildAction.ChildTemplate.Clone()
	child["productId"] = "p9"
	child["quantity"] = 2

	require.NoError(t, tab.Config.ChildAction.Save(context.Background(), "u1", child))
	require.Len(t, ops.added, 1)
	assert.Equal(t, "u1/p9", ops.added[0])
}
