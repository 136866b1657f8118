package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("row with productId and parent back-reference is a child", func(t *testing.T) {
		ref := Classify(Row{"productId": 7, "parentUserId": 4, "itemType": "cart_item"})

		assert.Equal(t, KindCartItem, ref.Kind)
		assert.Equal(t, "4", ref.ParentID)
		assert.Equal(t, "7", ref.ChildID)
		assert.True(t, ref.IsChild())
	})

	t.Run("row with id but no back-reference targets the whole collection", func(t *testing.T) {
		ref := Classify(Row{"id": 4})

		assert.Equal(t, KindParent, ref.Kind)
		assert.Equal(t, "4", ref.ParentID)
		assert.Empty(t, ref.ChildID)
		assert.False(t, ref.IsChild())
	})

	t.Run("userId takes precedence over id for parent identity", func(t *testing.T) {
		ref := Classify(Row{"userId": "u9", "id": "ignored"})

		assert.Equal(t, "u9", ref.ParentID)
	})

	t.Run("wishlist item type selects the wishlist kind", func(t *testing.T) {
		ref := Classify(Row{"productId": "p1", "parentUserId": "u1", "itemType": "wishlist_item"})

		assert.Equal(t, KindWishlistItem, ref.Kind)
	})

	t.Run("productId alone is not enough to make a child", func(t *testing.T) {
		ref := Classify(Row{"id": "p5", "productId": "p5"})

		assert.Equal(t, KindParent, ref.Kind)
	})
}
