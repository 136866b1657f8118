package tabular

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func cartHierarchy() *Hierarchy {
	return &Hierarchy{
		Enabled:             true,
		ParentKeyField:      "userId",
		ParentIDField:       "parentUserId",
		ChildAttributeField: "cart",
		LoadStrategy:        LoadEager,
		MaxDepth:            2,
	}
}

func TestFlatten_Totality(t *testing.T) {
	t.Parallel()

	t.Run("emits one row per parent plus one per child, children contiguous", func(t *testing.T) {
		parents := []Row{
			{"userId": "u1", "username": "ana", "cart": []Row{
				{"productId": "p1", "quantity": 1, "productPrice": 5.0},
				{"productId": "p2", "quantity": 2, "productPrice": 3.0},
			}},
			{"userId": "u2", "username": "bob", "cart": []Row{}},
			{"userId": "u3", "username": "cal", "cart": []Row{
				{"productId": "p9", "quantity": 4, "productPrice": 1.5},
			}},
		}

		rows := Flatten(parents, cartHierarchy(), KindCartItem)

		require.Len(t, rows, 3+2+0+1)

		require.Equal(t, 0, rows[0]["level"])
		require.Equal(t, "u1", rows[0]["dataKey"])
		require.Equal(t, 1, rows[1]["level"])
		require.Equal(t, "u1", rows[1]["parentUserId"])
		require.Equal(t, "u1_p1", rows[1]["dataKey"])
		require.Equal(t, "u1_p2", rows[2]["dataKey"])

		require.Equal(t, 0, rows[3]["level"])
		require.Equal(t, "u2", rows[3]["dataKey"])
		require.Equal(t, false, rows[3]["hasChildren"])

		require.Equal(t, 0, rows[4]["level"])
		require.Equal(t, "u3_p9", rows[5]["dataKey"])
	})

	t.Run("parent with zero children still appears with indicator from array length", func(t *testing.T) {
		parents := []Row{{"userId": "u7", "cart": nil}}

		rows := Flatten(parents, cartHierarchy(), KindCartItem)

		require.Len(t, rows, 1)
		require.Equal(t, false, rows[0]["hasChildren"])
		require.Equal(t, 0, rows[0]["childCount"])
		require.Equal(t, "0 items, $0.00", rows[0]["cartSummary"])
	})
}

func TestFlatten_CartSummaryCountsQuantities(t *testing.T) {
	t.Parallel()

	// The summary counts units across all lines, not cart lines: a single
	// line with quantity 2 reads "2 items", and quantities add up across
	// lines.
	parents := []Row{
		{"userId": "u1", "cart": []Row{
			{"productId": "p1", "quantity": 2, "productPrice": 10.0},
		}},
		{"userId": "u2", "cart": []Row{
			{"productId": "p1", "quantity": 3, "productPrice": 4.0},
			{"productId": "p2", "quantity": 1, "productPrice": 8.0},
		}},
	}

	rows := Flatten(parents, cartHierarchy(), KindCartItem)

	require.Equal(t, "2 items, $20.00", rows[0]["cartSummary"])
	require.Equal(t, 1, rows[0]["childCount"])

	require.Equal(t, "4 items, $20.00", rows[2]["cartSummary"])
	require.Equal(t, 2, rows[2]["childCount"])
	require.Equal(t, 20.0, rows[2]["cartTotalValue"])
}

func TestFlatten_ChildKeyUniqueness(t *testing.T) {
	t.Parallel()

	// Two parents with the same child-level product id must still produce
	// distinct dataKey values.
	parents := []Row{
		{"userId": "u1", "cart": []Row{{"productId": "5", "quantity": 1, "productPrice": 2.0}}},
		{"userId": "u2", "cart": []Row{{"productId": "5", "quantity": 3, "productPrice": 2.0}}},
	}

	rows := Flatten(parents, cartHierarchy(), KindCartItem)

	seen := map[string]bool{}
	for _, row := range rows {
		key, ok := fieldString(row, "dataKey")
		require.True(t, ok, "row %v has no dataKey", row)
		require.False(t, seen[key], "duplicate dataKey %q", key)
		seen[key] = true
	}
}

func TestFlatten_WishlistKeys(t *testing.T) {
	t.Parallel()

	h := &Hierarchy{
		Enabled:             true,
		ParentKeyField:      "userId",
		ParentIDField:       "parentUserId",
		ChildAttributeField: "wishlist",
		LoadStrategy:        LoadEager,
	}
	parents := []Row{
		{"userId": "u1", "wishlist": []Row{
			{"productId": "p1"},
			{"productId": "p2"},
		}},
	}

	rows := Flatten(parents, h, KindWishlistItem)

	require.Len(t, rows, 3)
	require.Equal(t, "2 items", rows[0]["wishlistSummary"])
	require.Equal(t, "u1_item_0", rows[1]["dataKey"])
	require.Equal(t, "u1_item_1", rows[2]["dataKey"])
	require.Equal(t, "wishlist_item", rows[1]["itemType"])
}

func TestFlatten_EndToEndScenario(t *testing.T) {
	t.Parallel()

	parents := []Row{
		{"userId": "U", "username": "dora", "cart": []Row{
			{"productId": 1, "quantity": 2, "productPrice": 10.0},
		}},
	}

	rows := Flatten(parents, cartHierarchy(), KindCartItem)

	require.Len(t, rows, 2)

	parent := rows[0]
	require.Equal(t, "2 items, $20.00", parent["cartSummary"])
	require.Equal(t, 20.0, parent["cartTotalValue"])
	require.Nil(t, parent["parentUserId"])
	require.Equal(t, "user", parent["itemType"])

	child := rows[1]
	require.Equal(t, "U", child["parentUserId"])
	require.Equal(t, 20.0, child["subtotal"])
	require.Equal(t, "cart_item", child["itemType"])
	require.Equal(t, "U_1", child["dataKey"])
}

func TestFlatten_OrderPreserved(t *testing.T) {
	t.Parallel()

	parents := make([]Row, 5)
	for i := range parents {
		parents[i] = Row{"userId": fmt.Sprintf("u%d", i), "cart": []Row{}}
	}

	rows := Flatten(parents, cartHierarchy(), KindCartItem)

	require.Len(t, rows, 5)
	for i, row := range rows {
		require.Equal(t, fmt.Sprintf("u%d", i), row["dataKey"])
	}
}

func TestFlatten_DisabledHierarchyPassesThrough(t *testing.T) {
	t.Parallel()

	parents := []Row{{"id": "p1"}, {"id": "p2"}}

	rows := Flatten(parents, nil, KindCartItem)

	require.Len(t, rows, 2)
	require.NotContains(t, rows[0], "level")
}
