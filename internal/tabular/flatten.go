package tabular

import "fmt"

// Flatten converts a page of parent records, each carrying a nested child
// array, into a single ordered row list: one level-0 row per parent,
// immediately followed by one level-1 row per nested child. It is a pure,
// total function: every parent appears exactly once (with zero children it
// simply has no following rows), parent order is preserved, and each
// parent's children stay contiguous and in source order.
func Flatten(parents []Row, h *Hierarchy, kind Kind) []Row {
	if h == nil || !h.Enabled {
		out := make([]Row, len(parents))
		for i, p := range parents {
			out[i] = p.Clone()
		}
		return out
	}

	parentKey := h.ParentKeyField
	if parentKey == "" {
		parentKey = "userId"
	}
	backRef := h.ParentIDField
	if backRef == "" {
		backRef = "parentUserId"
	}

	rows := make([]Row, 0, len(parents)*2)
	for _, parent := range parents {
		parentID, _ := fieldString(parent, parentKey)
		children := childRows(parent[h.ChildAttributeField])

		pr := parent.Clone()
		pr["level"] = 0
		pr[backRef] = nil
		pr["itemType"] = "user"
		pr["dataKey"] = parentID
		pr["hasChildren"] = len(children) > 0
		pr["childCount"] = len(children)

		total := 0.0
		itemCount := 0
		for _, child := range children {
			total += lineSubtotal(child)
			qty, _ := toFloat(child["quantity"])
			itemCount += int(qty)
		}
		switch kind {
		case KindWishlistItem:
			// Wishlist lines carry no quantity; the count is the line count.
			pr["wishlistSummary"] = fmt.Sprintf("%d items", len(children))
		default:
			pr["cartSummary"] = fmt.Sprintf("%d items, $%.2f", itemCount, total)
			pr["cartTotalValue"] = total
		}
		rows = append(rows, pr)

		for i, child := range children {
			cr := child.Clone()
			cr["level"] = 1
			cr[backRef] = parentID
			cr["itemType"] = string(kind)
			cr["dataKey"] = childDataKey(parentID, cr, kind, i)
			if kind != KindWishlistItem {
				cr["subtotal"] = lineSubtotal(child)
			}
			rows = append(rows, cr)
		}
	}

	return rows
}

// childDataKey synthesizes a row identity that stays unique across the whole
// flattened list even when two parents hold the same child-level id.
func childDataKey(parentID string, child Row, kind Kind, index int) string {
	if kind == KindWishlistItem {
		return fmt.Sprintf("%s_item_%d", parentID, index)
	}
	productID, ok := fieldString(child, "productId")
	if !ok {
		return fmt.Sprintf("%s_item_%d", parentID, index)
	}
	return fmt.Sprintf("%s_%s", parentID, productID)
}

// lineSubtotal computes quantity × unit price for one nested line item.
func lineSubtotal(item Row) float64 {
	qty, _ := toFloat(item["quantity"])
	price, ok := toFloat(item["productPrice"])
	if !ok {
		price, _ = toFloat(item["price"])
	}
	return qty * price
}

// childRows normalizes the nested array shapes that reach the flattener:
// typed []Row from config factories or []any of maps from decoded JSON.
func childRows(v any) []Row {
	switch t := v.(type) {
	case nil:
		return nil
	case []Row:
		return t
	case []map[string]any:
		out := make([]Row, len(t))
		for i, m := range t {
			out[i] = Row(m)
		}
		return out
	case []any:
		out := make([]Row, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, Row(m))
			}
		}
		return out
	default:
		return nil
	}
}
