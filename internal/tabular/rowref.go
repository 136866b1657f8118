package tabular

import (
	"fmt"
	"strconv"
)

// Kind is the closed set of row identities a managed table can hold. It is
// decided once, at flattening time, and carried on every row so operations
// never have to sniff row shapes.
type Kind string

const (
	KindParent       Kind = "parent"
	KindCartItem     Kind = "cart_item"
	KindWishlistItem Kind = "wishlist_item"
)

// RowRef identifies the target of a row-level operation. For parent rows the
// operation targets the whole collection owned by ParentID; for child rows
// it targets the single (ParentID, ChildID) line.
type RowRef struct {
	Kind     Kind   `json:"kind"`
	ParentID string `json:"parentId"`
	ChildID  string `json:"childId,omitempty"`
}

// IsChild reports whether the ref targets a single nested line item.
func (r RowRef) IsChild() bool {
	return r.Kind == KindCartItem || r.Kind == KindWishlistItem
}

// Classify derives the RowRef for a row. A row carrying both a productId and
// a parent back-reference is a level-1 child; a row with a top-level id and
// no back-reference is a level-0 parent. This is the single shared
// discriminator for cart and wishlist operations.
func Classify(row Row) RowRef {
	parentID, hasParent := fieldString(row, "parentUserId")
	productID, hasProduct := fieldString(row, "productId")

	if hasParent && hasProduct {
		kind := KindCartItem
		if it, _ := fieldString(row, "itemType"); it == string(KindWishlistItem) {
			kind = KindWishlistItem
		}
		return RowRef{Kind: kind, ParentID: parentID, ChildID: productID}
	}

	for _, key := range []string{"userId", "id"} {
		if id, ok := fieldString(row, key); ok {
			return RowRef{Kind: KindParent, ParentID: id}
		}
	}

	return RowRef{Kind: KindParent}
}

// fieldString extracts a field as a non-empty string, tolerating the numeric
// and string id representations that arrive from JSON payloads.
func fieldString(row Row, key string) (string, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", false
	}

	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		s := fmt.Sprint(v)
		if s == "" {
			return "", false
		}
		return s, true
	}
}
