package service

import (
	"time"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/tabular"
)

// Row mappers. Entity services hand the admin tables plain row maps whose
// keys match the entities' JSON field names, so the tabular engine and the
// HTTP payloads agree on shape.

func productRow(p model.Product) tabular.Row {
	return tabular.Row{
		"id":            p.ID,
		"name":          p.Name,
		"description":   p.Description,
		"price":         p.Price,
		"stockQuantity": p.StockQuantity,
		"category":      p.Category,
		"rating":        p.Rating,
		"imageUrl":      p.ImageURL,
		"active":        p.Active,
		"createdAt":     p.CreatedAt.Format(time.RFC3339),
	}
}

func userRow(u model.User) tabular.Row {
	return tabular.Row{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"role":      u.Role,
		"active":    u.Active,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
	}
}

func cartItemRow(it model.CartItem) tabular.Row {
	return tabular.Row{
		"productId":            it.ProductID,
		"productName":          it.ProductName,
		"productPrice":         it.ProductPrice,
		"productStockQuantity": it.ProductStockQuantity,
		"quantity":             it.Quantity,
		"addedAt":              it.AddedAt.Format(time.RFC3339),
	}
}

func cartUserRow(u model.AdminUserCartData) tabular.Row {
	items := make([]tabular.Row, 0, len(u.Cart))
	for _, it := range u.Cart {
		items = append(items, cartItemRow(it))
	}
	return tabular.Row{
		"userId":         u.UserID,
		"username":       u.Username,
		"email":          u.Email,
		"cart":           items,
		"cartTotalValue": u.CartTotalValue,
	}
}

func wishlistItemRow(it model.WishlistItem) tabular.Row {
	return tabular.Row{
		"productId":    it.ProductID,
		"productName":  it.ProductName,
		"productPrice": it.ProductPrice,
		"addedAt":      it.AddedAt.Format(time.RFC3339),
	}
}

func wishlistUserRow(u model.AdminUserWishlistData) tabular.Row {
	items := make([]tabular.Row, 0, len(u.Wishlist))
	for _, it := range u.Wishlist {
		items = append(items, wishlistItemRow(it))
	}
	return tabular.Row{
		"userId":   u.UserID,
		"username": u.Username,
		"email":    u.Email,
		"wishlist": items,
	}
}

func contactRow(c model.ContactSubmission) tabular.Row {
	return tabular.Row{
		"id":      c.ID,
		"name":    c.Name,
		"email":   c.Email,
		"subject": c.Subject,
		"message": c.Message,
		"status":  c.Status,
		"date":    c.CreatedAt.Format(time.RFC3339),
	}
}

// pageOf wraps mapped rows with the paging metadata the admin tables expect.
func pageOf(items []tabular.Row, total int, q tabular.Query) tabular.Page {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size <= 0 {
		size = 10
	}
	if items == nil {
		items = []tabular.Row{}
	}
	return tabular.Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      size,
		TotalPages: tabular.PageCount(total, size),
	}
}

// Row field extraction for create/update payloads.

func rowString(row tabular.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func rowFloat(row tabular.Row, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func rowInt(row tabular.Row, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func rowBool(row tabular.Row, key string) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}
