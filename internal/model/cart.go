package model

import "time"

// CartItem is one line of a user's cart, denormalized with the product
// fields the admin table renders and edits.
type CartItem struct {
	ProductID            string    `json:"productId"`
	ProductName          string    `json:"productName"`
	ProductPrice         float64   `json:"productPrice"`
	ProductStockQuantity int       `json:"productStockQuantity"`
	Quantity             int       `json:"quantity"`
	AddedAt              time.Time `json:"addedAt"`
}

// Subtotal is the line value: quantity × unit price.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.ProductPrice
}

// AdminUserCartData is the parent record the cart management table consumes:
// user fields plus the nested line-item array the hierarchy flattening
// expands.
type AdminUserCartData struct {
	UserID         string     `json:"userId"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Cart           []CartItem `json:"cart"`
	CartTotalValue float64    `json:"cartTotalValue"`
}

// CartItemInput is the payload for adding or updating one cart line.
type CartItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
