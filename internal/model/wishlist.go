package model

import "time"

type WishlistItem struct {
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	AddedAt      time.Time `json:"addedAt"`
}

// AdminUserWishlistData is the parent record the wishlist management table
// consumes.
type AdminUserWishlistData struct {
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Wishlist []WishlistItem `json:"wishlist"`
}
