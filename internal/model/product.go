package model

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductSummary is the slim shape embedded in pickers and public listings.
type ProductSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}
