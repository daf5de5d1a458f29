package model

import "time"

type CartItem struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartEntry is a cart row joined with its product, as served to the cart page.
type CartEntry struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	MainImage string  `json:"main_image,omitempty"`
}
