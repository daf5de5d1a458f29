package model

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Condition   string    `json:"condition"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	SellerID    *int64    `json:"seller_id"`
	IsSold      bool      `json:"is_sold"`
	MainImage   string    `json:"main_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SellerStats summarizes a user's listing activity for the profile page.
type SellerStats struct {
	TotalListings  int `json:"total_listings"`
	ActiveListings int `json:"active_listings"`
	SoldListings   int `json:"sold_listings"`
}
