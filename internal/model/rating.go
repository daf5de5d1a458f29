package model

import "time"

type SellerRating struct {
	ID        int64     `json:"id"`
	SellerID  int64     `json:"seller_id"`
	RaterID   int64     `json:"rater_id"`
	ProductID *int64    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingStats is the aggregate shown on a seller's profile. Average is
// rounded to one decimal place and zero when the seller has no ratings.
type RatingStats struct {
	Average float64 `json:"avg_rating"`
	Count   int     `json:"rating_count"`
}
