package store

import (
	"database/sql"
	"fmt"

	"github.com/dbaadom/dormcart/internal/model"
)

type RatingStore struct {
	db *sql.DB
}

func NewRatingStore(db *sql.DB) *RatingStore {
	return &RatingStore{db: db}
}

// Create records a rating of a seller by a rater, optionally tied to a
// product. One rating per (seller, rater, product) triple.
func (s *RatingStore) Create(sellerID, raterID int64, productID *int64, rating int, comment string) (*model.SellerRating, error) {
	var pid sql.NullInt64
	if productID != nil {
		pid = sql.NullInt64{Int64: *productID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO seller_ratings (seller_id, rater_id, product_id, rating, comment) VALUES (?, ?, ?, ?, ?)`,
		sellerID, raterID, pid, rating, comment,
	)
	if err != nil {
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT id, seller_id, rater_id, product_id, rating, comment, created_at FROM seller_ratings WHERE id = ?`,
		id,
	)
	var r model.SellerRating
	if err := row.Scan(&r.ID, &r.SellerID, &r.RaterID, &pid, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	if pid.Valid {
		r.ProductID = &pid.Int64
	}
	return &r, nil
}

// SellerStats returns the average rating (one decimal place) and count for
// a seller; both are zero when the seller has never been rated.
func (s *RatingStore) SellerStats(sellerID int64) (*model.RatingStats, error) {
	row := s.db.QueryRow(
		`SELECT COALESCE(ROUND(AVG(rating), 1), 0), COUNT(*) FROM seller_ratings WHERE seller_id = ?`,
		sellerID,
	)
	var stats model.RatingStats
	if err := row.Scan(&stats.Average, &stats.Count); err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}
	return &stats, nil
}
