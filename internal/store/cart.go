package store

import (
	"database/sql"
	"fmt"

	"github.com/dbaadom/dormcart/internal/model"
)

type CartStore struct {
	db *sql.DB
}

func NewCartStore(db *sql.DB) *CartStore {
	return &CartStore{db: db}
}

// Insert adds a (user, product) row with quantity 1. It returns false when
// the pair already exists: the composite primary key resolves both the
// sequential and the concurrent duplicate to "already present" instead of
// a second row.
func (s *CartStore) Insert(userID, productID int64) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, 1)`,
		userID, productID,
	)
	if err != nil {
		return false, fmt.Errorf("insert cart item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes the row if present. Deleting an absent pair is not an error.
func (s *CartStore) Delete(userID, productID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (s *CartStore) Get(userID, productID int64) (*model.CartItem, error) {
	row := s.db.QueryRow(
		`SELECT user_id, product_id, quantity, created_at FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	var item model.CartItem
	err := row.Scan(&item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &item, nil
}

// ListByUser returns the user's cart rows joined with their products,
// newest first.
func (s *CartStore) ListByUser(userID int64) ([]model.CartEntry, error) {
	rows, err := s.db.Query(
		`SELECT
            p.id, p.title, p.price, p.condition, p.color, p.category, ci.quantity,
            (
                SELECT image_url FROM product_images pi
                WHERE pi.product_id = p.id
                ORDER BY pi.sort_order ASC, pi.id ASC
                LIMIT 1
            )
         FROM cart_items ci
         JOIN products p ON p.id = ci.product_id
         WHERE ci.user_id = ?
         ORDER BY ci.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var entries []model.CartEntry
	for rows.Next() {
		var e model.CartEntry
		var mainImage sql.NullString
		err := rows.Scan(&e.ProductID, &e.Title, &e.Price, &e.Condition, &e.Color, &e.Category, &e.Quantity, &mainImage)
		if err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		if mainImage.Valid {
			e.MainImage = mainImage.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
