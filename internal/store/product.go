package store

import (
	"database/sql"
	"fmt"

	"github.com/dbaadom/dormcart/internal/model"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func scanProduct(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var sellerID sql.NullInt64
	var isSold int

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Condition,
		&p.Color, &p.Category, &sellerID, &isSold, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.IsSold = isSold != 0
	if sellerID.Valid {
		p.SellerID = &sellerID.Int64
	}
	return &p, nil
}

const productCols = `id, title, description, price, condition, color, category, seller_id, is_sold, created_at`

// mainImageSubquery picks one thumbnail per product so list pages do not
// need a second query per row.
const mainImageSubquery = `(
    SELECT image_url FROM product_images pi
    WHERE pi.product_id = p.id
    ORDER BY pi.sort_order ASC, pi.id ASC
    LIMIT 1
)`

func scanProductWithImage(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var sellerID sql.NullInt64
	var mainImage sql.NullString
	var isSold int

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Condition,
		&p.Color, &p.Category, &sellerID, &isSold, &p.CreatedAt, &mainImage,
	)
	if err != nil {
		return nil, err
	}

	p.IsSold = isSold != 0
	if sellerID.Valid {
		p.SellerID = &sellerID.Int64
	}
	if mainImage.Valid {
		p.MainImage = mainImage.String
	}
	return &p, nil
}

func (s *ProductStore) collect(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProductWithImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductStore) GetByID(id int64) (*model.Product, error) {
	row := s.db.QueryRow(`SELECT `+productCols+` FROM products p WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListAvailable returns unsold products, newest first. A non-empty query
// filters by a LIKE match over title, description, and category.
func (s *ProductStore) ListAvailable(query string, limit int) ([]model.Product, error) {
	sqlStr := `SELECT ` + productCols + `, ` + mainImageSubquery + ` FROM products p WHERE p.is_sold = 0`
	var params []any

	if query != "" {
		sqlStr += ` AND (p.title LIKE ? OR p.description LIKE ? OR p.category LIKE ?)`
		like := "%" + query + "%"
		params = append(params, like, like, like)
	}

	sqlStr += ` ORDER BY p.created_at DESC, p.id DESC LIMIT ?`
	params = append(params, limit)

	rows, err := s.db.Query(sqlStr, params...)
	if err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	return s.collect(rows)
}

func (s *ProductStore) ListByCategory(category string) ([]model.Product, error) {
	rows, err := s.db.Query(
		`SELECT `+productCols+`, `+mainImageSubquery+` FROM products p
         WHERE p.is_sold = 0 AND p.category = ?
         ORDER BY p.created_at DESC, p.id DESC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return s.collect(rows)
}

// ListByPriceRange returns unsold products with minPrice <= price < maxPrice,
// cheapest first. Used by the best-deals bands.
func (s *ProductStore) ListByPriceRange(minPrice, maxPrice float64, limit int) ([]model.Product, error) {
	rows, err := s.db.Query(
		`SELECT `+productCols+`, `+mainImageSubquery+` FROM products p
         WHERE p.is_sold = 0 AND p.price >= ? AND p.price < ?
         ORDER BY p.price ASC LIMIT ?`,
		minPrice, maxPrice, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list products by price: %w", err)
	}
	return s.collect(rows)
}

func (s *ProductStore) ListBySeller(sellerID int64, limit int) ([]model.Product, error) {
	rows, err := s.db.Query(
		`SELECT `+productCols+`, `+mainImageSubquery+` FROM products p
         WHERE p.seller_id = ?
         ORDER BY p.created_at DESC, p.id DESC LIMIT ?`,
		sellerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list products by seller: %w", err)
	}
	return s.collect(rows)
}

func (s *ProductStore) ListImages(productID int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT image_url FROM product_images WHERE product_id = ? ORDER BY sort_order ASC, id ASC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, url)
	}
	return images, rows.Err()
}

func (s *ProductStore) SellerStats(sellerID int64) (*model.SellerStats, error) {
	row := s.db.QueryRow(
		`SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN is_sold = 0 THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN is_sold = 1 THEN 1 ELSE 0 END), 0)
         FROM products WHERE seller_id = ?`,
		sellerID,
	)

	var stats model.SellerStats
	if err := row.Scan(&stats.TotalListings, &stats.ActiveListings, &stats.SoldListings); err != nil {
		return nil, fmt.Errorf("seller stats: %w", err)
	}
	return &stats, nil
}

// Create inserts a product. Listings in this slice come from seed data and
// tests; there is no public sell endpoint.
func (s *ProductStore) Create(title, description string, price float64, condition, color, category string, sellerID *int64) (*model.Product, error) {
	var sid sql.NullInt64
	if sellerID != nil {
		sid = sql.NullInt64{Int64: *sellerID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO products (title, description, price, condition, color, category, seller_id)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, description, price, condition, color, category, sid,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// MarkSold flips the availability flag; add-to-cart rejects sold products.
func (s *ProductStore) MarkSold(id int64) error {
	_, err := s.db.Exec(`UPDATE products SET is_sold = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}
	return nil
}

func (s *ProductStore) AddImage(productID int64, imageURL string, sortOrder int) error {
	_, err := s.db.Exec(
		`INSERT INTO product_images (product_id, image_url, sort_order) VALUES (?, ?, ?)`,
		productID, imageURL, sortOrder,
	)
	if err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}
