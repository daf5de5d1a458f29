// Package cart enforces the marketplace's unique-item cart rules: at most
// one row per (user, product), quantities fixed at 1, availability checked
// at add time.
package cart

import (
	"errors"
	"fmt"
	"math"

	"github.com/dbaadom/dormcart/internal/model"
	"github.com/dbaadom/dormcart/internal/store"
)

// Outcome reports what an Add attempt did.
type Outcome int

const (
	Added Outcome = iota
	AlreadyInCart
	Unavailable
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyInCart:
		return "already_in_cart"
	case Unavailable:
		return "unavailable"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ErrQuantityFixed is returned by Increment: cart quantities are fixed at 1
// so second-hand items cannot be added twice.
var ErrQuantityFixed = errors.New("cart quantities are fixed at 1")

// Service fee: 5% of the subtotal, capped at $9.99, waived for empty carts.
const (
	feeRate = 0.05
	feeCap  = 9.99
)

type Manager struct {
	carts    *store.CartStore
	products *store.ProductStore
}

func NewManager(carts *store.CartStore, products *store.ProductStore) *Manager {
	return &Manager{carts: carts, products: products}
}

// Add puts a product in the user's cart. The product must exist and be
// unsold; adding a product that is already in the cart is a no-op reported
// as AlreadyInCart, not an error. A concurrent duplicate add loses the race
// on the (user_id, product_id) primary key and also reports AlreadyInCart.
func (m *Manager) Add(userID, productID int64) (Outcome, error) {
	product, err := m.products.GetByID(productID)
	if err != nil {
		return NotFound, fmt.Errorf("check product: %w", err)
	}
	if product == nil {
		return NotFound, nil
	}
	if product.IsSold {
		return Unavailable, nil
	}

	inserted, err := m.carts.Insert(userID, productID)
	if err != nil {
		return NotFound, fmt.Errorf("add to cart: %w", err)
	}
	if !inserted {
		return AlreadyInCart, nil
	}
	return Added, nil
}

// Remove deletes the cart row if present; removing an absent pair is fine.
func (m *Manager) Remove(userID, productID int64) error {
	return m.carts.Delete(userID, productID)
}

// Increment always rejects. The operation exists so the corresponding UI
// action is an explicit no-op rather than a missing feature.
func (m *Manager) Increment(userID, productID int64) error {
	return ErrQuantityFixed
}

// List returns the user's cart entries joined with their products.
func (m *Manager) List(userID int64) ([]model.CartEntry, error) {
	return m.carts.ListByUser(userID)
}

// Summary totals a cart for display and checkout.
type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Fee       float64 `json:"fee"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// Summarize computes subtotal, service fee, and total for a set of cart
// entries. The fee formula is a fixed business rule.
func Summarize(entries []model.CartEntry) Summary {
	var s Summary
	for _, e := range entries {
		s.Subtotal += e.Price * float64(e.Quantity)
		s.ItemCount += e.Quantity
	}
	if len(entries) > 0 {
		s.Fee = math.Min(feeCap, s.Subtotal*feeRate)
	}
	s.Total = s.Subtotal + s.Fee
	return s
}
