package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dbaadom/dormcart/internal/auth"
	"github.com/dbaadom/dormcart/internal/cart"
	"github.com/dbaadom/dormcart/internal/model"
)

type CartHandler struct {
	carts  *cart.Manager
	logger *slog.Logger
}

func NewCartHandler(carts *cart.Manager, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// Add puts a product in the current user's cart and redirects back to the
// page the form came from. Adding twice is a friendly no-op.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	outcome, err := h.carts.Add(auth.UserID(r.Context()), productID)
	if err != nil {
		h.logger.Error("add to cart", "product_id", productID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	switch outcome {
	case cart.NotFound:
		http.NotFound(w, r)
	case cart.Unavailable:
		setFlash(w, "error", "That item is no longer available.")
		redirectBack(w, r)
	case cart.AlreadyInCart:
		setFlash(w, "info", "Already in cart.")
		redirectBack(w, r)
	default:
		setFlash(w, "success", "Added to cart!")
		redirectBack(w, r)
	}
}

// Remove deletes the cart row; removing an item that is not there succeeds
// the same way.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.carts.Remove(auth.UserID(r.Context()), productID); err != nil {
		h.logger.Error("remove from cart", "product_id", productID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	flashRedirect(w, r, "success", "Removed from cart.", "/cart")
}

// Increment is an intentional no-op: unique items keep quantity 1.
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.carts.Increment(auth.UserID(r.Context()), productID); !errors.Is(err, cart.ErrQuantityFixed) && err != nil {
		h.logger.Error("increment cart", "product_id", productID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	flashRedirect(w, r, "info", "Quantity increases are disabled for unique items.", "/cart")
}

type cartResponse struct {
	Items   []model.CartEntry `json:"items"`
	Summary cart.Summary      `json:"summary"`
}

// Get returns the cart contents with the computed summary.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.carts.List(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list cart", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list cart"})
		return
	}
	if entries == nil {
		entries = []model.CartEntry{}
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Items:   entries,
		Summary: cart.Summarize(entries),
	})
}

// Checkout is not offered; the cart is the end of the line here.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	flashRedirect(w, r, "info", "Checkout is unavailable in this demo.", "/cart")
}
