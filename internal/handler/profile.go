package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dbaadom/dormcart/internal/auth"
	"github.com/dbaadom/dormcart/internal/model"
	"github.com/dbaadom/dormcart/internal/store"
)

type ProfileHandler struct {
	users    *store.UserStore
	products *store.ProductStore
	ratings  *store.RatingStore
	logger   *slog.Logger
}

func NewProfileHandler(users *store.UserStore, products *store.ProductStore, ratings *store.RatingStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, products: products, ratings: ratings, logger: logger}
}

// Get serves the current user's profile: identity, listing stats, rating
// stats, and the most recent listings.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := h.users.GetByID(userID)
	if err != nil {
		h.logger.Error("profile user lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}
	if user == nil {
		http.NotFound(w, r)
		return
	}

	stats, err := h.products.SellerStats(userID)
	if err != nil {
		h.logger.Error("profile seller stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}

	ratingStats, err := h.ratings.SellerStats(userID)
	if err != nil {
		h.logger.Error("profile rating stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}

	recent, err := h.products.ListBySeller(userID, 6)
	if err != nil {
		h.logger.Error("profile recent listings", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}
	if recent == nil {
		recent = []model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":            user,
		"display_name":    displayName(user),
		"stats":           stats,
		"rating_stats":    ratingStats,
		"recent_products": recent,
	})
}

// displayName falls back from the stored display name to "first last" to
// the email, so the profile header always shows something readable.
func displayName(u *model.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}
