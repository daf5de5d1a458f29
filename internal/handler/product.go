package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dbaadom/dormcart/internal/model"
	"github.com/dbaadom/dormcart/internal/store"
)

const homeFeedLimit = 60

// Category describes a browsable section of the catalog. The set is fixed;
// "hobbies" is routable but not shown on the categories page.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

var categories = []Category{
	{Slug: "dorm-and-room", Name: "Dorm & Room"},
	{Slug: "electronics", Name: "Electronics"},
	{Slug: "books", Name: "Books"},
	{Slug: "clothing", Name: "Clothing"},
	{Slug: "kitchen", Name: "Kitchen"},
	{Slug: "transport", Name: "Transport"},
}

var categoryBySlug = map[string]string{
	"dorm-and-room": "Dorm & Room",
	"electronics":   "Electronics",
	"books":         "Books",
	"clothing":      "Clothing",
	"kitchen":       "Kitchen",
	"transport":     "Transport",
	"hobbies":       "Hobbies",
}

type ProductHandler struct {
	products *store.ProductStore
	logger   *slog.Logger
}

func NewProductHandler(products *store.ProductStore, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List serves the home feed: available products, newest first, optionally
// filtered by a search query.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	products, err := h.products.ListAvailable(q, homeFeedLimit)
	if err != nil {
		h.logger.Error("list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"q":        q,
	})
}

// Get serves one product with its full image set.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.products.GetByID(id)
	if err != nil {
		h.logger.Error("get product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	images, err := h.products.ListImages(id)
	if err != nil {
		h.logger.Error("list product images", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if images == nil {
		images = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product": product,
		"images":  images,
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categories)
}

// ByCategory lists available products in one category, addressed by slug.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := categoryBySlug[r.PathValue("slug")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	products, err := h.products.ListByCategory(name)
	if err != nil {
		h.logger.Error("list category products", "category", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category": name,
		"products": products,
	})
}

// Deals groups the cheapest available products into fixed price bands.
func (h *ProductHandler) Deals(w http.ResponseWriter, r *http.Request) {
	bands := []struct {
		key      string
		min, max float64
	}{
		{"under_5", 0, 5},
		{"under_10", 5, 10},
		{"under_25", 10, 25},
	}

	resp := make(map[string][]model.Product, len(bands))
	for _, b := range bands {
		products, err := h.products.ListByPriceRange(b.min, b.max, 6)
		if err != nil {
			h.logger.Error("list deals", "band", b.key, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list deals"})
			return
		}
		if products == nil {
			products = []model.Product{}
		}
		resp[b.key] = products
	}

	writeJSON(w, http.StatusOK, resp)
}
