package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dbaadom/dormcart/internal/database"
	"github.com/dbaadom/dormcart/internal/model"
	"github.com/dbaadom/dormcart/internal/store"
)

func setupProductHandler(t *testing.T) (*http.ServeMux, *store.ProductStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	products := store.NewProductStore(db)
	h := NewProductHandler(products, slog.Default())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", h.List)
	mux.HandleFunc("GET /api/products/{id}", h.Get)
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("GET /api/categories/{slug}/products", h.ByCategory)
	mux.HandleFunc("GET /api/deals", h.Deals)
	return mux, products
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestProductList(t *testing.T) {
	mux, products := setupProductHandler(t)

	if _, err := products.Create("Desk Lamp", "LED lamp", 12.00, "Good", "Black", "Dorm & Room", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	sold, err := products.Create("Old Chair", "", 5.00, "Fair", "", "Dorm & Room", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := products.MarkSold(sold.ID); err != nil {
		t.Fatalf("mark sold: %v", err)
	}

	rec := get(t, mux, "/api/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Products []model.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Products) != 1 {
		t.Fatalf("products = %d, want 1 (sold items hidden)", len(resp.Products))
	}
	if resp.Products[0].Title != "Desk Lamp" {
		t.Errorf("title = %q", resp.Products[0].Title)
	}
}

func TestProductListSearch(t *testing.T) {
	mux, products := setupProductHandler(t)

	for _, title := range []string{"Physics Textbook", "Desk Lamp"} {
		if _, err := products.Create(title, "", 10.00, "Good", "", "Books", nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rec := get(t, mux, "/api/products?q=textbook")
	var resp struct {
		Products []model.Product `json:"products"`
		Q        string          `json:"q"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Q != "textbook" {
		t.Errorf("q = %q, want textbook", resp.Q)
	}
	if len(resp.Products) != 1 || resp.Products[0].Title != "Physics Textbook" {
		t.Errorf("products = %+v, want only the textbook", resp.Products)
	}
}

func TestProductGet(t *testing.T) {
	mux, products := setupProductHandler(t)

	p, err := products.Create("Desk Lamp", "LED lamp", 12.00, "Good", "Black", "Dorm & Room", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := products.AddImage(p.ID, "/img/lamp-front.jpg", 0); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if err := products.AddImage(p.ID, "/img/lamp-side.jpg", 1); err != nil {
		t.Fatalf("add image: %v", err)
	}

	rec := get(t, mux, "/api/products/"+itoa(p.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Product model.Product `json:"product"`
		Images  []string      `json:"images"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Product.Title != "Desk Lamp" {
		t.Errorf("title = %q", resp.Product.Title)
	}
	if len(resp.Images) != 2 || resp.Images[0] != "/img/lamp-front.jpg" {
		t.Errorf("images = %v", resp.Images)
	}
}

func TestProductGetMissing(t *testing.T) {
	mux, _ := setupProductHandler(t)

	if rec := get(t, mux, "/api/products/9999"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := get(t, mux, "/api/products/not-a-number"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	mux, _ := setupProductHandler(t)

	rec := get(t, mux, "/api/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp []Category
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 6 {
		t.Errorf("categories = %d, want 6", len(resp))
	}
}

func TestByCategory(t *testing.T) {
	mux, products := setupProductHandler(t)

	if _, err := products.Create("Desk Lamp", "", 12.00, "Good", "", "Dorm & Room", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := products.Create("Laptop Stand", "", 20.00, "Good", "", "Electronics", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec := get(t, mux, "/api/categories/dorm-and-room/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Category string          `json:"category"`
		Products []model.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Category != "Dorm & Room" {
		t.Errorf("category = %q", resp.Category)
	}
	if len(resp.Products) != 1 || resp.Products[0].Title != "Desk Lamp" {
		t.Errorf("products = %+v", resp.Products)
	}
}

func TestByCategoryUnknownSlug(t *testing.T) {
	mux, _ := setupProductHandler(t)

	if rec := get(t, mux, "/api/categories/vehicles/products"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeals(t *testing.T) {
	mux, products := setupProductHandler(t)

	fixtures := []struct {
		title string
		price float64
	}{
		{"Mug", 3.00},
		{"Poster", 7.50},
		{"Backpack", 19.99},
		{"Monitor", 80.00},
	}
	for _, fx := range fixtures {
		if _, err := products.Create(fx.title, "", fx.price, "Good", "", "Dorm & Room", nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rec := get(t, mux, "/api/deals")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string][]model.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]string{
		"under_5":  "Mug",
		"under_10": "Poster",
		"under_25": "Backpack",
	}
	for band, title := range want {
		if len(resp[band]) != 1 || resp[band][0].Title != title {
			t.Errorf("band %s = %+v, want just %q", band, resp[band], title)
		}
	}
}
