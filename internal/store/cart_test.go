package store

import (
	"testing"

	"github.com/dbaadom/dormcart/internal/database"
)

func setupCartTestDB(t *testing.T) (*CartStore, *UserStore, *ProductStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCartStore(db), NewUserStore(db), NewProductStore(db)
}

func seedCartFixtures(t *testing.T, us *UserStore, ps *ProductStore) (userID, productID int64) {
	t.Helper()
	u, err := us.Create("buyer@example.com", "hash", "Bea", "Buyer")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	p, err := ps.Create("Desk Lamp", "Bright LED lamp", 12.00, "Good", "Black", "Dorm & Room", nil)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return u.ID, p.ID
}

func TestCartInsert(t *testing.T) {
	cs, us, ps := setupCartTestDB(t)
	userID, productID := seedCartFixtures(t, us, ps)

	inserted, err := cs.Insert(userID, productID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Error("expected first insert to report inserted")
	}

	item, err := cs.Get(userID, productID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item == nil {
		t.Fatal("expected cart item, got nil")
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
}

func TestCartInsertDuplicate(t *testing.T) {
	cs, us, ps := setupCartTestDB(t)
	userID, productID := seedCartFixtures(t, us, ps)

	if _, err := cs.Insert(userID, productID); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	inserted, err := cs.Insert(userID, productID)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if inserted {
		t.Error("expected duplicate insert to report not inserted")
	}

	entries, err := cs.ListByUser(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("rows = %d, want exactly 1", len(entries))
	}
}

func TestCartDeleteIdempotent(t *testing.T) {
	cs, us, ps := setupCartTestDB(t)
	userID, productID := seedCartFixtures(t, us, ps)

	// Deleting a pair that was never added is not an error.
	if err := cs.Delete(userID, productID); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	if _, err := cs.Insert(userID, productID); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := cs.Delete(userID, productID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	item, err := cs.Get(userID, productID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if item != nil {
		t.Error("expected nil after delete")
	}

	// And again, still no error.
	if err := cs.Delete(userID, productID); err != nil {
		t.Fatalf("delete again: %v", err)
	}
}

func TestCartListByUser(t *testing.T) {
	cs, us, ps := setupCartTestDB(t)
	userID, _ := seedCartFixtures(t, us, ps)

	p2, err := ps.Create("Power Bank", "Portable charger", 18.00, "Good", "Black", "Electronics", nil)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := cs.Insert(userID, p2.ID); err != nil {
		t.Fatalf("insert: %v", err)
	}

	entries, err := cs.ListByUser(userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Title != "Power Bank" {
		t.Errorf("title = %q, want %q", entries[0].Title, "Power Bank")
	}
	if entries[0].Price != 18.00 {
		t.Errorf("price = %v, want 18.00", entries[0].Price)
	}
}

func TestCartListEmptyForOtherUser(t *testing.T) {
	cs, us, ps := setupCartTestDB(t)
	userID, productID := seedCartFixtures(t, us, ps)

	if _, err := cs.Insert(userID, productID); err != nil {
		t.Fatalf("insert: %v", err)
	}

	other, err := us.Create("other@example.com", "hash", "Oli", "Other")
	if err != nil {
		t.Fatalf("create other user: %v", err)
	}

	entries, err := cs.ListByUser(other.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}
