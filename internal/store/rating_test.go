package store

import (
	"testing"

	"github.com/dbaadom/dormcart/internal/database"
)

func setupRatingTestDB(t *testing.T) (*RatingStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRatingStore(db), NewUserStore(db)
}

func TestRatingSellerStats(t *testing.T) {
	rs, us := setupRatingTestDB(t)

	seller, err := us.Create("seller@example.com", "hash", "Sal", "Seller")
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	raterA, err := us.Create("a@example.com", "hash", "Ann", "A")
	if err != nil {
		t.Fatalf("create rater: %v", err)
	}
	raterB, err := us.Create("b@example.com", "hash", "Ben", "B")
	if err != nil {
		t.Fatalf("create rater: %v", err)
	}

	if _, err := rs.Create(seller.ID, raterA.ID, nil, 5, "great seller"); err != nil {
		t.Fatalf("create rating: %v", err)
	}
	if _, err := rs.Create(seller.ID, raterB.ID, nil, 4, ""); err != nil {
		t.Fatalf("create rating: %v", err)
	}

	stats, err := rs.SellerStats(seller.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("count = %d, want 2", stats.Count)
	}
	if stats.Average != 4.5 {
		t.Errorf("average = %v, want 4.5", stats.Average)
	}
}

func TestRatingSellerStatsEmpty(t *testing.T) {
	rs, _ := setupRatingTestDB(t)

	stats, err := rs.SellerStats(99)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 0 {
		t.Errorf("count = %d, want 0", stats.Count)
	}
	if stats.Average != 0 {
		t.Errorf("average = %v, want 0", stats.Average)
	}
}
