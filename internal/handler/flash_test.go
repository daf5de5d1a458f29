package handler

import (
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, "success", "Added to cart!")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])

	out := httptest.NewRecorder()
	category, message, ok := popFlash(out, req)
	if !ok {
		t.Fatal("expected a flash message")
	}
	if category != "success" || message != "Added to cart!" {
		t.Errorf("flash = %q/%q", category, message)
	}

	// popFlash clears the cookie.
	cleared := out.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Errorf("expected a clearing cookie, got %+v", cleared)
	}
}

func TestPopFlashEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, _, ok := popFlash(httptest.NewRecorder(), req); ok {
		t.Error("expected no flash without a cookie")
	}
}

func TestFlashEscaping(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, "error", "That reset link is invalid or has expired. Try again.")

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, message, ok := popFlash(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("expected a flash message")
	}
	if message != "That reset link is invalid or has expired. Try again." {
		t.Errorf("message = %q", message)
	}
}

func TestRedirectBack(t *testing.T) {
	req := httptest.NewRequest("POST", "/cart/add/1", nil)
	req.Header.Set("Referer", "/categories/books")
	rec := httptest.NewRecorder()
	redirectBack(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/categories/books" {
		t.Errorf("location = %q, want the referer", loc)
	}

	req = httptest.NewRequest("POST", "/cart/add/1", nil)
	rec = httptest.NewRecorder()
	redirectBack(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("location = %q, want /home", loc)
	}
}
