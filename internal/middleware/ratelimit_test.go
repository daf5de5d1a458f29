package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		if !rl.Allow("key", 5, time.Minute) {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("key", 5, time.Minute) {
		t.Error("request over the limit allowed, want denied")
	}

	// A different key has its own budget.
	if !rl.Allow("other", 5, time.Minute) {
		t.Error("unrelated key denied")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	if !rl.Allow("key", 1, 10*time.Millisecond) {
		t.Fatal("first request denied")
	}
	if rl.Allow("key", 1, 10*time.Millisecond) {
		t.Fatal("second request in window allowed")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("key", 1, 10*time.Millisecond) {
		t.Error("request after window expiry denied")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 1, 5*time.Millisecond)
	rl.Allow("fresh", 1, time.Minute)

	time.Sleep(10 * time.Millisecond)
	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["stale"]; ok {
		t.Error("expired entry survived cleanup")
	}
	if _, ok := rl.entries["fresh"]; !ok {
		t.Error("live entry removed by cleanup")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter()
	handler := RateLimit(rl, RealIP, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"remote addr only", "192.168.1.5:12345", "", "192.168.1.5"},
		{"forwarded single", "10.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := RealIP(req); got != tt.want {
				t.Errorf("RealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
