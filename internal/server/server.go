package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dbaadom/dormcart/internal/cart"
	"github.com/dbaadom/dormcart/internal/config"
	"github.com/dbaadom/dormcart/internal/handler"
	"github.com/dbaadom/dormcart/internal/metrics"
	"github.com/dbaadom/dormcart/internal/middleware"
	"github.com/dbaadom/dormcart/internal/session"
	"github.com/dbaadom/dormcart/internal/store"
	"github.com/dbaadom/dormcart/internal/token"
)

type Server struct {
	db          *sql.DB
	sessions    *session.Manager
	authH       *handler.AuthHandler
	cartH       *handler.CartHandler
	productH    *handler.ProductHandler
	profileH    *handler.ProfileHandler
	rateLimiter *middleware.RateLimiter
	collector   *metrics.Collector
	registry    *prometheus.Registry
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	productStore := store.NewProductStore(db)
	cartStore := store.NewCartStore(db)
	ratingStore := store.NewRatingStore(db)

	tokens := token.NewService(cfg.Secret)
	sessions := session.NewManager(tokens, cfg.RememberTTL, cfg.CookieSecure)
	resets := token.NewResetService(tokens, cfg.ResetMaxAge)

	cartMgr := cart.NewManager(cartStore, productStore)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	return &Server{
		db:          db,
		sessions:    sessions,
		authH:       handler.NewAuthHandler(userStore, sessions, resets, cfg.BaseURL, logger.With("component", "auth")),
		cartH:       handler.NewCartHandler(cartMgr, logger.With("component", "cart")),
		productH:    handler.NewProductHandler(productStore, logger.With("component", "product")),
		profileH:    handler.NewProfileHandler(userStore, productStore, ratingStore, logger.With("component", "profile")),
		rateLimiter: middleware.NewRateLimiter(),
		collector:   collector,
		registry:    registry,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /signup", s.rateLimitedHandler(s.authH.Signup))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /logout", s.authH.Logout)
	outerMux.HandleFunc("POST /forgot-password", s.rateLimitedHandler(s.authH.ForgotPassword))
	outerMux.HandleFunc("GET /reset-password/{token}", s.authH.ResetPasswordPage)
	outerMux.HandleFunc("POST /reset-password/{token}", s.authH.ResetPassword)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", metrics.Handler(s.registry))

	// Everything not matched above requires a session
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessions)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Request logging and metrics outermost
	h := s.collector.Middleware(outerMux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session introspection
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Catalog
	mux.HandleFunc("GET /api/products", s.productH.List)
	mux.HandleFunc("GET /api/products/{id}", s.productH.Get)
	mux.HandleFunc("GET /api/categories", s.productH.Categories)
	mux.HandleFunc("GET /api/categories/{slug}/products", s.productH.ByCategory)
	mux.HandleFunc("GET /api/deals", s.productH.Deals)

	// Cart
	mux.HandleFunc("GET /api/cart", s.cartH.Get)
	mux.HandleFunc("POST /cart/add/{id}", s.cartH.Add)
	mux.HandleFunc("POST /cart/remove/{id}", s.cartH.Remove)
	mux.HandleFunc("POST /cart/decr/{id}", s.cartH.Remove)
	mux.HandleFunc("POST /cart/incr/{id}", s.cartH.Increment)
	mux.HandleFunc("POST /checkout", s.cartH.Checkout)

	// Profile
	mux.HandleFunc("GET /api/profile", s.profileH.Get)
}
