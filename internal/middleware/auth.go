package middleware

import (
	"net/http"

	"github.com/dbaadom/dormcart/internal/auth"
	"github.com/dbaadom/dormcart/internal/session"
)

// RequireAuth verifies the session cookie and attaches the user's identity
// to the request context. Unauthenticated requests are redirected to the
// login page.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessions.CurrentUser(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
