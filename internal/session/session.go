// Package session manages the signed session cookie. Sessions are
// stateless: the cookie value is a signed token carrying the user id, and
// there is no server-side record to revoke. Logout only instructs the
// client to discard the cookie; a replayed token stays valid until it
// expires or the secret rotates.
package session

import (
	"net/http"
	"time"

	"github.com/dbaadom/dormcart/internal/token"
)

const CookieName = "dormcart_session"

// Manager issues and verifies session tokens and handles the cookie
// round-trip.
type Manager struct {
	tokens       *token.Service
	rememberTTL  time.Duration
	cookieSecure bool
}

func NewManager(tokens *token.Service, rememberTTL time.Duration, cookieSecure bool) *Manager {
	return &Manager{tokens: tokens, rememberTTL: rememberTTL, cookieSecure: cookieSecure}
}

// Issue signs a session token for the user. Remember-me tokens embed the
// long-lived expiry; ordinary tokens embed none and live only as long as
// the browser session that holds the cookie.
func (m *Manager) Issue(userID int64, remember bool) (string, error) {
	var ttl time.Duration
	if remember {
		ttl = m.rememberTTL
	}
	return m.tokens.Issue(userID, token.PurposeSession, ttl)
}

// Verify returns the user id encoded in a session token, failing closed on
// any signature, purpose, or expiry problem.
func (m *Manager) Verify(value string) (int64, error) {
	return m.tokens.Verify(value, token.PurposeSession, 0)
}

// CurrentUser extracts the logged-in user id from the request cookie.
// Missing cookie, bad signature, and expired remember-me token all report
// no user.
func (m *Manager) CurrentUser(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	userID, err := m.Verify(cookie.Value)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// SetCookie writes the session cookie. Remember-me cookies persist for the
// remember TTL; ordinary cookies carry no MaxAge and expire with the
// browser session.
func (m *Manager) SetCookie(w http.ResponseWriter, value string, remember bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.cookieSecure,
	}
	if remember {
		cookie.MaxAge = int(m.rememberTTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

// ClearCookie tells the client to drop the session cookie. Idempotent even
// when no session existed.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
