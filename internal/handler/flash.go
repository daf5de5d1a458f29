package handler

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "dormcart_flash"

// setFlash stores a one-shot message for the next page load. The cookie is
// readable by the front end, which displays it and drops it.
func setFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(w http.ResponseWriter, r *http.Request) (category, message string, ok bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return "", "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", "", false
	}
	category, message, found := strings.Cut(decoded, "|")
	if !found {
		return "", "", false
	}
	return category, message, true
}

// flashRedirect sets a flash message and redirects in one step, the
// response shape shared by all form endpoints.
func flashRedirect(w http.ResponseWriter, r *http.Request, category, message, location string) {
	setFlash(w, category, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// redirectBack returns to the page the form was submitted from, defaulting
// to the home feed.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/home"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
