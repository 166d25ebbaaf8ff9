// Package session identifies anonymous visitors. Each browser gets a random
// UUID in a cookie; the ID keys the visitor's stored configuration and
// in-memory workspace. Nothing else is kept server-side under it.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "pc_session"

	// DefaultTTL is how long the browser keeps the session cookie.
	DefaultTTL = 30 * 24 * time.Hour
)

// Manager issues and reads session cookies.
type Manager struct {
	secure bool
	ttl    time.Duration
}

// NewManager creates a session manager. secure should be true when the
// site is served over TLS.
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure, ttl: DefaultTTL}
}

// ID returns the session ID carried by the request. Cookies that are not a
// well-formed UUID are ignored.
func (m *Manager) ID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the request's session ID, issuing a new one (and setting
// the cookie on w) when the request has none.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := m.ID(r); ok {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	return id
}

// Destroy expires the session cookie.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		MaxAge:   -1,
	})
}
