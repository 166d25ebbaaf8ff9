// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"pagecraft/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the visitor's session ID.
	SessionKey contextKey = "session"
)

// LoadSession makes sure every request carries a session ID, issuing a
// cookie on first visit, and stores the ID in the request context.
// Downstream handlers read it with SessionIDFromCtx.
func LoadSession(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := mgr.Ensure(w, r)
			ctx := context.WithValue(r.Context(), SessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromCtx returns the session ID stored by LoadSession, or "".
func SessionIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(SessionKey).(string)
	return id
}

// WithSessionID returns a context carrying id, for tests and background
// callers that bypass LoadSession.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionKey, id)
}
