package middleware

import (
	"context"
	"net/http"

	"github.com/groovecrate/vinylstore/pkg/session"
)

// Authenticator resolves a caller's session from a request, or nil.
type Authenticator interface {
	Authenticate(r *http.Request) *session.Session
}

type sessionKey struct{}

// SessionFromCtx returns the session resolved by Identity, or nil for an
// anonymous caller.
func SessionFromCtx(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(sessionKey{}).(*session.Session); ok {
		return sess
	}
	return nil
}

// Identity resolves the caller once per request and stores the result in the
// context. It never rejects: anonymous requests pass through with a nil
// session, and each gated operation decides for itself.
func Identity(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := auth.Authenticate(r); sess != nil {
				ctx := context.WithValue(r.Context(), sessionKey{}, sess)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
