// Package session holds the server-side proof of an admin login.
//
// A Session is an explicit value: the opaque ID travels in a cookie, the
// record itself lives in the injected cache store (Redis in deployments,
// memory in tests). The auth service issues and revokes sessions; the HTTP
// boundary only reads the cookie and asks the store.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/groovecrate/vinylstore/pkg/cache"
)

// CookieName is the session cookie written on login.
const CookieName = "vinyl_session"

// Session proves that a caller authenticated as the admin with Email.
type Session struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

// Options configures cookie behaviour.
type Options struct {
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
	Path     string
}

// DefaultOptions returns sensible defaults; set Secure in production.
func DefaultOptions(ttl time.Duration) Options {
	return Options{
		TTL:      ttl,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
}

// Store persists sessions in a cache driver.
type Store struct {
	cache cache.Cache
	opts  Options
}

func NewStore(c cache.Cache, opts Options) *Store {
	return &Store{cache: c, opts: opts}
}

func key(id string) string { return "vinylstore:session:" + id }

// Issue creates and persists a new session bound to email.
func (s *Store) Issue(ctx context.Context, email string) (Session, error) {
	sess := Session{
		ID:       uuid.NewString(),
		Email:    email,
		IssuedAt: time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, key(sess.ID), sess, s.opts.TTL); err != nil {
		return Session{}, fmt.Errorf("session: save: %w", err)
	}
	return sess, nil
}

// Lookup returns the live session for id, if any.
func (s *Store) Lookup(ctx context.Context, id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}
	var sess Session
	if !s.cache.Get(ctx, key(id), &sess) {
		return Session{}, false
	}
	return sess, true
}

// Revoke invalidates id. Revoking an unknown or already-revoked session is
// not an error.
func (s *Store) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.cache.Delete(ctx, key(id))
}

// Write sets the session cookie on the response.
func (s *Store) Write(w http.ResponseWriter, sess Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

// Clear expires the session cookie on the response.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     s.opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

// FromRequest resolves the request's session cookie against the store.
func (s *Store) FromRequest(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, false
	}
	return s.Lookup(r.Context(), cookie.Value)
}
