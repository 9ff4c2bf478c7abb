package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/logger"
	"github.com/groovecrate/vinylstore/pkg/metrics"
	"github.com/groovecrate/vinylstore/pkg/session"
)

// AuthService validates admin credentials and manages sessions.
type AuthService struct {
	admins   repositories.AdminRepository
	sessions *session.Store
	tokens   *auth.Tokens

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(admins repositories.AdminRepository, sessions *session.Store, tokens *auth.Tokens) *AuthService {
	return &AuthService{admins: admins, sessions: sessions, tokens: tokens}
}

// LoginResult carries both credentials handed out on a successful login:
// the cookie session for browsers and a signed bearer token for API clients.
type LoginResult struct {
	Session session.Session
	Token   string
}

// Login checks the credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller; a bcrypt comparison runs in
// both cases so the two paths cost the same.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			auth.CheckPassword(s.placeholderHash(), password)
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Issue(ctx, admin.Email)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.tokens.Issue(admin.Email)
	if err != nil {
		return LoginResult{}, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	logger.WithCtx(ctx).Info("admin logged in", "email", admin.Email)
	return LoginResult{Session: sess, Token: token}, nil
}

// Logout revokes the session. Idempotent: revoking an unknown or expired
// session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// IsAuthenticated reports whether sess proves admin identity. Cookie sessions
// are re-checked against the store so a logout elsewhere takes effect
// immediately; bearer-derived sessions were already verified cryptographically
// at the boundary.
func (s *AuthService) IsAuthenticated(ctx context.Context, sess *session.Session) bool {
	if sess == nil || sess.Email == "" {
		return false
	}
	if sess.ID == "" {
		return true // bearer token identity
	}
	_, ok := s.sessions.Lookup(ctx, sess.ID)
	return ok
}

// Authenticate resolves the caller's identity from the request: the session
// cookie first, then an Authorization bearer token. Returns nil when the
// request carries neither.
func (s *AuthService) Authenticate(r *http.Request) *session.Session {
	if sess, ok := s.sessions.FromRequest(r); ok {
		return &sess
	}

	header := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
		if claims, err := s.tokens.Verify(raw); err == nil {
			sess := &session.Session{Email: claims.Email}
			if claims.IssuedAt != nil {
				sess.IssuedAt = claims.IssuedAt.Time
			}
			return sess
		}
	}

	return nil
}

// Sessions exposes the underlying store to the HTTP boundary (cookie writes).
func (s *AuthService) Sessions() *session.Store { return s.sessions }

// placeholderHash is compared against when the account does not exist, so a
// miss costs as much as a hash mismatch.
func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("placeholder-for-timing")
	})
	return s.dummyHash
}
