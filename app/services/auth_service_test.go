package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/cache"
	"github.com/groovecrate/vinylstore/pkg/session"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()

	admins := repositories.NewMemoryAdminRepository()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, admins.Create(context.Background(), &models.Admin{
		Email:        "a@x.com",
		PasswordHash: hash,
	}))

	sessions := session.NewStore(cache.NewMemory(), session.DefaultOptions(time.Hour))
	tokens := auth.NewTokens("test-secret", time.Hour)
	return services.NewAuthService(admins, sessions, tokens)
}

func TestLoginSuccess(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Session.ID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "a@x.com", res.Session.Email)

	assert.True(t, svc.IsAuthenticated(ctx, &res.Session))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := svc.Login(ctx, "ghost@x.com", "secret")

	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Session.ID))
	assert.False(t, svc.IsAuthenticated(ctx, &res.Session))

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(ctx, res.Session.ID))
}

func TestIsAuthenticatedRejectsNilAndUnknown(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	assert.False(t, svc.IsAuthenticated(ctx, nil))
	assert.False(t, svc.IsAuthenticated(ctx, &session.Session{ID: "bogus", Email: "a@x.com"}))
}

func TestAuthenticateFromCookie(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: res.Session.ID})

	sess := svc.Authenticate(req)
	require.NotNil(t, sess)
	assert.Equal(t, "a@x.com", sess.Email)
}

func TestAuthenticateFromBearerToken(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)

	sess := svc.Authenticate(req)
	require.NotNil(t, sess)
	assert.Equal(t, "a@x.com", sess.Email)
	assert.True(t, svc.IsAuthenticated(req.Context(), sess))
}

func TestAuthenticateWithNothing(t *testing.T) {
	svc := newAuthService(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, svc.Authenticate(req))
}
