package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/pkg/cache"
	"github.com/groovecrate/vinylstore/pkg/session"
)

func newStore() *session.Store {
	return session.NewStore(cache.NewMemory(), session.DefaultOptions(time.Hour))
}

func TestIssueAndLookup(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	sess, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, ok := store.Lookup(ctx, sess.ID)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestRevokeIsIdempotent(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	sess, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, sess.ID))
	_, ok := store.Lookup(ctx, sess.ID)
	assert.False(t, ok)

	// Second revoke of the same session is not an error.
	assert.NoError(t, store.Revoke(ctx, sess.ID))
	assert.NoError(t, store.Revoke(ctx, "never-existed"))
}

func TestExpiredSessionIsInvalid(t *testing.T) {
	store := session.NewStore(cache.NewMemory(), session.DefaultOptions(10*time.Millisecond))
	ctx := context.Background()

	sess, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, ok := store.Lookup(ctx, sess.ID)
	assert.False(t, ok)
}

func TestCookieRoundTrip(t *testing.T) {
	store := newStore()

	sess, err := store.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	store.Write(rec, sess)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	got, ok := store.FromRequest(req)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)
}

func TestFromRequestWithoutCookie(t *testing.T) {
	store := newStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := store.FromRequest(req)
	assert.False(t, ok)
}
