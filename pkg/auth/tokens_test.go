package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/pkg/auth"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	raw, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := auth.NewTokens("secret-one", time.Hour).Issue("a@x.com")
	require.NoError(t, err)

	_, err = auth.NewTokens("secret-two", time.Hour).Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens := auth.NewTokens("test-secret", -time.Minute)

	raw, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, auth.CheckPassword(hash, "secret"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
