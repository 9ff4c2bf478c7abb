package seeders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/config"
	"github.com/groovecrate/vinylstore/database/seeders"
	"github.com/groovecrate/vinylstore/pkg/auth"
)

func TestEnsureAdminSeedsEmptyTable(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewMemoryAdminRepository()
	cfg := &config.Config{AdminEmail: "admin@vinyl.test", AdminPassword: "correct horse"}

	require.NoError(t, seeders.EnsureAdmin(ctx, cfg, admins))

	admin, err := admins.FindByEmail(ctx, "admin@vinyl.test")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "correct horse"))
	assert.NotEqual(t, "correct horse", admin.PasswordHash, "password is stored hashed")
}

func TestEnsureAdminWithoutCredentialsSkips(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewMemoryAdminRepository()

	// No credentials configured: boot proceeds, table stays empty.
	require.NoError(t, seeders.EnsureAdmin(ctx, &config.Config{}, admins))

	count, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEnsureAdminLeavesExistingAccountAlone(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewMemoryAdminRepository()

	hash, err := auth.HashPassword("original")
	require.NoError(t, err)
	require.NoError(t, admins.Create(ctx, &models.Admin{Email: "first@vinyl.test", PasswordHash: hash}))

	cfg := &config.Config{AdminEmail: "second@vinyl.test", AdminPassword: "other"}
	require.NoError(t, seeders.EnsureAdmin(ctx, cfg, admins))

	count, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = admins.FindByEmail(ctx, "second@vinyl.test")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
