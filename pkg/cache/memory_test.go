package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/pkg/cache"
)

func TestMemorySetGet(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	type payload struct {
		Email string `json:"email"`
	}

	require.NoError(t, c.Set(ctx, "k", payload{Email: "a@x.com"}, 0))

	var got payload
	assert.True(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "a@x.com", got.Email)
}

func TestMemoryMiss(t *testing.T) {
	c := cache.NewMemory()
	var got string
	assert.False(t, c.Get(context.Background(), "absent", &got))
}

func TestMemoryDelete(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))

	var got string
	assert.False(t, c.Get(ctx, "k", &got))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestMemoryExpiry(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var got string
	assert.False(t, c.Get(ctx, "k", &got))
}
