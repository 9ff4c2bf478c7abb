package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/pkg/storage"
)

func TestLocalRoundTrip(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "http://localhost:8080/storage/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, disk.Put(ctx, "covers/1.png", strings.NewReader("png-bytes")))
	assert.True(t, disk.Exists(ctx, "covers/1.png"))

	rc, err := disk.Open(ctx, "covers/1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.Equal(t, "http://localhost:8080/storage/covers/1.png", disk.URL("covers/1.png"))
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir(), "http://x")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, disk.Put(ctx, "a.txt", strings.NewReader("x")))
	require.NoError(t, disk.Delete(ctx, "a.txt"))
	assert.False(t, disk.Exists(ctx, "a.txt"))

	assert.NoError(t, disk.Delete(ctx, "a.txt"))
}
