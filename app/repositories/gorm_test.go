package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapMapsStoreErrors(t *testing.T) {
	assert.NoError(t, wrap(nil))
	assert.ErrorIs(t, wrap(gorm.ErrRecordNotFound), ErrNotFound)

	// Any other driver failure becomes ErrUnavailable.
	wrapped := wrap(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	assert.ErrorIs(t, wrapped, ErrUnavailable)

	// Re-wrapping upstream keeps the sentinel reachable for errors.Is.
	assert.ErrorIs(t, fmt.Errorf("catalog: %w", wrapped), ErrUnavailable)
}
