// Package repositories is the persistence boundary of the application.
// Services depend on these interfaces; the GORM implementation backs
// deployments and the memory implementation backs tests.
package repositories

import (
	"context"
	"errors"

	"github.com/groovecrate/vinylstore/app/models"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrOutOfStock means a purchase hit a product with zero quantity.
	ErrOutOfStock = errors.New("out of stock")
	// ErrUnavailable wraps store I/O failures (connection, timeout).
	ErrUnavailable = errors.New("store unavailable")
)

// AdminRepository reads the seeded admin accounts. The core never mutates
// them outside of seeding.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository persists catalog records.
type ProductRepository interface {
	All(ctx context.Context) ([]models.Product, error)
	Find(ctx context.Context, id uint) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	// Update applies fields to the record atomically and returns the updated
	// record. The keys are column names; either all fields apply or none do.
	Update(ctx context.Context, id uint, fields map[string]interface{}) (models.Product, error)
	Delete(ctx context.Context, id uint) error
	// DecrementQuantity performs the purchase guard as a single conditional
	// mutation: quantity is decremented if and only if it is positive.
	// Returns ErrOutOfStock when the guard fails, ErrNotFound for unknown ids.
	DecrementQuantity(ctx context.Context, id uint) error
}
