// Package services implements the auth and catalog business logic behind the
// HTTP boundary.
package services

import (
	"errors"

	"github.com/groovecrate/vinylstore/app/repositories"
)

var (
	// ErrUnauthorized means the caller did not prove admin identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput means the request carried a malformed or out-of-range field.
	ErrInvalidInput = errors.New("invalid input")

	// Store-level errors surface unchanged from the repository layer.
	ErrNotFound    = repositories.ErrNotFound
	ErrOutOfStock  = repositories.ErrOutOfStock
	ErrUnavailable = repositories.ErrUnavailable
)
