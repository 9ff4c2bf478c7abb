// Package controllers translates HTTP requests into service calls and
// service errors into status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/response"
)

// respondError maps the service error taxonomy onto the HTTP surface.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrOutOfStock):
		response.Conflict(w, "Out of stock")
	case errors.Is(err, services.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnavailable):
		response.Unavailable(w)
	default:
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
