package handler

import (
	"errors"

	"go-inventory-core/internal/service"
	"go-inventory-core/internal/unitconv"

	"github.com/google/uuid"
)

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps service error kinds onto HTTP statuses. Unit graph errors
// are master-data corruption, always a server error, never coerced to 4xx.
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return 400
	case errors.Is(err, service.ErrNotFound):
		return 404
	case errors.Is(err, service.ErrInvalidTransition):
		return 409
	case errors.Is(err, service.ErrInsufficientStock):
		return 422
	case errors.Is(err, unitconv.ErrUnknownUnit), errors.Is(err, unitconv.ErrInvalidUnitGraph):
		return 500
	default:
		return 500
	}
}
