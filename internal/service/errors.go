package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error kinds surfaced to the HTTP layer. Handlers map these onto status
// codes; nothing below this layer swallows an error.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
)

// InsufficientStockError names the offending cart/receipt line so callers
// can show a precise message. Unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	Line      int
	VariantID uuid.UUID
	SKU       string
	Requested decimal.Decimal // base units
	Available decimal.Decimal // base units
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for line %d (sku %s): requested %s, available %s",
		e.Line, e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidTransition(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
