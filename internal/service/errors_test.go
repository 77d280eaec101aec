package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestInsufficientStockErrorUnwrap(t *testing.T) {
	var err error = &InsufficientStockError{
		Line:      2,
		VariantID: uuid.New(),
		SKU:       "PNC-RED",
		Requested: decimal.NewFromInt(6),
		Available: decimal.NewFromInt(5),
	}

	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("should unwrap to ErrInsufficientStock")
	}

	msg := err.Error()
	for _, want := range []string{"line 2", "PNC-RED", "requested 6", "available 5"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestErrorKindWrapping(t *testing.T) {
	if !errors.Is(invalidInput("bad field %s", "qty"), ErrInvalidInput) {
		t.Fatal("invalidInput should wrap ErrInvalidInput")
	}
	if !errors.Is(invalidTransition("no way"), ErrInvalidTransition) {
		t.Fatal("invalidTransition should wrap ErrInvalidTransition")
	}
}
