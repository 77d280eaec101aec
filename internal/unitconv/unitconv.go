// Package unitconv resolves quantities between a product's declared units of
// measure and its base unit. Pure, no I/O; all arithmetic uses decimals so
// repeated conversions never drift.
package unitconv

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-inventory-core/internal/model"
)

var (
	// ErrUnknownUnit means the unit does not belong to the product.
	ErrUnknownUnit = errors.New("unit does not belong to product")
	// ErrInvalidUnitGraph means the conversion chain is cyclic or does not
	// terminate at a base unit. Always a master-data bug.
	ErrInvalidUnitGraph = errors.New("invalid unit conversion graph")
)

// ToBaseQuantity converts a quantity expressed in the given unit into the
// product's base unit.
func ToBaseQuantity(product *model.Product, unitID uuid.UUID, qty decimal.Decimal) (decimal.Decimal, error) {
	factor, err := chainFactor(product, unitID)
	if err != nil {
		return decimal.Zero, err
	}
	return qty.Mul(factor), nil
}

// FromBaseQuantity converts a base-unit quantity back into the given unit.
// Inverse of ToBaseQuantity: FromBaseQuantity(ToBaseQuantity(q)) == q.
func FromBaseQuantity(product *model.Product, unitID uuid.UUID, baseQty decimal.Decimal) (decimal.Decimal, error) {
	factor, err := chainFactor(product, unitID)
	if err != nil {
		return decimal.Zero, err
	}
	return baseQty.Div(factor), nil
}

// chainFactor walks the ConvertsTo chain from the given unit down to the
// base unit, multiplying conversion factors along the way.
func chainFactor(product *model.Product, unitID uuid.UUID) (decimal.Decimal, error) {
	unit := product.UnitByID(unitID)
	if unit == nil {
		return decimal.Zero, fmt.Errorf("%w: unit %s, product %s", ErrUnknownUnit, unitID, product.ID)
	}

	factor := decimal.NewFromInt(1)
	seen := map[uuid.UUID]bool{}

	for !unit.IsBase {
		if seen[unit.ID] {
			return decimal.Zero, fmt.Errorf("%w: cycle at unit %s", ErrInvalidUnitGraph, unit.Name)
		}
		seen[unit.ID] = true

		if unit.ConvertsToID == nil || unit.ConversionFactor == nil {
			return decimal.Zero, fmt.Errorf("%w: unit %s has no conversion target", ErrInvalidUnitGraph, unit.Name)
		}
		if unit.ConversionFactor.IsZero() || unit.ConversionFactor.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: unit %s has non-positive factor", ErrInvalidUnitGraph, unit.Name)
		}
		factor = factor.Mul(*unit.ConversionFactor)

		next := product.UnitByID(*unit.ConvertsToID)
		if next == nil {
			return decimal.Zero, fmt.Errorf("%w: unit %s converts to a unit outside the product", ErrInvalidUnitGraph, unit.Name)
		}
		unit = next
	}

	return factor, nil
}
