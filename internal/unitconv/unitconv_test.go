package unitconv

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-inventory-core/internal/model"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// testProduct builds pcs (base) <- dozen (x12) <- gross (x12).
func testProduct() (*model.Product, uuid.UUID, uuid.UUID, uuid.UUID) {
	pcsID := uuid.New()
	dozenID := uuid.New()
	grossID := uuid.New()

	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      "Pencil",
		Units: []model.ProductUnit{
			{BaseModel: model.BaseModel{ID: pcsID}, Name: "pcs", IsBase: true, ToBaseFactor: dec(1)},
			{BaseModel: model.BaseModel{ID: dozenID}, Name: "dozen", ConvertsToID: &pcsID, ConversionFactor: decPtr(12), ToBaseFactor: dec(12)},
			{BaseModel: model.BaseModel{ID: grossID}, Name: "gross", ConvertsToID: &dozenID, ConversionFactor: decPtr(12), ToBaseFactor: dec(144)},
		},
	}
	return p, pcsID, dozenID, grossID
}

func TestToBaseQuantity(t *testing.T) {
	p, pcsID, dozenID, grossID := testProduct()

	cases := []struct {
		name   string
		unitID uuid.UUID
		qty    int64
		want   int64
	}{
		{"base unit is identity", pcsID, 7, 7},
		{"one hop", dozenID, 3, 36},
		{"two hops", grossID, 2, 288},
		{"zero quantity", grossID, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToBaseQuantity(p, tc.unitID, dec(tc.qty))
			if err != nil {
				t.Fatalf("ToBaseQuantity: %v", err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("got %s, want %d", got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	p, pcsID, dozenID, grossID := testProduct()

	for _, unitID := range []uuid.UUID{pcsID, dozenID, grossID} {
		for _, qty := range []int64{1, 5, 150} {
			base, err := ToBaseQuantity(p, unitID, dec(qty))
			if err != nil {
				t.Fatalf("ToBaseQuantity(%s, %d): %v", unitID, qty, err)
			}
			back, err := FromBaseQuantity(p, unitID, base)
			if err != nil {
				t.Fatalf("FromBaseQuantity(%s, %s): %v", unitID, base, err)
			}
			if !back.Equal(dec(qty)) {
				t.Fatalf("round trip lost precision: %d -> %s -> %s", qty, base, back)
			}
		}
	}
}

func TestUnknownUnit(t *testing.T) {
	p, _, _, _ := testProduct()

	_, err := ToBaseQuantity(p, uuid.New(), dec(1))
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("want ErrUnknownUnit, got %v", err)
	}
}

func TestCycleDetection(t *testing.T) {
	aID := uuid.New()
	bID := uuid.New()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Units: []model.ProductUnit{
			{BaseModel: model.BaseModel{ID: aID}, Name: "a", ConvertsToID: &bID, ConversionFactor: decPtr(2)},
			{BaseModel: model.BaseModel{ID: bID}, Name: "b", ConvertsToID: &aID, ConversionFactor: decPtr(3)},
		},
	}

	_, err := ToBaseQuantity(p, aID, dec(1))
	if !errors.Is(err, ErrInvalidUnitGraph) {
		t.Fatalf("want ErrInvalidUnitGraph, got %v", err)
	}
}

func TestChainWithoutBase(t *testing.T) {
	aID := uuid.New()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Units: []model.ProductUnit{
			{BaseModel: model.BaseModel{ID: aID}, Name: "a"}, // not base, no target
		},
	}

	_, err := ToBaseQuantity(p, aID, dec(1))
	if !errors.Is(err, ErrInvalidUnitGraph) {
		t.Fatalf("want ErrInvalidUnitGraph, got %v", err)
	}
}
