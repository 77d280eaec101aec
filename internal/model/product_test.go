package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tierVariant(tiers ...[2]int64) *Variant {
	v := &Variant{}
	for _, t := range tiers {
		v.PriceTiers = append(v.PriceTiers, VariantPriceTier{
			MinQty:    t[0],
			UnitPrice: decimal.NewFromInt(t[1]),
		})
	}
	return v
}

func TestUnitPriceFor(t *testing.T) {
	v := tierVariant([2]int64{1, 75000}, [2]int64{12, 70000}, [2]int64{144, 65000})

	cases := []struct {
		qty  int64
		want int64
	}{
		{1, 75000},
		{11, 75000},
		{12, 70000},
		{143, 70000},
		{144, 65000},
		{150, 65000}, // largest qualifying threshold applies
		{10000, 65000},
	}

	for _, tc := range cases {
		got, ok := v.UnitPriceFor(tc.qty)
		if !ok {
			t.Fatalf("qty %d: no price resolved", tc.qty)
		}
		if !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Errorf("qty %d: got %s, want %d", tc.qty, got, tc.want)
		}
	}
}

func TestUnitPriceForNoTiers(t *testing.T) {
	v := &Variant{}
	if _, ok := v.UnitPriceFor(5); ok {
		t.Fatal("variant without tiers should not resolve a price")
	}
}
