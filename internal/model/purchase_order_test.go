package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPOStatusTransitions(t *testing.T) {
	cases := []struct {
		from    POStatus
		to      POStatus
		allowed bool
	}{
		{POStatusDraft, POStatusSent, true},
		{POStatusDraft, POStatusCancelled, true},
		{POStatusDraft, POStatusReceived, false},
		{POStatusSent, POStatusReceived, true},
		{POStatusSent, POStatusCancelled, true},
		{POStatusSent, POStatusDraft, false},
		{POStatusReceived, POStatusSent, false},
		{POStatusReceived, POStatusCancelled, false},
		{POStatusCancelled, POStatusDraft, false},
		{POStatusCancelled, POStatusSent, false},
	}

	for _, tc := range cases {
		err := tc.from.CanTransitionTo(tc.to)
		if tc.allowed && err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed && err == nil {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestRecalcTotals(t *testing.T) {
	po := PurchaseOrder{
		Items: []PurchaseOrderItem{
			{OrderedQty: decimal.NewFromInt(10), OrderedPrice: decimal.NewFromInt(100)},
			{OrderedQty: decimal.NewFromInt(3), OrderedPrice: decimal.NewFromInt(250)},
		},
	}
	po.RecalcTotals()

	if po.TotalItems != 2 {
		t.Fatalf("total items: got %d, want 2", po.TotalItems)
	}
	if want := decimal.NewFromInt(1750); !po.Subtotal.Equal(want) {
		t.Fatalf("subtotal: got %s, want %s", po.Subtotal, want)
	}

	po.Items = nil
	po.RecalcTotals()
	if !po.Subtotal.IsZero() || po.TotalItems != 0 {
		t.Fatalf("empty order should have zero totals, got %s / %d", po.Subtotal, po.TotalItems)
	}
}
