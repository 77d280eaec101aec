package service

import (
	"testing"
	"time"
)

func TestSequenceKey(t *testing.T) {
	at := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	if got := SequenceKey(PrefixPurchaseOrder, at); got != "PO-202608" {
		t.Fatalf("got %q, want PO-202608", got)
	}
	if got := SequenceKey(PrefixSalesTransaction, at); got != "TX-202608" {
		t.Fatalf("got %q, want TX-202608", got)
	}
}

func TestFormatDocNumber(t *testing.T) {
	at := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if got := FormatDocNumber(PrefixPurchaseOrder, at, 42); got != "PO-202601-0042" {
		t.Fatalf("got %q, want PO-202601-0042", got)
	}
	// Padding widens past four digits instead of wrapping
	if got := FormatDocNumber(PrefixSalesTransaction, at, 123456); got != "TX-202601-123456" {
		t.Fatalf("got %q, want TX-202601-123456", got)
	}
}
