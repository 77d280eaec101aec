package service

import (
	"fmt"
	"time"
)

// Document number prefixes, one sequence per prefix per period.
const (
	PrefixPurchaseOrder    = "PO"
	PrefixSalesTransaction = "TX"
)

// SequenceKey scopes a counter to a document type and calendar month, e.g.
// "PO-202608". Numbers restart each period but stay globally unique because
// the period is embedded in the formatted number.
func SequenceKey(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s", prefix, at.Format("200601"))
}

// FormatDocNumber renders the human-readable document number, e.g.
// "PO-202608-0042". Pure post-processing over the counter value.
func FormatDocNumber(prefix string, at time.Time, value int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, at.Format("200601"), value)
}
