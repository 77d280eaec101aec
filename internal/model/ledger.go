package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LedgerReason string

const (
	ReasonPurchaseReceive LedgerReason = "purchase_receive"
	ReasonSale            LedgerReason = "sale"
	ReasonAdjustment      LedgerReason = "adjustment" // reserved, no workflow emits it yet
)

type DocType string

const (
	DocTypePurchaseOrder    DocType = "PO"
	DocTypeSalesTransaction DocType = "TX"
	DocTypeAdjustment       DocType = "ADJ"
)

// StockLedgerEntry is one append-only signed stock movement in base units.
// Entries are never updated or deleted; the variant's CurrentStock is the
// materialized sum of its entries.
type StockLedgerEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_variant_created,priority:1" json:"variant_id"`
	QtyDelta  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty_delta"`
	Reason    LedgerReason    `gorm:"type:varchar(20);not null" json:"reason"`
	DocType   DocType         `gorm:"type:varchar(10);not null" json:"doc_type"`
	DocID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"doc_id"`
	CreatedAt time.Time       `gorm:"index:idx_ledger_variant_created,priority:2" json:"created_at"`
}

func (e *StockLedgerEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
