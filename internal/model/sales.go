package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTransaction is the immutable record of a completed checkout.
type SalesTransaction struct {
	BaseModel
	TransactionNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_number"`
	Date              time.Time       `gorm:"not null" json:"date"`
	PaymentMethod     PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	GrandTotal        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"grand_total"`
	TotalItems        int             `gorm:"not null" json:"total_items"`

	Items []SalesTransactionItem `gorm:"foreignKey:SalesTransactionID" json:"items,omitempty"`
}

type SalesTransactionItem struct {
	BaseModel
	SalesTransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"sales_transaction_id"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	VariantID          uuid.UUID `gorm:"type:uuid;not null" json:"variant_id"`
	UnitID             uuid.UUID `gorm:"type:uuid;not null" json:"unit_id"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantSKU  string `gorm:"type:varchar(50);not null" json:"variant_sku"`
	UnitName    string `gorm:"type:varchar(50);not null" json:"unit_name"`

	Qty       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`        // in the unit sold
	BaseQty   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"base_qty"`   // converted to base units
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"` // resolved tier price
	LineTotal decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
}
