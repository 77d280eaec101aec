package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusSent      POStatus = "sent"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

// poTransitions is the closed transition table of the purchase order state
// machine. received and cancelled are terminal.
var poTransitions = map[POStatus][]POStatus{
	POStatusDraft: {POStatusSent, POStatusCancelled},
	POStatusSent:  {POStatusReceived, POStatusCancelled},
}

// CanTransitionTo rejects any move not in the transition table.
func (s POStatus) CanTransitionTo(target POStatus) error {
	for _, allowed := range poTransitions[s] {
		if allowed == target {
			return nil
		}
	}
	return fmt.Errorf("purchase order cannot move from %s to %s", s, target)
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentGiro     PaymentMethod = "giro"
)

type PurchaseOrder struct {
	BaseModel
	PONumber   string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"po_number"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Status     POStatus  `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`

	// Payment fields, required once the order leaves sent.
	PaymentMethod *PaymentMethod `gorm:"type:varchar(10)" json:"payment_method,omitempty"`
	BankAccountID *uuid.UUID     `gorm:"type:uuid" json:"bank_account_id,omitempty"`
	ReceivedDate  *time.Time     `json:"received_date,omitempty"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"subtotal"`
	TotalItems int             `gorm:"not null;default:0" json:"total_items"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// RecalcTotals refreshes the computed totals from the item list.
func (po *PurchaseOrder) RecalcTotals() {
	subtotal := decimal.Zero
	for _, item := range po.Items {
		subtotal = subtotal.Add(item.OrderedPrice.Mul(item.OrderedQty))
	}
	po.Subtotal = subtotal
	po.TotalItems = len(po.Items)
}

// PurchaseOrderItem snapshots product/variant/unit names and SKU at order
// time so historical orders stay readable when master data changes later.
type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	VariantID       uuid.UUID `gorm:"type:uuid;not null" json:"variant_id"`
	UnitID          uuid.UUID `gorm:"type:uuid;not null" json:"unit_id"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	VariantSKU  string `gorm:"type:varchar(50);not null" json:"variant_sku"`
	UnitName    string `gorm:"type:varchar(50);not null" json:"unit_name"`

	OrderedQty   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"ordered_qty"`
	OrderedPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"ordered_price"`

	// Receiving fields, populated only by the receive operation.
	ReceivedQty   *decimal.Decimal `gorm:"type:decimal(20,4)" json:"received_qty,omitempty"`
	ReceivedPrice *decimal.Decimal `gorm:"type:decimal(20,4)" json:"received_price,omitempty"`
	IsVerified    *bool            `json:"is_verified,omitempty"`
}
