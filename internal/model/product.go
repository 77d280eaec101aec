package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricingMode string

const (
	PricingFixed  PricingMode = "fixed"
	PricingMarkup PricingMode = "markup"
)

type Product struct {
	BaseModel
	Name        string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID  *uuid.UUID  `gorm:"type:uuid" json:"category_id,omitempty"`
	PricingMode PricingMode `gorm:"type:varchar(10);not null;default:'fixed'" json:"pricing_mode" validate:"omitempty,oneof=fixed markup"`
	HasVariants bool        `gorm:"default:false" json:"has_variants"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`

	// Relations
	Units    []ProductUnit `gorm:"foreignKey:ProductID" json:"units,omitempty"`
	Variants []Variant     `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// ProductUnit is one declared unit of measure for a product. Every product
// has exactly one base unit (IsBase=true, ConvertsToID=nil); all other units
// reach the base unit through a finite chain of ConvertsTo references.
type ProductUnit struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name" validate:"required"`
	IsBase    bool      `gorm:"default:false" json:"is_base"`

	// Multiplier into the unit this one converts to. Nil for the base unit.
	ConvertsToID     *uuid.UUID       `gorm:"type:uuid" json:"converts_to_id,omitempty"`
	ConversionFactor *decimal.Decimal `gorm:"type:decimal(20,4)" json:"conversion_factor,omitempty"`

	// Cached product of the whole conversion chain down to the base unit.
	ToBaseFactor decimal.Decimal `gorm:"type:decimal(20,4);not null;default:1" json:"to_base_factor"`
}

type Variant struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode   string    `gorm:"type:varchar(50)" json:"barcode"`

	// Materialized cache of the ledger sum for this variant, in base units.
	// Written only by the stock ledger, never by workflow code.
	CurrentStock decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"current_stock"`

	Attributes []VariantAttribute `gorm:"foreignKey:VariantID" json:"attributes,omitempty"`
	PriceTiers []VariantPriceTier `gorm:"foreignKey:VariantID" json:"price_tiers,omitempty"`
}

// VariantAttribute is one attribute value of a variant, e.g. Color=Red.
type VariantAttribute struct {
	BaseModel
	VariantID uuid.UUID `gorm:"type:uuid;not null;index" json:"variant_id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name" validate:"required"`
	Value     string    `gorm:"type:varchar(100);not null" json:"value" validate:"required"`
}

// VariantPriceTier captures quantity-tiered pricing: the tier with the
// largest MinQty not exceeding the requested quantity applies. Tiers are
// kept sorted ascending by MinQty with no duplicate thresholds; the lowest
// tier always has MinQty=1.
type VariantPriceTier struct {
	BaseModel
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	MinQty    int64           `gorm:"not null" json:"min_qty" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
}

// UnitPriceFor resolves the applicable unit price for a requested quantity
// from the variant's tier table. The second return is false when the variant
// has no tiers at all.
func (v *Variant) UnitPriceFor(qty int64) (decimal.Decimal, bool) {
	if len(v.PriceTiers) == 0 {
		return decimal.Zero, false
	}

	price := v.PriceTiers[0].UnitPrice // lowest tier is the floor
	for _, tier := range v.PriceTiers {
		if tier.MinQty > qty {
			break
		}
		price = tier.UnitPrice
	}
	return price, true
}

// UnitByID returns the product unit with the given id, or nil if the unit
// does not belong to this product.
func (p *Product) UnitByID(unitID uuid.UUID) *ProductUnit {
	for i := range p.Units {
		if p.Units[i].ID == unitID {
			return &p.Units[i]
		}
	}
	return nil
}
