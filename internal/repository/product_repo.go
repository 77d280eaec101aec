package repository

import (
	"go-inventory-core/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(id uuid.UUID) (*model.Product, error)
	FindVariantByID(id uuid.UUID) (*model.Variant, error)
	FindProductForVariant(variantID uuid.UUID) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Units").Preload("Variants").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindVariantByID(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.Preload("Attributes").Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("min_qty ASC")
	}).First(&variant, "id = ?", id).Error
	return &variant, err
}

// FindProductForVariant loads the owning product (with its unit graph) of a
// variant, for unit conversion during checkout and receiving.
func (r *productRepo) FindProductForVariant(variantID uuid.UUID) (*model.Product, error) {
	var variant model.Variant
	if err := r.db.Select("id", "product_id").First(&variant, "id = ?", variantID).Error; err != nil {
		return nil, err
	}
	var product model.Product
	err := r.db.Preload("Units").First(&product, "id = ?", variant.ProductID).Error
	return &product, err
}
