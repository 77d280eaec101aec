package repository

import (
	"go-inventory-core/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderRepository interface {
	Create(tx *gorm.DB, po *model.PurchaseOrder) error
	Save(tx *gorm.DB, po *model.PurchaseOrder) error
	SaveItem(tx *gorm.DB, item *model.PurchaseOrderItem) error
	ReplaceItems(tx *gorm.DB, poID uuid.UUID, items []model.PurchaseOrderItem) error
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	FindAll() ([]model.PurchaseOrder, error)
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.Create(po).Error
}

// Save persists header fields only; items are written through SaveItem /
// ReplaceItems so receiving never double-writes lines.
func (r *purchaseOrderRepo) Save(tx *gorm.DB, po *model.PurchaseOrder) error {
	return tx.Omit(clause.Associations).Save(po).Error
}

func (r *purchaseOrderRepo) SaveItem(tx *gorm.DB, item *model.PurchaseOrderItem) error {
	return tx.Save(item).Error
}

// ReplaceItems swaps the full item list of a draft order.
func (r *purchaseOrderRepo) ReplaceItems(tx *gorm.DB, poID uuid.UUID, items []model.PurchaseOrderItem) error {
	if err := tx.Unscoped().Where("purchase_order_id = ?", poID).
		Delete(&model.PurchaseOrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PurchaseOrderID = poID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.Preload("Items").First(&po, "id = ?", id).Error
	return &po, err
}

// FindByIDForUpdate locks the order row for a state transition. Must run
// inside the caller's transaction.
func (r *purchaseOrderRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("purchase_order_id = ?", id).Order("created_at ASC").Find(&po.Items).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) FindAll() ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}
