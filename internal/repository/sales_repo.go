package repository

import (
	"go-inventory-core/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalesRepository interface {
	Create(tx *gorm.DB, txn *model.SalesTransaction) error
	FindByID(id uuid.UUID) (*model.SalesTransaction, error)
	FindAll() ([]model.SalesTransaction, error)
}

type salesRepo struct {
	db *gorm.DB
}

func NewSalesRepo(db *gorm.DB) SalesRepository {
	return &salesRepo{db}
}

func (r *salesRepo) Create(tx *gorm.DB, txn *model.SalesTransaction) error {
	return tx.Create(txn).Error
}

func (r *salesRepo) FindByID(id uuid.UUID) (*model.SalesTransaction, error) {
	var txn model.SalesTransaction
	err := r.db.Preload("Items").First(&txn, "id = ?", id).Error
	return &txn, err
}

func (r *salesRepo) FindAll() ([]model.SalesTransaction, error) {
	var txns []model.SalesTransaction
	err := r.db.Preload("Items").Order("created_at DESC").Find(&txns).Error
	return txns, err
}
