package repository

import (
	"time"

	"go-inventory-core/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository interface {
	FindVariant(id uuid.UUID) (*model.Variant, error)
	LockVariant(tx *gorm.DB, id uuid.UUID) (*model.Variant, error)
	UpdateVariantStock(tx *gorm.DB, id uuid.UUID, newStock decimal.Decimal) error
	Append(tx *gorm.DB, entry *model.StockLedgerEntry) error
	HistoryFor(variantID uuid.UUID) ([]model.StockLedgerEntry, error)
	SumFor(variantID uuid.UUID) (decimal.Decimal, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetStockStats(lowStockThreshold decimal.Decimal) (*StockStats, error)
}

// StockMovementData aggregates daily ledger movement for chart data
type StockMovementData struct {
	Date     string          `json:"date"`
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

// StockStats is the overview snapshot for reporting
type StockStats struct {
	TotalVariants   int64           `json:"total_variants"`
	LowStockCount   int64           `json:"low_stock_count"`
	TotalStockUnits decimal.Decimal `json:"total_stock_units"`
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) FindVariant(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.First(&variant, "id = ?", id).Error
	return &variant, err
}

// LockVariant loads the variant under a row-level lock. Must run inside the
// caller's transaction; the lock is held until that transaction ends.
func (r *ledgerRepo) LockVariant(tx *gorm.DB, id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", id).Error
	return &variant, err
}

// UpdateVariantStock writes the cached stock value. Runs in the caller's
// transaction, after LockVariant.
func (r *ledgerRepo) UpdateVariantStock(tx *gorm.DB, id uuid.UUID, newStock decimal.Decimal) error {
	return tx.Model(&model.Variant{}).
		Where("id = ?", id).
		Update("current_stock", newStock).Error
}

func (r *ledgerRepo) Append(tx *gorm.DB, entry *model.StockLedgerEntry) error {
	return tx.Create(entry).Error
}

func (r *ledgerRepo) HistoryFor(variantID uuid.UUID) ([]model.StockLedgerEntry, error) {
	var entries []model.StockLedgerEntry
	err := r.db.Where("variant_id = ?", variantID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// SumFor recomputes current stock from the ledger, for audit checks.
func (r *ledgerRepo) SumFor(variantID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.Model(&model.StockLedgerEntry{}).
		Where("variant_id = ?", variantID).
		Select("COALESCE(SUM(qty_delta), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *ledgerRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate ledger entries per day, inbound vs outbound
	rows, err := r.db.Model(&model.StockLedgerEntry{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN qty_delta > 0 THEN qty_delta ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN qty_delta < 0 THEN -qty_delta ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *ledgerRepo) GetStockStats(lowStockThreshold decimal.Decimal) (*StockStats, error) {
	var stats StockStats

	if err := r.db.Model(&model.Variant{}).Count(&stats.TotalVariants).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Variant{}).
		Where("current_stock < ?", lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Variant{}).
		Select("COALESCE(SUM(current_stock), 0)").
		Scan(&stats.TotalStockUnits).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
