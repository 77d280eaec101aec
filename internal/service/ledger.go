package service

import (
	"errors"

	"go-inventory-core/internal/model"
	"go-inventory-core/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockLedger owns all writes to stock ledger entries and to the cached
// CurrentStock on variants. Workflow code never touches stock directly.
type StockLedger interface {
	// ApplyDelta appends one ledger entry and moves the variant's cached
	// stock by the same delta. It composes into the caller's transaction
	// and never opens its own.
	ApplyDelta(tx *gorm.DB, variantID uuid.UUID, delta decimal.Decimal, reason model.LedgerReason, docType model.DocType, docID uuid.UUID) error
	HistoryFor(variantID uuid.UUID) ([]model.StockLedgerEntry, error)
	VariantStock(variantID uuid.UUID) (decimal.Decimal, error)
	AuditVariant(variantID uuid.UUID) (cache, ledgerSum decimal.Decimal, err error)
}

type stockLedger struct {
	ledgerRepo repository.LedgerRepository
}

func NewStockLedger(ledgerRepo repository.LedgerRepository) StockLedger {
	return &stockLedger{ledgerRepo: ledgerRepo}
}

func (s *stockLedger) ApplyDelta(tx *gorm.DB, variantID uuid.UUID, delta decimal.Decimal, reason model.LedgerReason, docType model.DocType, docID uuid.UUID) error {
	// Lock the variant first (fixed lock order: variant before ledger
	// insert), so concurrent appliers to the same variant serialize here.
	variant, err := s.ledgerRepo.LockVariant(tx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	newStock := variant.CurrentStock.Add(delta)
	if newStock.IsNegative() {
		return &InsufficientStockError{
			VariantID: variant.ID,
			SKU:       variant.SKU,
			Requested: delta.Neg(),
			Available: variant.CurrentStock,
		}
	}

	entry := &model.StockLedgerEntry{
		VariantID: variantID,
		QtyDelta:  delta,
		Reason:    reason,
		DocType:   docType,
		DocID:     docID,
	}
	if err := s.ledgerRepo.Append(tx, entry); err != nil {
		return err
	}

	return s.ledgerRepo.UpdateVariantStock(tx, variantID, newStock)
}

func (s *stockLedger) HistoryFor(variantID uuid.UUID) ([]model.StockLedgerEntry, error) {
	return s.ledgerRepo.HistoryFor(variantID)
}

func (s *stockLedger) VariantStock(variantID uuid.UUID) (decimal.Decimal, error) {
	cache, _, err := s.AuditVariant(variantID)
	return cache, err
}

// AuditVariant returns the cached stock alongside the recomputed ledger sum.
// The two must always be equal; a mismatch means the cache was written
// outside this component.
func (s *stockLedger) AuditVariant(variantID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	sum, err := s.ledgerRepo.SumFor(variantID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	variant, err := s.ledgerRepo.FindVariant(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, decimal.Zero, ErrNotFound
		}
		return decimal.Zero, decimal.Zero, err
	}
	return variant.CurrentStock, sum, nil
}
