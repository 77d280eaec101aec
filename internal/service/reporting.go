package service

import (
	"time"

	"go-inventory-core/internal/repository"

	"github.com/shopspring/decimal"
)

// lowStockThreshold is the base-unit level below which a variant counts as
// low stock in the overview stats.
var lowStockThreshold = decimal.NewFromInt(10)

type ReportingService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetStockStats() (*repository.StockStats, error)
}

type reportingService struct {
	ledgerRepo repository.LedgerRepository
}

func NewReportingService(ledgerRepo repository.LedgerRepository) ReportingService {
	return &reportingService{ledgerRepo: ledgerRepo}
}

// GetStockMovement aggregates ledger movement per day for the last N days.
func (s *reportingService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = 7
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.ledgerRepo.GetStockMovement(startDate, endDate)
}

func (s *reportingService) GetStockStats() (*repository.StockStats, error) {
	return s.ledgerRepo.GetStockStats(lowStockThreshold)
}
