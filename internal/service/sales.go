package service

import (
	"encoding/json"
	"errors"
	"time"

	"go-inventory-core/internal/model"
	"go-inventory-core/internal/repository"
	"go-inventory-core/internal/unitconv"
	"go-inventory-core/internal/ws"
	"go-inventory-core/pkg/metrics"
	"go-inventory-core/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartLineInput struct {
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	UnitID    uuid.UUID `json:"unit_id" validate:"uuid_required"`
	Qty       int64     `json:"qty" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=cash transfer giro"`
	Lines         []CartLineInput     `json:"lines" validate:"required,min=1,dive"`
}

type SalesService interface {
	Checkout(req *CheckoutRequest) (*model.SalesTransaction, error)
	GetTransaction(id uuid.UUID) (*model.SalesTransaction, error)
	GetAllTransactions() ([]model.SalesTransaction, error)
}

type salesService struct {
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
	ledger      StockLedger
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSalesService(salesRepo repository.SalesRepository, productRepo repository.ProductRepository, seqRepo repository.SequenceRepository, ledger StockLedger, db *gorm.DB, hub *ws.Hub) SalesService {
	return &salesService{
		salesRepo:   salesRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
		ledger:      ledger,
		db:          db,
		wsHub:       hub,
	}
}

func (s *salesService) Checkout(req *CheckoutRequest) (*model.SalesTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, invalidInput("%s", validator.FirstFailure(errs))
	}

	// Resolve prices and base quantities up front; only the stock check
	// itself has to happen under the row lock inside the transaction.
	items := make([]model.SalesTransactionItem, 0, len(req.Lines))
	subtotal := decimal.Zero
	for i, line := range req.Lines {
		variant, err := s.productRepo.FindVariantByID(line.VariantID)
		if err != nil {
			return nil, invalidInput("line %d: variant %s not found", i+1, line.VariantID)
		}
		product, err := s.productRepo.FindProductForVariant(variant.ID)
		if err != nil {
			return nil, invalidInput("line %d: product for variant %s not found", i+1, variant.SKU)
		}
		unit := product.UnitByID(line.UnitID)
		if unit == nil {
			return nil, invalidInput("line %d: unit %s does not belong to product %s", i+1, line.UnitID, product.Name)
		}

		unitPrice, ok := variant.UnitPriceFor(line.Qty)
		if !ok {
			return nil, invalidInput("line %d: variant %s has no price tiers", i+1, variant.SKU)
		}

		qty := decimal.NewFromInt(line.Qty)
		baseQty, err := unitconv.ToBaseQuantity(product, line.UnitID, qty)
		if err != nil {
			return nil, err
		}

		lineTotal := unitPrice.Mul(qty)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, model.SalesTransactionItem{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			UnitID:      unit.ID,
			ProductName: product.Name,
			VariantSKU:  variant.SKU,
			UnitName:    unit.Name,
			Qty:         qty,
			BaseQty:     baseQty,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
	}

	now := time.Now()
	txn := &model.SalesTransaction{
		Date:          now,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      subtotal,
		GrandTotal:    subtotal,
		TotalItems:    len(items),
		Items:         items,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := s.seqRepo.Next(tx, SequenceKey(PrefixSalesTransaction, now))
		if err != nil {
			return err
		}
		txn.TransactionNumber = FormatDocNumber(PrefixSalesTransaction, now, seq)

		if err := s.salesRepo.Create(tx, txn); err != nil {
			return err
		}

		// Ledger application is ordered by line. Any line failing the stock
		// check under its row lock aborts the whole checkout.
		for i := range txn.Items {
			item := &txn.Items[i]
			err := s.ledger.ApplyDelta(tx, item.VariantID, item.BaseQty.Neg(), model.ReasonSale, model.DocTypeSalesTransaction, txn.ID)
			if err != nil {
				var stockErr *InsufficientStockError
				if errors.As(err, &stockErr) {
					stockErr.Line = i + 1
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.DocumentsCommitted.WithLabelValues("sales_transaction").Inc()
	s.broadcastCheckout(txn)
	return txn, nil
}

func (s *salesService) GetTransaction(id uuid.UUID) (*model.SalesTransaction, error) {
	txn, err := s.salesRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return txn, nil
}

func (s *salesService) GetAllTransactions() ([]model.SalesTransaction, error) {
	return s.salesRepo.FindAll()
}

func (s *salesService) broadcastCheckout(txn *model.SalesTransaction) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_completed",
			"transaction": map[string]interface{}{
				"id":          txn.ID,
				"number":      txn.TransactionNumber,
				"grand_total": txn.GrandTotal,
				"items":       txn.TotalItems,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
