package service

import (
	"encoding/json"
	"fmt"
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

type POItemInput struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	VariantID    uuid.UUID       `json:"variant_id" validate:"uuid_required"`
	UnitID       uuid.UUID       `json:"unit_id" validate:"uuid_required"`
	OrderedQty   decimal.Decimal `json:"ordered_qty"`
	OrderedPrice decimal.Decimal `json:"ordered_price"`
}

type CreatePORequest struct {
	SupplierID uuid.UUID     `json:"supplier_id" validate:"uuid_required"`
	Items      []POItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdatePORequest struct {
	SupplierID *uuid.UUID    `json:"supplier_id"`
	Items      []POItemInput `json:"items" validate:"omitempty,min=1,dive"`
}

type ReceivePOItemInput struct {
	ItemID        uuid.UUID       `json:"item_id" validate:"uuid_required"`
	ReceivedQty   decimal.Decimal `json:"received_qty"`
	ReceivedPrice decimal.Decimal `json:"received_price"`
}

type ReceivePORequest struct {
	ReceivedDate  time.Time            `json:"received_date" validate:"required"`
	PaymentMethod model.PaymentMethod  `json:"payment_method" validate:"required,oneof=cash transfer giro"`
	BankAccountID *uuid.UUID           `json:"bank_account_id"`
	Items         []ReceivePOItemInput `json:"items" validate:"required,min=1,dive"`
}

type PurchaseService interface {
	CreatePO(req *CreatePORequest) (*model.PurchaseOrder, error)
	UpdatePO(id uuid.UUID, req *UpdatePORequest) (*model.PurchaseOrder, error)
	SendPO(id uuid.UUID) (*model.PurchaseOrder, error)
	ReceivePO(id uuid.UUID, req *ReceivePORequest) (*model.PurchaseOrder, error)
	CancelPO(id uuid.UUID) (*model.PurchaseOrder, error)
	GetPO(id uuid.UUID) (*model.PurchaseOrder, error)
	GetAllPOs() ([]model.PurchaseOrder, error)
}

type purchaseService struct {
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
	ledger      StockLedger
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewPurchaseService(poRepo repository.PurchaseOrderRepository, productRepo repository.ProductRepository, seqRepo repository.SequenceRepository, ledger StockLedger, db *gorm.DB, hub *ws.Hub) PurchaseService {
	return &purchaseService{
		poRepo:      poRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
		ledger:      ledger,
		db:          db,
		wsHub:       hub,
	}
}

// buildItems validates each line against master data and snapshots
// product/variant/unit names so the order stays readable later.
func (s *purchaseService) buildItems(inputs []POItemInput) ([]model.PurchaseOrderItem, error) {
	items := make([]model.PurchaseOrderItem, 0, len(inputs))
	for i, in := range inputs {
		if in.OrderedQty.IsNegative() || in.OrderedPrice.IsNegative() {
			return nil, invalidInput("item %d: ordered quantity and price must not be negative", i+1)
		}

		product, err := s.productRepo.FindByID(in.ProductID)
		if err != nil {
			return nil, invalidInput("item %d: product %s not found", i+1, in.ProductID)
		}

		var variant *model.Variant
		for j := range product.Variants {
			if product.Variants[j].ID == in.VariantID {
				variant = &product.Variants[j]
				break
			}
		}
		if variant == nil {
			return nil, invalidInput("item %d: variant %s does not belong to product %s", i+1, in.VariantID, product.Name)
		}

		unit := product.UnitByID(in.UnitID)
		if unit == nil {
			return nil, invalidInput("item %d: unit %s does not belong to product %s", i+1, in.UnitID, product.Name)
		}
		// Reject broken conversion chains at order time, not at receipt.
		if _, err := unitconv.ToBaseQuantity(product, in.UnitID, in.OrderedQty); err != nil {
			return nil, err
		}

		items = append(items, model.PurchaseOrderItem{
			ProductID:    product.ID,
			VariantID:    variant.ID,
			UnitID:       unit.ID,
			ProductName:  product.Name,
			VariantSKU:   variant.SKU,
			UnitName:     unit.Name,
			OrderedQty:   in.OrderedQty,
			OrderedPrice: in.OrderedPrice,
		})
	}
	return items, nil
}

func (s *purchaseService) CreatePO(req *CreatePORequest) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, invalidInput("%s", validator.FirstFailure(errs))
	}

	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	po := &model.PurchaseOrder{
		SupplierID: req.SupplierID,
		Status:     model.POStatusDraft,
		Items:      items,
	}
	po.RecalcTotals()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Counter increment and order insert commit or roll back together,
		// so a failed create never burns a visible number.
		seq, err := s.seqRepo.Next(tx, SequenceKey(PrefixPurchaseOrder, now))
		if err != nil {
			return err
		}
		po.PONumber = FormatDocNumber(PrefixPurchaseOrder, now, seq)

		return s.poRepo.Create(tx, po)
	})
	if err != nil {
		return nil, err
	}

	metrics.DocumentsCommitted.WithLabelValues("purchase_order_draft").Inc()
	return po, nil
}

func (s *purchaseService) UpdatePO(id uuid.UUID, req *UpdatePORequest) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, invalidInput("%s", validator.FirstFailure(errs))
	}

	var items []model.PurchaseOrderItem
	if len(req.Items) > 0 {
		var err error
		items, err = s.buildItems(req.Items)
		if err != nil {
			return nil, err
		}
	}

	var updated *model.PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		po, err := s.poRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrNotFound
		}
		if po.Status != model.POStatusDraft {
			return invalidTransition("only draft orders can be edited, order is %s", po.Status)
		}

		if req.SupplierID != nil {
			po.SupplierID = *req.SupplierID
		}
		if items != nil {
			if err := s.poRepo.ReplaceItems(tx, po.ID, items); err != nil {
				return err
			}
			po.Items = items
		}
		po.RecalcTotals()

		updated = po
		return s.poRepo.Save(tx, po)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *purchaseService) SendPO(id uuid.UUID) (*model.PurchaseOrder, error) {
	var sent *model.PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		po, err := s.poRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrNotFound
		}
		if err := po.Status.CanTransitionTo(model.POStatusSent); err != nil {
			return invalidTransition("%s", err)
		}

		for i, item := range po.Items {
			if item.OrderedQty.IsZero() || item.OrderedPrice.IsZero() {
				return invalidInput("item %d (%s) must have a non-zero ordered quantity and price before sending", i+1, item.VariantSKU)
			}
		}

		po.Status = model.POStatusSent
		sent = po
		return s.poRepo.Save(tx, po)
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

// receiptLine pairs an order item with its validated receipt values and the
// pre-computed base-unit delta.
type receiptLine struct {
	item     *model.PurchaseOrderItem
	qty      decimal.Decimal
	price    decimal.Decimal
	baseQty  decimal.Decimal
	verified bool
}

func (s *purchaseService) ReceivePO(id uuid.UUID, req *ReceivePORequest) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, invalidInput("%s", validator.FirstFailure(errs))
	}
	if req.PaymentMethod != model.PaymentCash && req.BankAccountID == nil {
		return nil, invalidInput("bank account is required for payment method %s", req.PaymentMethod)
	}
	for i, in := range req.Items {
		if in.ReceivedQty.IsNegative() || in.ReceivedPrice.IsNegative() {
			return nil, invalidInput("item %d: received quantity and price must not be negative", i+1)
		}
	}

	var received *model.PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		po, err := s.poRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrNotFound
		}
		if err := po.Status.CanTransitionTo(model.POStatusReceived); err != nil {
			return invalidTransition("%s", err)
		}

		// Reconcile every order item exactly once; a receipt that skips or
		// invents items is rejected before any stock moves.
		if len(req.Items) != len(po.Items) {
			return invalidInput("receipt must cover all %d order items, got %d", len(po.Items), len(req.Items))
		}
		byID := make(map[uuid.UUID]*model.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			byID[po.Items[i].ID] = &po.Items[i]
		}

		lines := make([]receiptLine, 0, len(req.Items))
		for i, in := range req.Items {
			item, ok := byID[in.ItemID]
			if !ok {
				return invalidInput("item %d: %s is not part of order %s", i+1, in.ItemID, po.PONumber)
			}
			delete(byID, in.ItemID)

			product, err := s.productRepo.FindByID(item.ProductID)
			if err != nil {
				return fmt.Errorf("load product for item %s: %w", item.ID, err)
			}
			baseQty, err := unitconv.ToBaseQuantity(product, item.UnitID, in.ReceivedQty)
			if err != nil {
				return err
			}

			lines = append(lines, receiptLine{
				item:     item,
				qty:      in.ReceivedQty,
				price:    in.ReceivedPrice,
				baseQty:  baseQty,
				verified: in.ReceivedQty.Equal(item.OrderedQty) && in.ReceivedPrice.Equal(item.OrderedPrice),
			})
		}

		// All checks passed; now write items, ledger deltas, and the status
		// transition as one unit.
		for _, line := range lines {
			qty, price, verified := line.qty, line.price, line.verified
			line.item.ReceivedQty = &qty
			line.item.ReceivedPrice = &price
			line.item.IsVerified = &verified
			if err := s.poRepo.SaveItem(tx, line.item); err != nil {
				return err
			}

			if err := s.ledger.ApplyDelta(tx, line.item.VariantID, line.baseQty, model.ReasonPurchaseReceive, model.DocTypePurchaseOrder, po.ID); err != nil {
				return err
			}
		}

		po.Status = model.POStatusReceived
		receivedDate := req.ReceivedDate
		paymentMethod := req.PaymentMethod
		po.ReceivedDate = &receivedDate
		po.PaymentMethod = &paymentMethod
		po.BankAccountID = req.BankAccountID

		received = po
		return s.poRepo.Save(tx, po)
	})
	if err != nil {
		return nil, err
	}

	metrics.DocumentsCommitted.WithLabelValues("purchase_order_received").Inc()
	s.broadcastReceipt(received)
	return received, nil
}

func (s *purchaseService) CancelPO(id uuid.UUID) (*model.PurchaseOrder, error) {
	var cancelled *model.PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		po, err := s.poRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrNotFound
		}
		if err := po.Status.CanTransitionTo(model.POStatusCancelled); err != nil {
			return invalidTransition("%s", err)
		}

		po.Status = model.POStatusCancelled
		cancelled = po
		return s.poRepo.Save(tx, po)
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *purchaseService) GetPO(id uuid.UUID) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return po, nil
}

func (s *purchaseService) GetAllPOs() ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll()
}

func (s *purchaseService) broadcastReceipt(po *model.PurchaseOrder) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "purchase_received",
			"purchase_order": map[string]interface{}{
				"id":        po.ID,
				"po_number": po.PONumber,
				"items":     len(po.Items),
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
