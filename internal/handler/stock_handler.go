package handler

import (
	"go-inventory-core/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	ledger service.StockLedger
}

func NewStockHandler(ledger service.StockLedger) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// GetVariantStock returns the current cached stock of a variant, base units.
func (h *StockHandler) GetVariantStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	stock, err := h.ledger.VariantStock(id)
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"variant_id": id, "current_stock": stock})
}

// GetLedgerHistory returns the append-ordered ledger entries of a variant.
func (h *StockHandler) GetLedgerHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	entries, err := h.ledger.HistoryFor(id)
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// AuditVariant compares the cached stock with the recomputed ledger sum.
func (h *StockHandler) AuditVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	cache, ledgerSum, err := h.ledger.AuditVariant(id)
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"variant_id":    id,
		"current_stock": cache,
		"ledger_sum":    ledgerSum,
		"consistent":    cache.Equal(ledgerSum),
	})
}
