package handler

import (
	"strconv"

	"go-inventory-core/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportingHandler struct {
	service service.ReportingService
}

func NewReportingHandler(s service.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: s}
}

// GetStockMovement returns daily ledger movement for charts
// Query params: days (default 7)
func (h *ReportingHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetStockStats returns overview statistics
func (h *ReportingHandler) GetStockStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStockStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock stats"})
	}

	return c.JSON(stats)
}
