package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-inventory-core/internal/handler"
	"go-inventory-core/internal/middleware"
	"go-inventory-core/internal/model"
	"go-inventory-core/internal/repository"
	"go-inventory-core/internal/service"
	"go-inventory-core/internal/ws"
	"go-inventory-core/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool for bigger deployments)
	if err := db.AutoMigrate(
		&model.Product{}, &model.ProductUnit{}, &model.Variant{},
		&model.VariantAttribute{}, &model.VariantPriceTier{},
		&model.StockLedgerEntry{}, &model.DocumentSequence{},
		&model.PurchaseOrder{}, &model.PurchaseOrderItem{},
		&model.SalesTransaction{}, &model.SalesTransactionItem{},
	); err != nil {
		logrus.WithError(err).Fatal("auto migrate failed")
	}

	// 3. Setup WebSocket Hub for stock events
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	salesRepo := repository.NewSalesRepo(db)
	seqRepo := repository.NewSequenceRepo(db)

	stockLedger := service.NewStockLedger(ledgerRepo)
	purchaseService := service.NewPurchaseService(poRepo, productRepo, seqRepo, stockLedger, db, wsHub)
	salesService := service.NewSalesService(salesRepo, productRepo, seqRepo, stockLedger, db, wsHub)
	reportingService := service.NewReportingService(ledgerRepo)

	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	salesHandler := handler.NewSalesHandler(salesService)
	stockHandler := handler.NewStockHandler(stockLedger)
	reportingHandler := handler.NewReportingHandler(reportingService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Transaction Engine v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 6. Routes. Authorization happens upstream; RequireAuth only
	// authenticates the caller.
	api := app.Group("/api/v1", middleware.RequireAuth())

	// Purchase order workflow
	api.Post("/purchase-orders", purchaseHandler.CreatePO)
	api.Get("/purchase-orders", purchaseHandler.GetPOs)
	api.Get("/purchase-orders/:id", purchaseHandler.GetPO)
	api.Put("/purchase-orders/:id", purchaseHandler.UpdatePO)
	api.Post("/purchase-orders/:id/send", purchaseHandler.SendPO)
	api.Post("/purchase-orders/:id/receive", purchaseHandler.ReceivePO)
	api.Post("/purchase-orders/:id/cancel", purchaseHandler.CancelPO)

	// Sales checkout
	api.Post("/sales/checkout", salesHandler.Checkout)
	api.Get("/sales", salesHandler.GetTransactions)
	api.Get("/sales/:id", salesHandler.GetTransaction)

	// Stock ledger reads
	api.Get("/variants/:id/stock", stockHandler.GetVariantStock)
	api.Get("/variants/:id/ledger", stockHandler.GetLedgerHistory)
	api.Get("/variants/:id/audit", stockHandler.AuditVariant)

	// Reporting
	api.Get("/reports/stock-movement", reportingHandler.GetStockMovement)
	api.Get("/reports/stock-stats", reportingHandler.GetStockStats)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			logrus.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
