package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/analytics"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC        *usecase.CategoryUseCase
	ProductUC         *usecase.ProductUseCase
	ChargeUC          *usecase.ChargeUseCase
	StockEntryUC      *inventory.StockEntryUseCase
	SaleUC            *sales.SaleUseCase
	ReceiptPDF        *sales.ReceiptPDFUseCase
	ReportUC          *analytics.ReportUseCase
	CheckoutMode      sales.CheckoutMode
	LowStockThreshold int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	// Products (low-stock antes de /:id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LowStockThreshold)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock entries
	entries := api.Group("/stock-entries")
	inventoryHandler := NewInventoryHandler(deps.StockEntryUC)
	entries.Get("/", inventoryHandler.ListEntries)
	entries.Post("/", inventoryHandler.AddEntry)

	// Receipts, sales y checkout
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptPDF, deps.CheckoutMode)
	receipts := api.Group("/receipts")
	receipts.Get("/", saleHandler.ListReceipts)
	receipts.Post("/", saleHandler.CreateReceipt)
	receipts.Get("/:id", saleHandler.GetReceipt)
	receipts.Get("/:id/pdf", saleHandler.ReceiptPDF)

	salesGroup := api.Group("/sales")
	salesGroup.Get("/", saleHandler.ListSales)
	salesGroup.Post("/stockable", saleHandler.RecordStockable)
	salesGroup.Post("/non-stockable", saleHandler.RecordNonStockable)

	api.Post("/checkout/preview", saleHandler.Preview)
	api.Post("/checkout", saleHandler.Checkout)

	// Charges
	charges := api.Group("/charges")
	chargeHandler := NewChargeHandler(deps.ChargeUC)
	charges.Get("/", chargeHandler.List)
	charges.Post("/", chargeHandler.Create)
	charges.Get("/:id", chargeHandler.GetByID)
	charges.Put("/:id", chargeHandler.Update)
	charges.Delete("/:id", chargeHandler.Delete)

	// Reports y dashboard
	reportHandler := NewReportHandler(deps.ReportUC, deps.LowStockThreshold)
	reports := api.Group("/reports")
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/pdf", reportHandler.PDF)
	api.Get("/dashboard", reportHandler.Dashboard)
}
