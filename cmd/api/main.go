package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/barstock-api/internal/application/analytics"
	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/barstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/barstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/barstock-api/internal/interfaces/http"
	"github.com/jhoicas/barstock-api/internal/scheduler"
	"github.com/jhoicas/barstock-api/pkg/config"
	"github.com/jhoicas/barstock-api/pkg/logger"
	"github.com/jhoicas/barstock-api/pkg/money"
)

// txRunner transacciones de ventas y de entradas de stock.
type txRunner interface {
	sales.TxRunner
	inventory.TxRunner
}

// backend repositorios de un adaptador de persistencia.
type backend struct {
	tx         txRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	receipts   repository.ReceiptRepository
	sales      repository.SaleRepository
	charges    repository.ChargeRepository
	entries    repository.StockEntryRepository
	reports    repository.ReportRepository
	close      func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos no sobreviven al reinicio")
		store := memory.NewSeededStore()
		return &backend{
			tx:         store,
			products:   store.Products(),
			categories: store.Categories(),
			receipts:   store.Receipts(),
			sales:      store.Sales(),
			charges:    store.Charges(),
			entries:    store.StockEntries(),
			reports:    store.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &backend{
		tx:         postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		receipts:   postgres.NewReceiptRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		charges:    postgres.NewChargeRepository(pool),
		entries:    postgres.NewStockEntryRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	checkoutMode, err := sales.ParseCheckoutMode(cfg.Report.CheckoutMode, sales.CheckoutPerLine)
	if err != nil {
		log.Fatal().Err(err).Msg("CHECKOUT_MODE")
	}

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer be.close()

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, money.NewFormatter(cfg.App.Currency))

	categoryUC := usecase.NewCategoryUseCase(be.categories)
	productUC := usecase.NewProductUseCase(be.products, be.categories)
	chargeUC := usecase.NewChargeUseCase(be.charges)
	stockEntryUC := inventory.NewStockEntryUseCase(be.tx, be.entries)
	saleUC := sales.NewSaleUseCase(be.tx, be.products, be.categories, be.receipts, be.sales)
	receiptPDFUC := sales.NewReceiptPDFUseCase(saleUC, pdfGenerator)
	reportUC := analytics.NewReportUseCase(be.reports, be.products, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BarStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:        categoryUC,
		ProductUC:         productUC,
		ChargeUC:          chargeUC,
		StockEntryUC:      stockEntryUC,
		SaleUC:            saleUC,
		ReceiptPDF:        receiptPDFUC,
		ReportUC:          reportUC,
		CheckoutMode:      checkoutMode,
		LowStockThreshold: cfg.Report.LowStockThreshold,
	})

	sched := scheduler.New(cfg.Report.DailyCron, cfg.Report.LowStockThreshold, reportUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Report.DailyCron).Msg("DAILY_REPORT_CRON inválido")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
