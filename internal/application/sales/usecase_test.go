package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/infrastructure/memory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

const (
	beerCategory     = "6f1c1b7e-0001-4c1a-9a00-000000000001"
	liquorCategory   = "6f1c1b7e-0002-4c1a-9a00-000000000002"
	cocktailCategory = "6f1c1b7e-0005-4c1a-9a00-000000000005"

	castelID = "a0000000-0000-0000-0000-000000000001"
	whiskyID = "a0000000-0000-0000-0000-000000000002"
)

var saleDay = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memory.Store
	uc    *sales.SaleUseCase
}

// newFixture carga una cerveza (solo botella, stock 5) y un whisky (botella y copa, stock 10).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewSeededStore()
	store.SeedProduct(entity.Product{
		ID: castelID, Name: "Castel", CategoryID: beerCategory,
		PurchasePrice: dec("600"), BottlePrice: dec("1000"), GlassPrice: decimal.Zero,
		Stock: 5, Unit: entity.UnitBottle, ContainerML: 650,
	})
	store.SeedProduct(entity.Product{
		ID: whiskyID, Name: "Whisky", CategoryID: liquorCategory,
		PurchasePrice: dec("15000"), BottlePrice: dec("20000"), GlassPrice: dec("1500"),
		Stock: 10, Unit: entity.UnitBottle, ContainerML: 750,
	})
	uc := sales.NewSaleUseCase(store, store.Products(), store.Categories(), store.Receipts(), store.Sales())
	return &fixture{store: store, uc: uc}
}

func (f *fixture) receipt(t *testing.T) string {
	t.Helper()
	id, err := f.uc.CreateReceipt(context.Background(), "Table 4")
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func bottle(productID, receiptID string, qty int) sales.StockableSaleInput {
	return sales.StockableSaleInput{ProductID: productID, Quantity: qty, SaleDate: saleDay, Unit: entity.UnitBottle, ReceiptID: receiptID}
}

// ─────────────────────────────────────────────────────────────────────────────
// RecordStockableSale
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordStockableSale_DescuentaStockUnaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rid := f.receipt(t)

	saleID, err := f.uc.RecordStockableSale(ctx, bottle(castelID, rid, 3))
	require.NoError(t, err)
	assert.NotEmpty(t, saleID)
	assert.Equal(t, 2, f.stock(t, castelID), "5 - 3")

	lines, err := f.store.Sales().List(ctx, repositoryFilterByReceipt(rid))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Amount.Equal(dec("3000")), "1000 × 3, obtenido %s", lines[0].Amount)
	assert.Equal(t, beerCategory, lines[0].CategoryID, "la categoría se copia del producto")
	assert.Equal(t, "Castel", lines[0].Article)
}

func TestRecordStockableSale_CopaUsaPrecioDeCopa(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)

	in := bottle(whiskyID, rid, 2)
	in.Unit = entity.UnitGlass
	_, err := f.uc.RecordStockableSale(context.Background(), in)
	require.NoError(t, err)

	lines, err := f.store.Sales().List(context.Background(), repositoryFilterByReceipt(rid))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "3000.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, 8, f.stock(t, whiskyID), "la copa descuenta la cantidad vendida")
}

func TestRecordStockableSale_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)

	_, err := f.uc.RecordStockableSale(context.Background(), bottle(castelID, rid, 6))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, castelID))
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestRecordStockableSale_StockExactoQuedaEnCero(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordStockableSale(context.Background(), bottle(castelID, f.receipt(t), 5))
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, castelID))
}

func TestRecordStockableSale_PrecioNoDefinido(t *testing.T) {
	f := newFixture(t)
	in := bottle(castelID, f.receipt(t), 1)
	in.Unit = entity.UnitGlass

	_, err := f.uc.RecordStockableSale(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrPriceNotSet)
	assert.Equal(t, 5, f.stock(t, castelID))
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestRecordStockableSale_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.RecordStockableSale(ctx, bottle("a0000000-0000-0000-0000-00000000ffff", f.receipt(t), 1))
	require.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = f.uc.RecordStockableSale(ctx, bottle(castelID, "b0000000-0000-0000-0000-00000000ffff", 1))
	require.ErrorIs(t, err, domain.ErrNotFound, "recibo inexistente")
	assert.Equal(t, 5, f.stock(t, castelID))
}

func TestRecordStockableSale_EntradaInvalidaNoTocaElAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)
	before := f.store.ProductCalls()

	cases := map[string]sales.StockableSaleInput{
		"cantidad cero":     bottle(castelID, rid, 0),
		"cantidad negativa": bottle(castelID, rid, -2),
		"sin producto":      bottle("", rid, 1),
		"sin recibo":        bottle(castelID, "", 1),
		"producto no UUID":  bottle("castel", rid, 1),
		"recibo no UUID":    bottle(castelID, "r-1", 1),
	}
	badUnit := bottle(castelID, rid, 1)
	badUnit.Unit = "carafe"
	cases["unidad desconocida"] = badUnit

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.RecordStockableSale(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, before, f.store.ProductCalls())
}

func TestRecordStockableSale_ContextoCanceladoEsFalloDeAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.RecordStockableSale(ctx, bottle(castelID, rid, 1))
	require.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.ErrorIs(t, err, context.Canceled, "la causa se conserva")
	assert.Equal(t, 5, f.stock(t, castelID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordStockableSale_ConcurrenciaUnSoloGanador(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.RecordStockableSale(context.Background(), bottle(castelID, rid, 3))
		}(i)
	}
	close(start)
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 2, f.stock(t, castelID))
	assert.Equal(t, 1, f.store.SaleCount())
}

func TestRecordStockableSale_ConcurrenciaNuncaStockNegativo(t *testing.T) {
	f := newFixture(t)
	rid := f.receipt(t)

	const workers = 25
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.RecordStockableSale(context.Background(), bottle(whiskyID, rid, 1)); err == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, won, "exactamente el stock inicial")
	assert.Equal(t, 0, f.stock(t, whiskyID))
}

// ─────────────────────────────────────────────────────────────────────────────
// RecordNonStockableSale
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordNonStockableSale_NuncaTocaProductos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rid := f.receipt(t)
	before := f.store.ProductCalls()

	_, err := f.uc.RecordNonStockableSale(ctx, sales.NonStockableSaleInput{
		CategoryID: cocktailCategory, PreparationName: "  Mojito ", Quantity: 3,
		UnitPrice: dec("2500.005"), SaleDate: saleDay, Unit: entity.UnitGlass, ReceiptID: rid,
	})
	require.NoError(t, err)
	assert.Equal(t, before, f.store.ProductCalls(), "ninguna operación sobre product")

	lines, err := f.store.Sales().List(ctx, repositoryFilterByReceipt(rid))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Empty(t, lines[0].ProductID)
	assert.Nil(t, lines[0].Product)
	assert.Equal(t, "Mojito", lines[0].Article)
	assert.Equal(t, "7500.02", lines[0].Amount.StringFixed(2), "2500.005 × 3 = 7500.015 → 7500.02")
}

func TestRecordNonStockableSale_CategoriaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rid := f.receipt(t)
	in := sales.NonStockableSaleInput{
		CategoryID: beerCategory, PreparationName: "Panaché", Quantity: 1,
		UnitPrice: dec("1000"), SaleDate: saleDay, Unit: entity.UnitBottle, ReceiptID: rid,
	}

	_, err := f.uc.RecordNonStockableSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "categoría con inventario")

	in.CategoryID = "6f1c1b7e-9999-4c1a-9a00-000000000000"
	_, err = f.uc.RecordNonStockableSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	in.CategoryID = "cocktails"
	_, err = f.uc.RecordNonStockableSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "categoría no UUID")

	in.CategoryID = cocktailCategory
	in.PreparationName = "   "
	_, err = f.uc.RecordNonStockableSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	in.PreparationName = "Mojito"
	in.UnitPrice = dec("-1")
	_, err = f.uc.RecordNonStockableSale(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, f.store.SaleCount())
}

func TestRecordNonStockableSale_PrecioCeroPermitido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordNonStockableSale(context.Background(), sales.NonStockableSaleInput{
		CategoryID: cocktailCategory, PreparationName: "Eau", Quantity: 1,
		UnitPrice: decimal.Zero, SaleDate: saleDay, Unit: entity.UnitGlass, ReceiptID: f.receipt(t),
	})
	require.NoError(t, err)
}
