package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/infrastructure/memory"
)

const (
	beerCategory = "6f1c1b7e-0001-4c1a-9a00-000000000001"
	productID    = "a0000000-0000-0000-0000-000000000001"
)

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewSeededStore()
	s.SeedProduct(entity.Product{
		ID: productID, Name: "Castel", CategoryID: beerCategory,
		PurchasePrice: decimal.NewFromInt(600), BottlePrice: decimal.NewFromInt(1000),
		Stock: 5, Unit: entity.UnitBottle, ContainerML: 650,
	})
	return s
}

func stock(t *testing.T, s *memory.Store) int {
	t.Helper()
	p, err := s.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ═══════════════════════════════════════════════════════════════════════════
// Transacciones
// ═══════════════════════════════════════════════════════════════════════════

func TestRunSales_RollbackAnteError(t *testing.T) {
	s := seeded(t)
	boom := errors.New("fallo simulado")

	err := s.RunSales(context.Background(), func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		require.NoError(t, receiptRepo.Create(context.Background(), &entity.Receipt{ID: "r1", CreatedAt: time.Now()}))
		require.NoError(t, productRepo.DecrementStock(context.Background(), productID, 3))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, stock(t, s), "el descuento no debe publicarse")
	assert.Equal(t, 0, s.ReceiptCount())
}

func TestRunSales_CommitPublica(t *testing.T) {
	s := seeded(t)

	err := s.RunSales(context.Background(), func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		ctx := context.Background()
		if err := receiptRepo.Create(ctx, &entity.Receipt{ID: "r1", CreatedAt: time.Now()}); err != nil {
			return err
		}
		if err := saleRepo.Create(ctx, &entity.Sale{
			ID: "s1", SaleDate: time.Now(), Quantity: 2, Amount: decimal.NewFromInt(2000),
			CategoryID: beerCategory, ProductID: productID, ReceiptID: "r1", Unit: entity.UnitBottle,
		}); err != nil {
			return err
		}
		return productRepo.DecrementStock(ctx, productID, 2)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, stock(t, s))
	assert.Equal(t, 1, s.SaleCount())
	assert.Equal(t, 1, s.ReceiptCount())
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.StockEntryRepository, repository.ProductRepository) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrStoreFailure)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ═══════════════════════════════════════════════════════════════════════════
// Constraints emulados
// ═══════════════════════════════════════════════════════════════════════════

func TestSaleCreate_ReciboInexistenteEsConflicto(t *testing.T) {
	s := seeded(t)

	err := s.Sales().Create(context.Background(), &entity.Sale{
		ID: "s1", SaleDate: time.Now(), Quantity: 1, Amount: decimal.NewFromInt(1000),
		CategoryID: beerCategory, ProductID: productID, ReceiptID: "no-existe", Unit: entity.UnitBottle,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}

func TestDecrementStock_NuncaNegativo(t *testing.T) {
	s := seeded(t)

	err := s.Products().DecrementStock(context.Background(), productID, 6)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, stock(t, s))
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	s := seeded(t)

	err := s.Products().Create(context.Background(), &entity.Product{ID: "p2", Name: "X", CategoryID: "nada", Unit: entity.UnitBottle})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApplyStockEntry_FijaPrecioDeLaUnidad(t *testing.T) {
	s := seeded(t)

	require.NoError(t, s.Products().ApplyStockEntry(context.Background(), productID, 4,
		decimal.NewFromInt(650), decimal.NewFromInt(300), entity.UnitGlass))

	p, err := s.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 9, p.Stock)
	assert.True(t, decimal.NewFromInt(650).Equal(p.PurchasePrice))
	assert.True(t, decimal.NewFromInt(300).Equal(p.GlassPrice))
	assert.True(t, decimal.NewFromInt(1000).Equal(p.BottlePrice), "el precio por botella no cambia")
	assert.Equal(t, entity.UnitGlass, p.Unit)
	assert.Equal(t, "Bières", p.CategoryLabel)
}

// ═══════════════════════════════════════════════════════════════════════════
// Orden y filtros
// ═══════════════════════════════════════════════════════════════════════════

func TestSaleList_MasRecientesPrimero(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.Receipts().Create(ctx, &entity.Receipt{ID: "r1", CreatedAt: time.Now()}))

	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, d := range []time.Time{d1, d2, d2} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
			ID: []string{"a", "b", "c"}[i], SaleDate: d, Quantity: 1, Amount: decimal.NewFromInt(1000),
			CategoryID: beerCategory, ProductID: productID, ReceiptID: "r1", Unit: entity.UnitBottle,
		}))
	}

	list, err := s.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Castel", list[0].Article)

	list, err = s.Sales().List(ctx, repository.SaleFilter{Start: &d1, End: &d1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestCategoryList_Stockable(t *testing.T) {
	s := memory.NewSeededStore()
	yes := true

	list, err := s.Categories().List(context.Background(), &yes)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	all, err := s.Categories().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, len(memory.DefaultCategories()))
}
