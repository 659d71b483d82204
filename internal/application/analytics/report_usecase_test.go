package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/application/analytics"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/infrastructure/memory"
)

const (
	beerCategory     = "6f1c1b7e-0001-4c1a-9a00-000000000001"
	cocktailCategory = "6f1c1b7e-0005-4c1a-9a00-000000000005"
	castelID         = "a0000000-0000-0000-0000-000000000001"
	flagID           = "a0000000-0000-0000-0000-000000000003"
	receiptID        = "r0000000-0000-0000-0000-000000000001"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fakeGenerator struct{ got *dto.PeriodReportDTO }

func (g *fakeGenerator) GenerateReportPDF(r *dto.PeriodReportDTO) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

type reportFixture struct {
	store *memory.Store
	uc    *analytics.ReportUseCase
	gen   *fakeGenerator
	seq   int
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	store := memory.NewSeededStore()
	store.SeedProduct(entity.Product{
		ID: castelID, Name: "Castel", CategoryID: beerCategory,
		PurchasePrice: dec(600), BottlePrice: dec(1000), Stock: 2, Unit: entity.UnitBottle, ContainerML: 650,
	})
	store.SeedProduct(entity.Product{
		ID: flagID, Name: "Flag", CategoryID: beerCategory,
		PurchasePrice: dec(500), BottlePrice: dec(900), Stock: 1, Unit: entity.UnitBottle, ContainerML: 650,
	})
	require.NoError(t, store.Receipts().Create(context.Background(), &entity.Receipt{ID: receiptID, CreatedAt: time.Now()}))
	gen := &fakeGenerator{}
	return &reportFixture{
		store: store,
		uc:    analytics.NewReportUseCase(store.Reports(), store.Products(), gen),
		gen:   gen,
	}
}

// sale guarda una línea directamente en el libro (sin descontar stock).
func (f *reportFixture) sale(t *testing.T, day time.Time, productID string, qty int, amount int64) {
	t.Helper()
	f.seq++
	s := &entity.Sale{
		ID: fmt.Sprintf("s%d", f.seq), SaleDate: day, Quantity: qty, Amount: dec(amount),
		CategoryID: beerCategory, ProductID: productID, ReceiptID: receiptID, Unit: entity.UnitBottle,
	}
	if productID == "" {
		s.CategoryID = cocktailCategory
		s.PreparationName = "Mojito"
	}
	require.NoError(t, f.store.Sales().Create(context.Background(), s))
}

func (f *reportFixture) charge(t *testing.T, day time.Time, amount int64) {
	t.Helper()
	f.seq++
	require.NoError(t, f.store.Charges().Create(context.Background(), &entity.Charge{
		ID: fmt.Sprintf("c%d", f.seq), Type: "Loyer", Amount: dec(amount), Date: day,
	}))
}

// ═══════════════════════════════════════════════════════════════════════════
// Summary
// ═══════════════════════════════════════════════════════════════════════════

func TestSummary_SinVentasTodoCero(t *testing.T) {
	f := newReportFixture(t)

	s, err := f.uc.Summary(context.Background(), date(2026, 3, 1), date(2026, 3, 31))
	require.NoError(t, err)
	assert.True(t, s.TotalSales.IsZero())
	assert.True(t, s.TotalMargin.IsZero())
	assert.True(t, s.TotalCharges.IsZero())
	assert.True(t, s.Net.IsZero())
	assert.Equal(t, "2026-03-01", s.Start)
	assert.Equal(t, "2026-03-31", s.End)
}

func TestSummary_NetoEsMargenMenosGastos(t *testing.T) {
	f := newReportFixture(t)
	f.sale(t, date(2026, 3, 2), castelID, 3, 3000) // margen 1200
	f.sale(t, date(2026, 3, 5), "", 2, 5000)       // preparación: margen = monto
	f.sale(t, date(2026, 4, 1), castelID, 1, 1000) // fuera del período
	f.charge(t, date(2026, 3, 10), 2000)
	f.charge(t, date(2026, 2, 28), 9999)

	s, err := f.uc.Summary(context.Background(), date(2026, 3, 1), date(2026, 3, 31))
	require.NoError(t, err)
	assert.True(t, dec(8000).Equal(s.TotalSales))
	assert.True(t, dec(6200).Equal(s.TotalMargin))
	assert.True(t, dec(2000).Equal(s.TotalCharges))
	assert.True(t, dec(4200).Equal(s.Net))
}

func TestSummary_MargenTotalNuncaNegativo(t *testing.T) {
	f := newReportFixture(t)
	f.sale(t, date(2026, 3, 2), castelID, 2, 800) // 800 - 1200 = -400
	f.charge(t, date(2026, 3, 2), 100)

	s, err := f.uc.Summary(context.Background(), date(2026, 3, 2), date(2026, 3, 2))
	require.NoError(t, err)
	assert.True(t, s.TotalMargin.IsZero())
	assert.True(t, dec(-100).Equal(s.Net), "el neto sí puede ser negativo")

	daily, err := f.uc.Daily(context.Background(), date(2026, 3, 2), date(2026, 3, 2))
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.True(t, dec(-400).Equal(daily[0].TotalMargin), "la serie diaria no se recorta")
}

func TestSummary_RangoInvertido(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.uc.Summary(context.Background(), date(2026, 3, 2), date(2026, 3, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ═══════════════════════════════════════════════════════════════════════════
// Series
// ═══════════════════════════════════════════════════════════════════════════

func TestDailyYMonthly_OrdenAscendente(t *testing.T) {
	f := newReportFixture(t)
	f.sale(t, date(2026, 4, 3), castelID, 1, 1000)
	f.sale(t, date(2026, 3, 9), flagID, 1, 900)
	f.sale(t, date(2026, 3, 9), castelID, 1, 1000)
	f.sale(t, date(2026, 3, 1), castelID, 1, 1000)

	daily, err := f.uc.Daily(context.Background(), date(2026, 3, 1), date(2026, 4, 30))
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2026-03-01", "2026-03-09", "2026-04-03"}, []string{daily[0].Period, daily[1].Period, daily[2].Period})
	assert.True(t, dec(1900).Equal(daily[1].TotalSales))

	monthly, err := f.uc.Monthly(context.Background(), date(2026, 3, 1), date(2026, 4, 30))
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2026-03", monthly[0].Period)
	assert.True(t, dec(2900).Equal(monthly[0].TotalSales))
	assert.Equal(t, "2026-04", monthly[1].Period)
}

// ═══════════════════════════════════════════════════════════════════════════
// Dashboard y PDF
// ═══════════════════════════════════════════════════════════════════════════

func TestDashboard_HoyYStockBajo(t *testing.T) {
	f := newReportFixture(t)
	f.sale(t, entity.DateOf(time.Now()), castelID, 1, 1000)

	d, err := f.uc.Dashboard(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, dec(1000).Equal(d.Today.TotalSales))
	require.Len(t, d.LowStock, 2)
	assert.Equal(t, "Flag", d.LowStock[0].Name, "menor stock primero")
	assert.Equal(t, "Bières", d.LowStock[0].Category)

	_, err = f.uc.Dashboard(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportPDF_NombreYContenido(t *testing.T) {
	f := newReportFixture(t)
	f.sale(t, date(2026, 3, 2), castelID, 1, 1000)

	b, name, err := f.uc.ReportPDF(context.Background(), date(2026, 3, 1), date(2026, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, "rapport-2026-03-01-2026-03-31.pdf", name)
	assert.Equal(t, "%PDF-fake", string(b))
	require.NotNil(t, f.gen.got)
	assert.Len(t, f.gen.got.Daily, 1)
	assert.True(t, dec(400).Equal(f.gen.got.Summary.TotalMargin))
}
