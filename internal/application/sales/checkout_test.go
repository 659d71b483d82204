package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
)

// mixedDraft: la tercera línea excede el stock de Castel (5 - 2 = 3 < 10).
func mixedDraft() *sales.DraftReceipt {
	return sales.NewDraftReceipt("Awa").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 2, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: whiskyID, Quantity: 2, SaleDate: saleDay, Unit: entity.UnitGlass}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 10, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle})
}

func TestParseCheckoutMode(t *testing.T) {
	m, err := sales.ParseCheckoutMode("", sales.CheckoutPerLine)
	require.NoError(t, err)
	assert.Equal(t, sales.CheckoutPerLine, m)

	m, err = sales.ParseCheckoutMode("atomic", sales.CheckoutPerLine)
	require.NoError(t, err)
	assert.Equal(t, sales.CheckoutAtomic, m)

	_, err = sales.ParseCheckoutMode("batch", sales.CheckoutPerLine)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_BorradorVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Checkout(context.Background(), sales.NewDraftReceipt(""), sales.CheckoutPerLine)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.store.ReceiptCount())
}

func TestCheckout_PorLineaConservaLasLineasValidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.Checkout(ctx, mixedDraft(), sales.CheckoutPerLine)
	require.NoError(t, err)
	require.NotEmpty(t, res.ReceiptID)
	require.Len(t, res.Lines, 4)

	assert.Equal(t, 3, res.Committed())
	assert.Equal(t, 1, res.Failed())
	assert.ErrorIs(t, res.Lines[2].Err, domain.ErrInsufficientStock)
	assert.Empty(t, res.Lines[2].SaleID)
	assert.NotEmpty(t, res.Lines[3].SaleID, "la línea posterior al fallo también se registra")

	assert.Equal(t, 2, f.stock(t, castelID), "5 - 2 - 1")
	assert.Equal(t, 8, f.stock(t, whiskyID))
	assert.Equal(t, 1, f.store.ReceiptCount())
	assert.Equal(t, 3, f.store.SaleCount())

	receipt, err := f.uc.GetReceipt(ctx, res.ReceiptID, pricing.ModelGlassYield)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "Awa", receipt.CustomerName)
	assert.Len(t, receipt.Lines, 3)
	assert.Equal(t, "6000.00", receipt.TotalAmount.StringFixed(2), "2000 + 3000 + 1000")
}

func TestCheckout_AtomicoDeshaceTodo(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Checkout(context.Background(), mixedDraft(), sales.CheckoutAtomic)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	idx, ok := sales.IsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	assert.Equal(t, 5, f.stock(t, castelID))
	assert.Equal(t, 10, f.stock(t, whiskyID))
	assert.Equal(t, 0, f.store.ReceiptCount(), "sin recibo")
	assert.Equal(t, 0, f.store.SaleCount(), "sin ventas")
}

func TestCheckout_AtomicoSumaLineasDelMismoProducto(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 3, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 3, SaleDate: saleDay, Unit: entity.UnitBottle})

	_, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutAtomic)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	idx, _ := sales.IsLineError(err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 5, f.stock(t, castelID))
}

func TestCheckout_AtomicoProductoInexistente(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: "a0000000-0000-0000-0000-00000000ffff", Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle})

	_, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutAtomic)
	require.ErrorIs(t, err, domain.ErrNotFound)
	idx, _ := sales.IsLineError(err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, f.store.ReceiptCount())
}

func TestCheckout_AtomicoLineaInvalidaAntesDeAbrirTx(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 0, SaleDate: saleDay, Unit: entity.UnitBottle})

	_, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutAtomic)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.store.ReceiptCount())
}

func TestCheckout_AtomicoIDMalFormado(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: "castel", Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle})

	_, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutAtomic)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	idx, ok := sales.IsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 5, f.stock(t, castelID))
	assert.Equal(t, 0, f.store.ReceiptCount())
}

func TestCheckout_PorLineaIDMalFormado(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: "castel", Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle})

	res, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutPerLine)
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)
	assert.ErrorIs(t, res.Lines[0].Err, domain.ErrInvalidInput)
	assert.NoError(t, res.Lines[1].Err)
	assert.Equal(t, 4, f.stock(t, castelID))
}

func TestCheckout_AtomicoExitoso(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: whiskyID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 4, SaleDate: saleDay, Unit: entity.UnitBottle})

	res, err := f.uc.Checkout(context.Background(), draft, sales.CheckoutAtomic)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Committed())
	assert.Equal(t, 0, res.Failed())
	assert.Equal(t, 1, f.stock(t, castelID))
	assert.Equal(t, 9, f.stock(t, whiskyID))
	assert.Equal(t, 1, f.store.ReceiptCount())
}

func TestPreview_NoEscribeYAnticipaErrores(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: castelID, Quantity: 2, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: whiskyID, Quantity: 2, SaleDate: saleDay, Unit: entity.UnitGlass}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 4, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitGlass})

	p, err := f.uc.Preview(context.Background(), draft, pricing.ModelGlassYield)
	require.NoError(t, err)
	require.Len(t, p.Lines, 4)

	assert.Equal(t, "2000.00", p.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "800.00", p.Lines[0].Margin.StringFixed(2), "2000 - 600 × 2")
	// copa: 20000 / (750 / 50) = 1333.33… por copa
	assert.Equal(t, "3000.00", p.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "333.33", p.Lines[1].Margin.StringFixed(2))
	assert.ErrorIs(t, p.Lines[2].Err, domain.ErrInsufficientStock, "quedan 3 tras la primera línea")
	assert.ErrorIs(t, p.Lines[3].Err, domain.ErrPriceNotSet)

	assert.Equal(t, 4, p.TotalQuantity)
	assert.Equal(t, "5000.00", p.TotalAmount.StringFixed(2))
	assert.Equal(t, "1133.33", p.TotalMargin.StringFixed(2))

	assert.Equal(t, 5, f.stock(t, castelID))
	assert.Equal(t, 0, f.store.SaleCount())
	assert.Equal(t, 0, f.store.ReceiptCount())
}

func TestPreview_IDMalFormadoSoloFallaSuLinea(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: "castel", Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle}).
		Add(sales.DraftLine{ProductID: castelID, Quantity: 1, SaleDate: saleDay, Unit: entity.UnitBottle})

	p, err := f.uc.Preview(context.Background(), draft, pricing.ModelSimple)
	require.NoError(t, err)
	require.Len(t, p.Lines, 2)
	assert.ErrorIs(t, p.Lines[0].Err, domain.ErrInvalidInput)
	assert.NoError(t, p.Lines[1].Err)
	assert.Equal(t, 1, p.TotalQuantity)
}

func TestPreview_ModeloSimple(t *testing.T) {
	f := newFixture(t)
	draft := sales.NewDraftReceipt("").
		Add(sales.DraftLine{ProductID: whiskyID, Quantity: 2, SaleDate: saleDay, Unit: entity.UnitGlass})

	p, err := f.uc.Preview(context.Background(), draft, pricing.ModelSimple)
	require.NoError(t, err)
	assert.Equal(t, "-27000.00", p.Lines[0].Margin.StringFixed(2), "3000 - 15000 × 2")
}
