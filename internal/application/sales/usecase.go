// Package sales implementa el motor de ventas: registro transaccional de líneas
// inventariables y no inventariables, recibos y cobro de borradores.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// SaleUseCase registra ventas con bloqueo pesimista de la fila del producto (SELECT FOR UPDATE)
// y Commit/Rollback por línea. No reintenta nunca: todo error vuelve al llamador.
type SaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	receiptRepo  repository.ReceiptRepository
	saleRepo     repository.SaleRepository
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	receiptRepo repository.ReceiptRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		receiptRepo:  receiptRepo,
		saleRepo:     saleRepo,
		now:          time.Now,
	}
}

// StockableSaleInput entrada para registrar una venta de producto con inventario.
type StockableSaleInput struct {
	ProductID string
	Quantity  int
	SaleDate  time.Time
	Unit      string
	ReceiptID string
}

func (in StockableSaleInput) validate() error {
	if !domain.ValidID(in.ProductID) || !domain.ValidID(in.ReceiptID) || in.SaleDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	return nil
}

// NonStockableSaleInput entrada para una venta sin inventario (preparaciones, cocteles...).
type NonStockableSaleInput struct {
	CategoryID      string
	PreparationName string
	Quantity        int
	UnitPrice       decimal.Decimal
	SaleDate        time.Time
	Unit            string
	ReceiptID       string
}

func (in NonStockableSaleInput) validate() error {
	if !domain.ValidID(in.CategoryID) || !domain.ValidID(in.ReceiptID) || in.SaleDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.PreparationName) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.UnitPrice.IsNegative() || !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateReceipt crea un recibo fechado ahora y devuelve su ID. Nombre vacío = sin cliente.
func (uc *SaleUseCase) CreateReceipt(ctx context.Context, customerName string) (string, error) {
	receipt := uc.newReceipt(customerName)
	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return "", err
	}
	return receipt.ID, nil
}

func (uc *SaleUseCase) newReceipt(customerName string) *entity.Receipt {
	return &entity.Receipt{
		ID:           uuid.New().String(),
		CreatedAt:    uc.now(),
		CustomerName: strings.TrimSpace(customerName),
	}
}

// RecordStockableSale bloquea la fila del producto, valida stock y precio, inserta la venta
// y descuenta el stock en una sola transacción. Devuelve el ID de la venta.
func (uc *SaleUseCase) RecordStockableSale(ctx context.Context, in StockableSaleInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	var saleID string
	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		if err := requireReceipt(ctx, receiptRepo, in.ReceiptID); err != nil {
			return err
		}
		id, err := uc.recordStockableInTx(ctx, productRepo, saleRepo, in)
		saleID = id
		return err
	})
	if err != nil {
		return "", err
	}
	return saleID, nil
}

// recordStockableInTx ejecuta los pasos de una venta con inventario usando los repos de la tx del llamador.
func (uc *SaleUseCase) recordStockableInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	in StockableSaleInput,
) (string, error) {
	// Bloquea la fila en product: dos ventas simultáneas del mismo producto se serializan aquí
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}
	if product.Stock < in.Quantity {
		return "", domain.ErrInsufficientStock
	}
	price := pricing.UnitPrice(product, in.Unit)
	if !price.IsPositive() {
		return "", domain.ErrPriceNotSet
	}
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		SaleDate:   entity.DateOf(in.SaleDate),
		Quantity:   in.Quantity,
		Amount:     pricing.LineAmount(price, in.Quantity),
		Unit:       in.Unit,
		ProductID:  product.ID,
		CategoryID: product.CategoryID,
		ReceiptID:  in.ReceiptID,
		CreatedAt:  uc.now(),
	}
	if err := saleRepo.Create(ctx, sale); err != nil {
		return "", err
	}
	if err := productRepo.DecrementStock(ctx, product.ID, in.Quantity); err != nil {
		return "", err
	}
	return sale.ID, nil
}

// RecordNonStockableSale inserta una venta sin producto. No lee ni escribe ninguna fila de product.
func (uc *SaleUseCase) RecordNonStockableSale(ctx context.Context, in NonStockableSaleInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", domain.ErrNotFound
	}
	if category.Stockable {
		return "", fmt.Errorf("categoría %s lleva inventario: %w", category.Label, domain.ErrInvalidInput)
	}
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		SaleDate:        entity.DateOf(in.SaleDate),
		Quantity:        in.Quantity,
		Amount:          pricing.LineAmount(in.UnitPrice, in.Quantity),
		Unit:            in.Unit,
		PreparationName: strings.TrimSpace(in.PreparationName),
		CategoryID:      category.ID,
		ReceiptID:       in.ReceiptID,
		CreatedAt:       uc.now(),
	}
	err = uc.txRunner.RunSales(ctx, func(
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		if err := requireReceipt(ctx, receiptRepo, in.ReceiptID); err != nil {
			return err
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return "", err
	}
	return sale.ID, nil
}

func requireReceipt(ctx context.Context, receiptRepo repository.ReceiptRepository, id string) error {
	receipt, err := receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}
	return nil
}
