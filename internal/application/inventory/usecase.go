// Package inventory registra las reposiciones de stock (entradas) de forma transaccional.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// StockEntryUseCase registra entradas de stock: historial en entree_stock + incremento
// del producto + actualización de precios, con Commit/Rollback conjunto.
type StockEntryUseCase struct {
	txRunner  TxRunner
	entryRepo repository.StockEntryRepository
}

// NewStockEntryUseCase construye el caso de uso.
func NewStockEntryUseCase(txRunner TxRunner, entryRepo repository.StockEntryRepository) *StockEntryUseCase {
	return &StockEntryUseCase{txRunner: txRunner, entryRepo: entryRepo}
}

// StockEntryInput entrada para registrar una reposición.
// SalePrice se guarda como precio de la unidad Unit (botella o copa), que pasa a ser la unidad por defecto.
type StockEntryInput struct {
	ProductID     string
	Quantity      int
	Date          time.Time
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Unit          string
}

func (in StockEntryInput) validate() error {
	if !domain.ValidID(in.ProductID) || in.Date.IsZero() || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !in.PurchasePrice.IsPositive() || !in.SalePrice.IsPositive() {
		return domain.ErrInvalidInput
	}
	if !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	return nil
}

// AddStockEntry bloquea el producto, guarda la entrada y aplica el incremento en una sola transacción.
func (uc *StockEntryUseCase) AddStockEntry(ctx context.Context, in StockEntryInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	entry := &entity.StockEntry{
		ID:        uuid.New().String(),
		Date:      entity.DateOf(in.Date),
		Quantity:  in.Quantity,
		ProductID: in.ProductID,
	}
	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Un precio por copa exige rendimiento definido; si no, los informes glass_yield fallan.
		if in.Unit == entity.UnitGlass {
			if _, err := pricing.GlassYield(product.ContainerML); err != nil {
				return domain.ErrInvalidInput
			}
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		return productRepo.ApplyStockEntry(ctx, product.ID, in.Quantity, in.PurchasePrice, in.SalePrice, in.Unit)
	})
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// ListStockEntries historial de entradas, las más recientes primero.
func (uc *StockEntryUseCase) ListStockEntries(ctx context.Context, filter repository.StockEntryFilter) ([]dto.StockEntryResponse, error) {
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidOptionalID(filter.ProductID) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.StockEntryResponse{
			ID:        e.ID,
			Date:      dto.FormatDate(e.Date),
			Quantity:  e.Quantity,
			ProductID: e.ProductID,
			Product:   e.ProductName,
			Category:  e.CategoryLabel,
		})
	}
	return out, nil
}
