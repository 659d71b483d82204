package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

const defaultReceiptLimit = 50

// ListSales devuelve el historial filtrado con el margen de cada línea según model.
func (uc *SaleUseCase) ListSales(ctx context.Context, filter repository.SaleFilter, model pricing.Model) ([]dto.SaleLineResponse, error) {
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidOptionalID(filter.ProductID) || !domain.ValidOptionalID(filter.CategoryID) || !domain.ValidOptionalID(filter.ReceiptID) {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toSaleLineResponses(lines, model)
}

// GetReceipt devuelve el recibo con sus líneas; (nil, nil) si no existe.
// Un id que no es UUID devuelve domain.ErrInvalidInput.
func (uc *SaleUseCase) GetReceipt(ctx context.Context, id string, model pricing.Model) (*dto.ReceiptResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil || receipt == nil {
		return nil, err
	}
	lines, err := uc.saleRepo.List(ctx, repository.SaleFilter{ReceiptID: id})
	if err != nil {
		return nil, err
	}
	items, err := toSaleLineResponses(lines, model)
	if err != nil {
		return nil, err
	}
	out := toReceiptResponse(receipt)
	out.Lines = items
	for _, l := range items {
		out.TotalAmount = out.TotalAmount.Add(l.Amount)
	}
	return out, nil
}

// ListReceipts devuelve los últimos recibos (limit <= 0 usa 50).
func (uc *SaleUseCase) ListReceipts(ctx context.Context, limit int) ([]dto.ReceiptResponse, error) {
	if limit <= 0 {
		limit = defaultReceiptLimit
	}
	list, err := uc.receiptRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReceiptResponse(r))
	}
	return out, nil
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		CustomerName: r.CustomerName,
		TotalAmount:  decimal.Zero,
	}
}

func toSaleLineResponses(lines []*entity.SaleLine, model pricing.Model) ([]dto.SaleLineResponse, error) {
	out := make([]dto.SaleLineResponse, 0, len(lines))
	for _, l := range lines {
		margin, err := pricing.ComputeMargin(&l.Sale, l.Product, model)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.SaleLineResponse{
			ID:         l.ID,
			SaleDate:   dto.FormatDate(l.SaleDate),
			Article:    l.Article,
			Category:   l.CategoryLabel,
			CategoryID: l.CategoryID,
			ProductID:  l.ProductID,
			ReceiptID:  l.ReceiptID,
			Quantity:   l.Quantity,
			Unit:       l.Unit,
			Amount:     l.Amount,
			Margin:     margin,
		})
	}
	return out, nil
}
