package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/pricing"
)

// ReceiptPDFUseCase genera el PDF de un recibo a partir del mismo DTO que expone la API.
type ReceiptPDFUseCase struct {
	sales     *SaleUseCase
	generator ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(sales *SaleUseCase, generator ReceiptPDFGenerator) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{sales: sales, generator: generator}
}

// DownloadReceiptPDF devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si el recibo no existe.
func (uc *ReceiptPDFUseCase) DownloadReceiptPDF(ctx context.Context, receiptID string) ([]byte, string, error) {
	receipt, err := uc.sales.GetReceipt(ctx, receiptID, pricing.ModelGlassYield)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener recibo: %w", err)
	}
	if receipt == nil {
		return nil, "", domain.ErrNotFound
	}
	b, err := uc.generator.GenerateReceiptPDF(receipt)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return b, fmt.Sprintf("recu-%s.pdf", receipt.ID), nil
}
