package sales

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}

// ReceiptPDFGenerator renderiza un recibo con sus líneas.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(receipt *dto.ReceiptResponse) ([]byte, error)
}
