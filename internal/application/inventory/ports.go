package inventory

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la entrada de stock y el incremento del producto se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
