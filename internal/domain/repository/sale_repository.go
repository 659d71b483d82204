package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// SaleFilter filtros opcionales del historial de ventas (campos vacíos = sin filtro).
// Start y End son inclusivos.
type SaleFilter struct {
	Start      *time.Time
	End        *time.Time
	ProductID  string
	CategoryID string
	ReceiptID  string
}

// SaleRepository puerto del libro de ventas (solo inserción y lectura).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// List devuelve las líneas más recientes primero (fecha desc, creación desc).
	List(ctx context.Context, filter SaleFilter) ([]*entity.SaleLine, error)
}
