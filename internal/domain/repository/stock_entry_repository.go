package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// StockEntryFilter filtros opcionales del historial de entradas.
type StockEntryFilter struct {
	Start     *time.Time
	End       *time.Time
	ProductID string
}

// StockEntryRepository puerto del historial de entradas de stock (solo inserción).
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	List(ctx context.Context, filter StockEntryFilter) ([]*entity.StockEntry, error)
}
