package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ChargeRepository puerto de persistencia para los gastos.
// Update y Delete devuelven domain.ErrNotFound si el gasto no existe.
type ChargeRepository interface {
	Create(ctx context.Context, charge *entity.Charge) error
	GetByID(ctx context.Context, id string) (*entity.Charge, error)
	Update(ctx context.Context, charge *entity.Charge) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, start, end *time.Time) ([]*entity.Charge, error)
}
