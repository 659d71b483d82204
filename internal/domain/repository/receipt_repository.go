package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ReceiptRepository puerto de persistencia para los recibos.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Receipt, error)
}
