package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// CategoryRepository define el puerto de lectura para Category (las categorías vienen de la migración).
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// List filtra por el flag stockable cuando no es nil; orden por etiqueta.
	List(ctx context.Context, stockable *bool) ([]*entity.Category, error)
}
