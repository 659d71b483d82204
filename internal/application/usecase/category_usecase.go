package usecase

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// CategoryUseCase lectura de categorías (las categorías se cargan con la migración).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List lista categorías; stockable nil = todas.
func (uc *CategoryUseCase) List(ctx context.Context, stockable *bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, stockable)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Label: c.Label, Stockable: c.Stockable})
	}
	return out, nil
}
