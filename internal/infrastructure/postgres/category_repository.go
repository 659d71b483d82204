package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo lectura de categorías.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID obtiene una categoría; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, label, stockable FROM categorie WHERE id = $1`, id).
		Scan(&c.ID, &c.Label, &c.Stockable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get category", err)
	}
	return &c, nil
}

// List categorías por etiqueta, opcionalmente filtradas por stockable.
func (r *CategoryRepo) List(ctx context.Context, stockable *bool) ([]*entity.Category, error) {
	query := `SELECT id, label, stockable FROM categorie`
	var args []any
	if stockable != nil {
		query += ` WHERE stockable = $1`
		args = append(args, *stockable)
	}
	query += ` ORDER BY label`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Label, &c.Stockable); err != nil {
			return nil, storeErr("scan category", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return list, nil
}
