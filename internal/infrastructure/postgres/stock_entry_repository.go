package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo historial de entradas (tabla entree_stock).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador.
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO entree_stock (id, entry_date, quantity, product_id) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Date, e.Quantity, e.ProductID,
	)
	if err != nil {
		return storeErr("insert stock entry", err)
	}
	return nil
}

// List entradas filtradas, las más recientes primero.
func (r *StockEntryRepo) List(ctx context.Context, f repository.StockEntryFilter) ([]*entity.StockEntry, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Start != nil {
		add("e.entry_date >= $%d", *f.Start)
	}
	if f.End != nil {
		add("e.entry_date <= $%d", *f.End)
	}
	if f.ProductID != "" {
		add("e.product_id = $%d", f.ProductID)
	}

	query := `
		SELECT e.id, e.entry_date, e.quantity, e.product_id, p.name, c.label
		FROM entree_stock e
		JOIN product p ON p.id = e.product_id
		JOIN categorie c ON c.id = p.category_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.entry_date DESC, e.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list stock entries", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Quantity, &e.ProductID, &e.ProductName, &e.CategoryLabel); err != nil {
			return nil, storeErr("scan stock entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list stock entries", err)
	}
	return list, nil
}
