package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ChargeRepository = (*ChargeRepo)(nil)

// ChargeRepo persistencia de gastos.
type ChargeRepo struct {
	q Querier
}

// NewChargeRepository construye el adaptador.
func NewChargeRepository(q Querier) *ChargeRepo {
	return &ChargeRepo{q: q}
}

func (r *ChargeRepo) Create(ctx context.Context, c *entity.Charge) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO charge (id, charge_type, amount, charge_date) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Type, c.Amount, c.Date,
	)
	if err != nil {
		return storeErr("insert charge", err)
	}
	return nil
}

func (r *ChargeRepo) GetByID(ctx context.Context, id string) (*entity.Charge, error) {
	var c entity.Charge
	err := r.q.QueryRow(ctx, `SELECT id, charge_type, amount, charge_date FROM charge WHERE id = $1`, id).
		Scan(&c.ID, &c.Type, &c.Amount, &c.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get charge", err)
	}
	return &c, nil
}

func (r *ChargeRepo) Update(ctx context.Context, c *entity.Charge) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE charge SET charge_type = $2, amount = $3, charge_date = $4 WHERE id = $1`,
		c.ID, c.Type, c.Amount, c.Date,
	)
	if err != nil {
		return storeErr("update charge", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ChargeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM charge WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete charge", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List gastos entre start y end (inclusivos, opcionales), los más recientes primero.
func (r *ChargeRepo) List(ctx context.Context, start, end *time.Time) ([]*entity.Charge, error) {
	var (
		where []string
		args  []any
	)
	if start != nil {
		args = append(args, *start)
		where = append(where, fmt.Sprintf("charge_date >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		where = append(where, fmt.Sprintf("charge_date <= $%d", len(args)))
	}
	query := `SELECT id, charge_type, amount, charge_date FROM charge`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY charge_date DESC, id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list charges", err)
	}
	defer rows.Close()

	var list []*entity.Charge
	for rows.Next() {
		var c entity.Charge
		if err := rows.Scan(&c.ID, &c.Type, &c.Amount, &c.Date); err != nil {
			return nil, storeErr("scan charge", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list charges", err)
	}
	return list, nil
}
