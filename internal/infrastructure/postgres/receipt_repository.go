package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo persistencia de recibos (tabla recu).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create inserta el recibo; nombre de cliente vacío se guarda como NULL.
func (r *ReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO recu (id, created_at, customer_name) VALUES ($1, $2, NULLIF($3, ''))`,
		receipt.ID, receipt.CreatedAt, receipt.CustomerName,
	)
	if err != nil {
		return storeErr("insert receipt", err)
	}
	return nil
}

// GetByID obtiene un recibo; (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := scanReceipt(r.q.QueryRow(ctx,
		`SELECT id, created_at, COALESCE(customer_name, '') FROM recu WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get receipt", err)
	}
	return receipt, nil
}

// ListRecent los limit recibos más recientes.
func (r *ReceiptRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Receipt, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, created_at, COALESCE(customer_name, '') FROM recu ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, storeErr("list receipts", err)
	}
	defer rows.Close()

	var list []*entity.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, storeErr("scan receipt", err)
		}
		list = append(list, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list receipts", err)
	}
	return list, nil
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var receipt entity.Receipt
	if err := row.Scan(&receipt.ID, &receipt.CreatedAt, &receipt.CustomerName); err != nil {
		return nil, err
	}
	return &receipt, nil
}
