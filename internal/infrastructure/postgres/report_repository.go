package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes.
// Valores por defecto en un solo lugar: COALESCE(purchase_price, 0) y COALESCE(SUM(...), 0).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals ventas y margen (modelo simple, recortado a 0) del período.
func (r *ReportRepo) SalesTotals(ctx context.Context, start, end time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(v.amount), 0)                                                    AS total_sales,
	    GREATEST(COALESCE(SUM(v.amount - COALESCE(p.purchase_price, 0) * v.quantity), 0), 0) AS total_margin
	FROM vente v
	LEFT JOIN product p ON p.id = v.product_id
	WHERE v.sale_date BETWEEN $1 AND $2`

	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&t.TotalAmount, &t.TotalMargin); err != nil {
		return repository.SalesTotals{}, storeErr("report.SalesTotals", err)
	}
	return t, nil
}

// ChargeTotal suma de gastos del período.
func (r *ReportRepo) ChargeTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM charge WHERE charge_date BETWEEN $1 AND $2`, start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, storeErr("report.ChargeTotal", err)
	}
	return total, nil
}

// DailySales serie por día, ascendente.
func (r *ReportRepo) DailySales(ctx context.Context, start, end time.Time) ([]repository.PeriodSales, error) {
	return r.periodSales(ctx, "report.DailySales", "YYYY-MM-DD", start, end)
}

// MonthlySales serie por mes, ascendente.
func (r *ReportRepo) MonthlySales(ctx context.Context, start, end time.Time) ([]repository.PeriodSales, error) {
	return r.periodSales(ctx, "report.MonthlySales", "YYYY-MM", start, end)
}

func (r *ReportRepo) periodSales(ctx context.Context, op, layout string, start, end time.Time) ([]repository.PeriodSales, error) {
	const query = `
	SELECT
	    to_char(v.sale_date, $3)                                            AS period,
	    COALESCE(SUM(v.amount), 0)                                          AS total_sales,
	    COALESCE(SUM(v.amount - COALESCE(p.purchase_price, 0) * v.quantity), 0) AS total_margin
	FROM vente v
	LEFT JOIN product p ON p.id = v.product_id
	WHERE v.sale_date BETWEEN $1 AND $2
	GROUP BY period
	ORDER BY period`

	rows, err := r.q.Query(ctx, query, start, end, layout)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []repository.PeriodSales
	for rows.Next() {
		var ps repository.PeriodSales
		if err := rows.Scan(&ps.Period, &ps.TotalAmount, &ps.TotalMargin); err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}
