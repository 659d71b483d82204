package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados en memoria. Mismos valores por defecto que el SQL:
// precio de compra ausente = 0 y sumas vacías = 0.
type ReportRepo struct {
	v view
}

// simpleMargin amount - purchase_price * quantity, con purchase 0 para ventas sin producto.
func (st *state) simpleMargin(row saleRow) decimal.Decimal {
	purchase := decimal.Zero
	if p, ok := st.products[row.sale.ProductID]; ok && row.sale.ProductID != "" {
		purchase = p.PurchasePrice
	}
	return row.sale.Amount.Sub(purchase.Mul(decimal.NewFromInt(int64(row.sale.Quantity))))
}

func (r *ReportRepo) SalesTotals(_ context.Context, start, end time.Time) (repository.SalesTotals, error) {
	totals := repository.SalesTotals{TotalAmount: decimal.Zero, TotalMargin: decimal.Zero}
	err := r.v.read(func(st *state) error {
		for _, row := range st.sales {
			if !inRange(row.sale.SaleDate, &start, &end) {
				continue
			}
			totals.TotalAmount = totals.TotalAmount.Add(row.sale.Amount)
			totals.TotalMargin = totals.TotalMargin.Add(st.simpleMargin(row))
		}
		return nil
	})
	if totals.TotalMargin.IsNegative() {
		totals.TotalMargin = decimal.Zero
	}
	return totals, err
}

func (r *ReportRepo) ChargeTotal(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.read(func(st *state) error {
		for _, c := range st.charges {
			if inRange(c.Date, &start, &end) {
				total = total.Add(c.Amount)
			}
		}
		return nil
	})
	return total, err
}

func (r *ReportRepo) DailySales(_ context.Context, start, end time.Time) ([]repository.PeriodSales, error) {
	return r.periodSales(start, end, "2006-01-02")
}

func (r *ReportRepo) MonthlySales(_ context.Context, start, end time.Time) ([]repository.PeriodSales, error) {
	return r.periodSales(start, end, "2006-01")
}

func (r *ReportRepo) periodSales(start, end time.Time, layout string) ([]repository.PeriodSales, error) {
	byPeriod := map[string]*repository.PeriodSales{}
	err := r.v.read(func(st *state) error {
		for _, row := range st.sales {
			if !inRange(row.sale.SaleDate, &start, &end) {
				continue
			}
			key := row.sale.SaleDate.Format(layout)
			ps, ok := byPeriod[key]
			if !ok {
				ps = &repository.PeriodSales{Period: key, TotalAmount: decimal.Zero, TotalMargin: decimal.Zero}
				byPeriod[key] = ps
			}
			ps.TotalAmount = ps.TotalAmount.Add(row.sale.Amount)
			ps.TotalMargin = ps.TotalMargin.Add(st.simpleMargin(row))
		}
		return nil
	})
	out := make([]repository.PeriodSales, 0, len(byPeriod))
	for _, ps := range byPeriod {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, err
}
