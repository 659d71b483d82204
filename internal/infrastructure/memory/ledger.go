package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var (
	_ repository.ReceiptRepository    = (*ReceiptRepo)(nil)
	_ repository.SaleRepository       = (*SaleRepo)(nil)
	_ repository.ChargeRepository     = (*ChargeRepo)(nil)
	_ repository.StockEntryRepository = (*StockEntryRepo)(nil)
)

// ReceiptRepo recibos en memoria.
type ReceiptRepo struct {
	v view
}

func (r *ReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.receipts[receipt.ID]; ok {
			return conflict("insert receipt", "id duplicado")
		}
		st.receipts[receipt.ID] = *receipt
		return nil
	})
}

func (r *ReceiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	var out *entity.Receipt
	err := r.v.read(func(st *state) error {
		if rc, ok := st.receipts[id]; ok {
			out = &rc
		}
		return nil
	})
	return out, err
}

func (r *ReceiptRepo) ListRecent(_ context.Context, limit int) ([]*entity.Receipt, error) {
	var list []*entity.Receipt
	err := r.v.read(func(st *state) error {
		for _, rc := range st.receipts {
			rc := rc
			list = append(list, &rc)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, err
}

// SaleRepo libro de ventas en memoria (solo inserción).
type SaleRepo struct {
	v view
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.receipts[s.ReceiptID]; !ok {
			return conflict("insert sale", "recibo inexistente")
		}
		if _, ok := st.categories[s.CategoryID]; !ok {
			return conflict("insert sale", "categoría inexistente")
		}
		if s.ProductID != "" {
			if _, ok := st.products[s.ProductID]; !ok {
				return conflict("insert sale", "producto inexistente")
			}
		}
		if s.Quantity <= 0 {
			return conflict("insert sale", "cantidad no positiva")
		}
		st.sales = append(st.sales, saleRow{seq: st.next(), sale: *s})
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.SaleLine, error) {
	var rows []saleRow
	var list []*entity.SaleLine
	err := r.v.read(func(st *state) error {
		for _, row := range st.sales {
			s := row.sale
			if !inRange(s.SaleDate, f.Start, f.End) ||
				(f.ProductID != "" && s.ProductID != f.ProductID) ||
				(f.CategoryID != "" && s.CategoryID != f.CategoryID) ||
				(f.ReceiptID != "" && s.ReceiptID != f.ReceiptID) {
				continue
			}
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i].sale, rows[j].sale
			if !a.SaleDate.Equal(b.SaleDate) {
				return a.SaleDate.After(b.SaleDate)
			}
			return rows[i].seq > rows[j].seq
		})
		for _, row := range rows {
			line := &entity.SaleLine{
				Sale:          row.sale,
				Article:       row.sale.PreparationName,
				CategoryLabel: st.categories[row.sale.CategoryID].Label,
			}
			if p := st.product(row.sale.ProductID); p != nil {
				line.Product = p
				line.Article = p.Name
			}
			list = append(list, line)
		}
		return nil
	})
	return list, err
}

// ChargeRepo gastos en memoria.
type ChargeRepo struct {
	v view
}

func (r *ChargeRepo) Create(_ context.Context, c *entity.Charge) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.charges[c.ID]; ok {
			return conflict("insert charge", "id duplicado")
		}
		st.charges[c.ID] = *c
		return nil
	})
}

func (r *ChargeRepo) GetByID(_ context.Context, id string) (*entity.Charge, error) {
	var out *entity.Charge
	err := r.v.read(func(st *state) error {
		if c, ok := st.charges[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ChargeRepo) Update(_ context.Context, c *entity.Charge) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.charges[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.charges[c.ID] = *c
		return nil
	})
}

func (r *ChargeRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.charges[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.charges, id)
		return nil
	})
}

func (r *ChargeRepo) List(_ context.Context, start, end *time.Time) ([]*entity.Charge, error) {
	var list []*entity.Charge
	err := r.v.read(func(st *state) error {
		for _, c := range st.charges {
			if inRange(c.Date, start, end) {
				c := c
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list, err
}

// StockEntryRepo historial de entradas en memoria.
type StockEntryRepo struct {
	v view
}

func (r *StockEntryRepo) Create(_ context.Context, e *entity.StockEntry) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[e.ProductID]; !ok {
			return conflict("insert stock entry", "producto inexistente")
		}
		st.entries = append(st.entries, entryRow{seq: st.next(), entry: *e})
		return nil
	})
}

func (r *StockEntryRepo) List(_ context.Context, f repository.StockEntryFilter) ([]*entity.StockEntry, error) {
	var rows []entryRow
	var list []*entity.StockEntry
	err := r.v.read(func(st *state) error {
		for _, row := range st.entries {
			if !inRange(row.entry.Date, f.Start, f.End) || (f.ProductID != "" && row.entry.ProductID != f.ProductID) {
				continue
			}
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i].entry, rows[j].entry
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return rows[i].seq > rows[j].seq
		})
		for _, row := range rows {
			e := row.entry
			if p := st.product(e.ProductID); p != nil {
				e.ProductName = p.Name
				e.CategoryLabel = p.CategoryLabel
			}
			list = append(list, &e)
		}
		return nil
	})
	return list, err
}

// inRange fechas inclusivas; extremos nil = sin límite.
func inRange(d time.Time, start, end *time.Time) bool {
	d = entity.DateOf(d)
	if start != nil && d.Before(entity.DateOf(*start)) {
		return false
	}
	if end != nil && d.After(entity.DateOf(*end)) {
		return false
	}
	return true
}
