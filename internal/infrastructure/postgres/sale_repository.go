package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas (tabla vente). Solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una línea de venta. product_id y preparation_name vacíos se guardan como NULL.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO vente (id, sale_date, quantity, amount, unit, preparation_name, product_id, category_id, receipt_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, '')::uuid, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SaleDate, s.Quantity, s.Amount, s.Unit, s.PreparationName,
		s.ProductID, s.CategoryID, s.ReceiptID, s.CreatedAt,
	)
	if err != nil {
		return storeErr("insert sale", err)
	}
	return nil
}

// List historial filtrado con datos de producto y categoría para el cálculo del margen.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.SaleLine, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Start != nil {
		add("v.sale_date >= $%d", *f.Start)
	}
	if f.End != nil {
		add("v.sale_date <= $%d", *f.End)
	}
	if f.ProductID != "" {
		add("v.product_id = $%d", f.ProductID)
	}
	if f.CategoryID != "" {
		add("v.category_id = $%d", f.CategoryID)
	}
	if f.ReceiptID != "" {
		add("v.receipt_id = $%d", f.ReceiptID)
	}

	query := `
		SELECT v.id, v.sale_date, v.quantity, v.amount, v.unit, COALESCE(v.preparation_name, ''),
		       COALESCE(v.product_id::text, ''), v.category_id, v.receipt_id, v.created_at,
		       c.label,
		       p.name, p.purchase_price, p.bottle_price, p.glass_price, p.container_ml
		FROM vente v
		JOIN categorie c ON c.id = v.category_id
		LEFT JOIN product p ON p.id = v.product_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY v.sale_date DESC, v.created_at DESC, v.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	defer rows.Close()

	var list []*entity.SaleLine
	for rows.Next() {
		var (
			line    entity.SaleLine
			pName   *string
			product entity.Product
			ml      *int
		)
		// Las columnas de product son NULL en ventas no inventariables.
		var purchase, bottle, glass decimal.NullDecimal
		if err := rows.Scan(
			&line.ID, &line.SaleDate, &line.Quantity, &line.Amount, &line.Unit, &line.PreparationName,
			&line.ProductID, &line.CategoryID, &line.ReceiptID, &line.CreatedAt,
			&line.CategoryLabel,
			&pName, &purchase, &bottle, &glass, &ml,
		); err != nil {
			return nil, storeErr("scan sale", err)
		}
		line.Article = line.PreparationName
		if pName != nil {
			product.ID = line.ProductID
			product.Name = *pName
			product.CategoryID = line.CategoryID
			product.CategoryLabel = line.CategoryLabel
			product.PurchasePrice = purchase.Decimal
			product.BottlePrice = bottle.Decimal
			product.GlassPrice = glass.Decimal
			if ml != nil {
				product.ContainerML = *ml
			}
			line.Article = product.Name
			line.Product = &product
		}
		list = append(list, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list sales", err)
	}
	return list, nil
}
