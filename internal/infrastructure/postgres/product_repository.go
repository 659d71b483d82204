package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.category_id, c.label, p.purchase_price, p.bottle_price, p.glass_price,
	p.stock, p.unit, p.container_ml, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO product (id, name, category_id, purchase_price, bottle_price, glass_price, stock, unit, container_ml, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.PurchasePrice, p.BottlePrice, p.GlassPrice,
		p.Stock, p.Unit, p.ContainerML, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return storeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM product p JOIN categorie c ON c.id = p.category_id
		WHERE p.id = $1`
	return r.getOne(ctx, "get product", query, id)
}

// GetForUpdate lee el producto con bloqueo de fila (solo tiene efecto dentro de una tx).
// FOR UPDATE OF p: la fila de categorie no se bloquea.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM product p JOIN categorie c ON c.id = p.category_id
		WHERE p.id = $1
		FOR UPDATE OF p`
	return r.getOne(ctx, "get product for update", query, id)
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return p, nil
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE product
		SET name = $2, category_id = $3, purchase_price = $4, bottle_price = $5, glass_price = $6,
		    stock = $7, unit = $8, container_ml = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.CategoryID, p.PurchasePrice, p.BottlePrice, p.GlassPrice,
		p.Stock, p.Unit, p.ContainerML, p.UpdatedAt,
	)
	if err != nil {
		return storeErr("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. Con ventas o entradas asociadas la FK lo impide (ErrConflict).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM product p JOIN categorie c ON c.id = p.category_id
		ORDER BY p.name, p.id`
	return r.list(ctx, "list products", query)
}

// ListLowStock productos con stock <= threshold, de menor a mayor stock y luego por nombre.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM product p JOIN categorie c ON c.id = p.category_id
		WHERE p.stock <= $1
		ORDER BY p.stock ASC, p.name`
	return r.list(ctx, "list low stock", query, threshold)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// DecrementStock resta quantity. El CHECK (stock >= 0) es la última barrera si el llamador no bloqueó la fila.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE product SET stock = stock - $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return storeErr("decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyStockEntry suma la entrada y actualiza precios y unidad por defecto.
func (r *ProductRepo) ApplyStockEntry(ctx context.Context, id string, quantity int, purchasePrice, salePrice decimal.Decimal, unit string) error {
	priceColumn := "bottle_price"
	if unit == entity.UnitGlass {
		priceColumn = "glass_price"
	}
	query := fmt.Sprintf(`
		UPDATE product
		SET stock = stock + $2, purchase_price = $3, %s = $4, unit = $5, updated_at = now()
		WHERE id = $1`, priceColumn)
	tag, err := r.q.Exec(ctx, query, id, quantity, purchasePrice, salePrice, unit)
	if err != nil {
		return storeErr("apply stock entry", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.CategoryLabel, &p.PurchasePrice, &p.BottlePrice, &p.GlassPrice,
		&p.Stock, &p.Unit, &p.ContainerML, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
