package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto y bloquea su fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock <= threshold, ordenados por stock y nombre.
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
	// ApplyStockEntry suma quantity al stock y fija precio de compra, precio de venta de la unidad y unidad por defecto.
	ApplyStockEntry(ctx context.Context, id string, quantity int, purchasePrice, salePrice decimal.Decimal, unit string) error
}
