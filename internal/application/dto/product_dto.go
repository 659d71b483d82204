package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Stockable bool   `json:"stockable"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	BottlePrice   decimal.Decimal `json:"bottle_price"`
	GlassPrice    decimal.Decimal `json:"glass_price"`
	Stock         int             `json:"stock"`
	Unit          string          `json:"unit"`
	ContainerML   int             `json:"container_ml"`
}

// UpdateProductRequest entrada para actualizar un producto (reemplazo completo, como el formulario de edición).
type UpdateProductRequest = CreateProductRequest

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	BottlePrice   decimal.Decimal `json:"bottle_price"`
	GlassPrice    decimal.Decimal `json:"glass_price"`
	Stock         int             `json:"stock"`
	Unit          string          `json:"unit"`
	ContainerML   int             `json:"container_ml"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStockResponse producto bajo el umbral de stock.
type LowStockResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}
