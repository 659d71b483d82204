package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una línea de venta (tabla vente). Solo se inserta; nunca se modifica ni se borra.
// ProductID está vacío en las ventas no inventariables, que llevan PreparationName.
type Sale struct {
	ID              string
	SaleDate        time.Time
	Quantity        int
	Amount          decimal.Decimal // 2 decimales
	Unit            string
	PreparationName string
	ProductID       string
	CategoryID      string
	ReceiptID       string
	CreatedAt       time.Time
}

// IsStockable indica si la venta está ligada a un producto con inventario.
func (s *Sale) IsStockable() bool { return s.ProductID != "" }

// SaleLine es una venta enriquecida con los datos del producto y la categoría,
// necesarios para mostrarla y calcular su margen.
type SaleLine struct {
	Sale
	Article       string // nombre del producto o de la preparación
	CategoryLabel string
	Product       *Product // nil para ventas no inventariables
}
