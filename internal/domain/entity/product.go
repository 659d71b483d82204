package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta de un producto.
const (
	UnitBottle = "bottle" // botella completa
	UnitGlass  = "glass"  // copa servida de la botella
)

// ValidUnit indica si u es una unidad de venta conocida.
func ValidUnit(u string) bool {
	return u == UnitBottle || u == UnitGlass
}

// Product representa un producto del catálogo.
// Stock se expresa en unidades equivalentes a botella y nunca es negativo.
// BottlePrice y GlassPrice se fijan de forma independiente; ninguno se deriva del otro al escribir.
type Product struct {
	ID            string
	Name          string
	CategoryID    string
	CategoryLabel string          // solo lectura (JOIN con categorie)
	PurchasePrice decimal.Decimal // precio de compra por botella
	BottlePrice   decimal.Decimal
	GlassPrice    decimal.Decimal
	Stock         int
	Unit          string // unidad por defecto: bottle | glass
	ContainerML   int    // contenido de la botella en mL
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
