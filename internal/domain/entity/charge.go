package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge representa un gasto del bar (alquiler, electricidad, sueldos...).
// No está ligado a productos ni ventas; solo entra en el cálculo del neto.
type Charge struct {
	ID     string
	Type   string
	Amount decimal.Decimal
	Date   time.Time
}
