package entity

import "time"

// Receipt agrupa las líneas de venta registradas en un mismo cobro. Inmutable una vez creado.
type Receipt struct {
	ID           string
	CreatedAt    time.Time
	CustomerName string // vacío si no se indicó cliente
}
