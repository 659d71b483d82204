package entity

import "time"

// StockEntry registra una reposición de inventario (tabla entree_stock).
// Siempre va acompañada del incremento de stock del producto en la misma transacción.
type StockEntry struct {
	ID        string
	Date      time.Time
	Quantity  int
	ProductID string
	// Campos de solo lectura para el historial.
	ProductName   string
	CategoryLabel string
}
