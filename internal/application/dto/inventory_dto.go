package dto

import "github.com/shopspring/decimal"

// AddStockEntryRequest body para POST /api/stock-entries.
type AddStockEntryRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Date          string          `json:"date"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Unit          string          `json:"unit"`
}

// StockEntryResponse línea del historial de entradas.
type StockEntryResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Quantity  int    `json:"quantity"`
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	Category  string `json:"category"`
}
