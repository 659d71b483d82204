package dto

import "github.com/shopspring/decimal"

// ChargeRequest body para crear o actualizar un gasto.
type ChargeRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// ChargeResponse salida de un gasto.
type ChargeResponse struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}
