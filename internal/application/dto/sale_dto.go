package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	CustomerName string `json:"customer_name"`
}

// StockableSaleRequest body para POST /api/sales/stockable.
type StockableSaleRequest struct {
	ReceiptID string `json:"receipt_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SaleDate  string `json:"sale_date"`
	Unit      string `json:"unit"`
}

// NonStockableSaleRequest body para POST /api/sales/non-stockable.
type NonStockableSaleRequest struct {
	ReceiptID       string          `json:"receipt_id"`
	CategoryID      string          `json:"category_id"`
	PreparationName string          `json:"preparation_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SaleDate        string          `json:"sale_date"`
	Unit            string          `json:"unit"`
}

// DraftLineRequest línea de un borrador de recibo.
type DraftLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SaleDate  string `json:"sale_date"`
	Unit      string `json:"unit"`
}

// CheckoutRequest body para POST /api/checkout y /api/checkout/preview.
type CheckoutRequest struct {
	CustomerName string             `json:"customer_name"`
	Mode         string             `json:"mode"` // per_line | atomic (vacío = configuración)
	Lines        []DraftLineRequest `json:"lines"`
}

// CheckoutLineResponse resultado de una línea del cobro.
type CheckoutLineResponse struct {
	Index   int    `json:"index"`
	SaleID  string `json:"sale_id,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CheckoutResponse resultado del cobro.
type CheckoutResponse struct {
	ReceiptID string                 `json:"receipt_id,omitempty"`
	Mode      string                 `json:"mode"`
	Committed int                    `json:"committed"`
	Failed    int                    `json:"failed"`
	Lines     []CheckoutLineResponse `json:"lines"`
}

// PreviewLineResponse línea del resumen previo al cobro.
type PreviewLineResponse struct {
	Index     int             `json:"index"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	Margin    decimal.Decimal `json:"margin"`
	Code      string          `json:"code,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// PreviewResponse resumen del borrador: montos y margen estimado.
type PreviewResponse struct {
	Lines         []PreviewLineResponse `json:"lines"`
	TotalQuantity int                   `json:"total_quantity"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TotalMargin   decimal.Decimal       `json:"total_margin"`
}

// SaleLineResponse línea del historial de ventas.
type SaleLineResponse struct {
	ID         string          `json:"id"`
	SaleDate   string          `json:"sale_date"`
	Article    string          `json:"article"`
	Category   string          `json:"category"`
	CategoryID string          `json:"category_id"`
	ProductID  string          `json:"product_id,omitempty"`
	ReceiptID  string          `json:"receipt_id"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit"`
	Amount     decimal.Decimal `json:"amount"`
	Margin     decimal.Decimal `json:"margin"`
}

// ReceiptResponse recibo con sus líneas.
type ReceiptResponse struct {
	ID           string             `json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	CustomerName string             `json:"customer_name,omitempty"`
	Lines        []SaleLineResponse `json:"lines,omitempty"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
}
