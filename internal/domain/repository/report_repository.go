package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals totales de un período. El margen usa el modelo simple y nunca es negativo.
type SalesTotals struct {
	TotalAmount decimal.Decimal
	TotalMargin decimal.Decimal
}

// PeriodSales fila agregada por día o por mes (modelo simple, sin recorte a cero).
type PeriodSales struct {
	Period      string // YYYY-MM-DD o YYYY-MM
	TotalAmount decimal.Decimal
	TotalMargin decimal.Decimal
}

// ReportRepository consultas de solo lectura para los reportes. Los rangos son inclusivos por fecha.
// Política de valores por defecto: precio de compra ausente = 0 y sumas vacías = 0.
type ReportRepository interface {
	SalesTotals(ctx context.Context, start, end time.Time) (SalesTotals, error)
	ChargeTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	DailySales(ctx context.Context, start, end time.Time) ([]PeriodSales, error)
	MonthlySales(ctx context.Context, start, end time.Time) ([]PeriodSales, error)
}
