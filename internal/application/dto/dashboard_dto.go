package dto

import "github.com/shopspring/decimal"

// SummaryDTO KPIs de un período: ventas, margen (modelo simple, >= 0), gastos y neto.
type SummaryDTO struct {
	Start        string          `json:"start"`
	End          string          `json:"end"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalMargin  decimal.Decimal `json:"total_margin"`
	TotalCharges decimal.Decimal `json:"total_charges"`
	Net          decimal.Decimal `json:"net"` // margen - gastos, calculado, no persistido
}

// PeriodSalesDTO fila de la serie diaria o mensual.
type PeriodSalesDTO struct {
	Period      string          `json:"period"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalMargin decimal.Decimal `json:"total_margin"`
}

// DashboardDTO respuesta de GET /api/dashboard: KPIs del día y stock bajo.
type DashboardDTO struct {
	Today     SummaryDTO         `json:"today"`
	Threshold int                `json:"threshold"`
	LowStock  []LowStockResponse `json:"low_stock"`
}

// PeriodReportDTO datos del reporte PDF de un período: resumen y serie diaria.
type PeriodReportDTO struct {
	Title   string           `json:"title"`
	Summary SummaryDTO       `json:"summary"`
	Daily   []PeriodSalesDTO `json:"daily"`
}
