// Package analytics contiene los casos de uso de reportes: totales por período,
// series diarias y mensuales, dashboard y reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura. No toca ventas ni stock.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	generator   ReportPDFGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. generator puede ser nil si no se exponen PDFs.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	generator ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		productRepo: productRepo,
		generator:   generator,
		now:         time.Now,
	}
}

// Summary ventas, margen, gastos y neto (margen - gastos) del período inclusivo [start, end].
func (uc *ReportUseCase) Summary(ctx context.Context, start, end time.Time) (*dto.SummaryDTO, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	// ── Dos consultas en paralelo ─────────────────────────────────────────────
	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type chargesResult struct {
		total decimal.Decimal
		err   error
	}
	totalsCh := make(chan totalsResult, 1)
	chargesCh := make(chan chargesResult, 1)

	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, start, end)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		c, err := uc.reportRepo.ChargeTotal(ctx, start, end)
		chargesCh <- chargesResult{c, err}
	}()

	totals := <-totalsCh
	charges := <-chargesCh
	if totals.err != nil {
		return nil, fmt.Errorf("reporte: totales de ventas: %w", totals.err)
	}
	if charges.err != nil {
		return nil, fmt.Errorf("reporte: total de gastos: %w", charges.err)
	}

	margin := totals.totals.TotalMargin.Round(2)
	chargeTotal := charges.total.Round(2)
	return &dto.SummaryDTO{
		Start:        dto.FormatDate(start),
		End:          dto.FormatDate(end),
		TotalSales:   totals.totals.TotalAmount.Round(2),
		TotalMargin:  margin,
		TotalCharges: chargeTotal,
		Net:          margin.Sub(chargeTotal),
	}, nil
}

// Daily serie por día del período, ascendente.
func (uc *ReportUseCase) Daily(ctx context.Context, start, end time.Time) ([]dto.PeriodSalesDTO, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.DailySales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte: serie diaria: %w", err)
	}
	return toPeriodDTOs(rows), nil
}

// Monthly serie por mes (YYYY-MM) del período, ascendente.
func (uc *ReportUseCase) Monthly(ctx context.Context, start, end time.Time) ([]dto.PeriodSalesDTO, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.MonthlySales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte: serie mensual: %w", err)
	}
	return toPeriodDTOs(rows), nil
}

// Dashboard KPIs del día y productos con stock <= threshold.
func (uc *ReportUseCase) Dashboard(ctx context.Context, threshold int) (*dto.DashboardDTO, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	today := entity.DateOf(uc.now())

	type lowStockResult struct {
		products []*entity.Product
		err      error
	}
	lowCh := make(chan lowStockResult, 1)
	go func() {
		list, err := uc.productRepo.ListLowStock(ctx, threshold)
		lowCh <- lowStockResult{list, err}
	}()

	summary, err := uc.Summary(ctx, today, today)
	low := <-lowCh
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	items := make([]dto.LowStockResponse, 0, len(low.products))
	for _, p := range low.products {
		items = append(items, dto.LowStockResponse{ID: p.ID, Name: p.Name, Category: p.CategoryLabel, Stock: p.Stock})
	}
	return &dto.DashboardDTO{Today: *summary, Threshold: threshold, LowStock: items}, nil
}

// ReportPDF genera el PDF del período: resumen y detalle diario.
func (uc *ReportUseCase) ReportPDF(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("reporte pdf: generador no configurado")
	}
	summary, err := uc.Summary(ctx, start, end)
	if err != nil {
		return nil, "", err
	}
	daily, err := uc.Daily(ctx, start, end)
	if err != nil {
		return nil, "", err
	}
	report := &dto.PeriodReportDTO{
		Title:   fmt.Sprintf("Recettes du %s au %s", summary.Start, summary.End),
		Summary: *summary,
		Daily:   daily,
	}
	b, err := uc.generator.GenerateReportPDF(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	return b, fmt.Sprintf("rapport-%s-%s.pdf", summary.Start, summary.End), nil
}

// normalizeRange trunca a fecha y rechaza end < start.
func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	start, end = entity.DateOf(start), entity.DateOf(end)
	if end.Before(start) {
		return start, end, domain.ErrInvalidInput
	}
	return start, end, nil
}

func toPeriodDTOs(rows []repository.PeriodSales) []dto.PeriodSalesDTO {
	out := make([]dto.PeriodSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PeriodSalesDTO{
			Period:      r.Period,
			TotalSales:  r.TotalAmount.Round(2),
			TotalMargin: r.TotalMargin.Round(2),
		})
	}
	return out
}
