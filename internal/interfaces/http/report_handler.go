package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/analytics"
)

// ReportHandler reportes del período y dashboard.
type ReportHandler struct {
	uc                *analytics.ReportUseCase
	lowStockThreshold int
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, lowStockThreshold int) *ReportHandler {
	return &ReportHandler{uc: uc, lowStockThreshold: lowStockThreshold}
}

// Summary godoc
// @Summary      Ventas, margen, gastos y neto del período
// @Description  Sin parámetros: del primer día del mes en curso a hoy.
// @Tags         reports
// @Produce      json
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.Summary(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Serie diaria de ventas y margen
// @Tags         reports
// @Produce      json
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.PeriodSalesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.Daily(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Serie mensual de ventas y margen
// @Tags         reports
// @Produce      json
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.PeriodSalesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.Monthly(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte PDF del período
// @Tags         reports
// @Produce      application/pdf
// @Param        start  query  string  false  "YYYY-MM-DD"
// @Param        end    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return validation(c, "start y end deben tener formato YYYY-MM-DD")
	}
	b, filename, err := h.uc.ReportPDF(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, b, filename)
}

// Dashboard godoc
// @Summary      KPIs del día y stock bajo
// @Tags         dashboard
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock bajo"  default(5)
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), c.QueryInt("threshold", h.lowStockThreshold))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
