package analytics

import "github.com/jhoicas/barstock-api/internal/application/dto"

// ReportPDFGenerator renderiza el reporte de un período.
type ReportPDFGenerator interface {
	GenerateReportPDF(report *dto.PeriodReportDTO) ([]byte, error)
}
