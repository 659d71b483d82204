// Package pdf genera los documentos imprimibles del bar con Maroto v2: el recibo de un
// cobro y el reporte de recetas de un período.
//
// Layout del recibo (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del bar        │  N° Recibo + Fecha + QR    │
//	│  CLIENTE                                                    │
//	│  TABLA: Cant | Artículo | Categoría | Unidad | Importe      │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/barstock-api/internal/application/analytics"
	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/sales"
	"github.com/jhoicas/barstock-api/pkg/money"
)

var _ sales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)
var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 110, Green: 30, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de recibo y de reporte.
type MarotoPDFGenerator struct {
	barName string
	money   *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. barName va en la cabecera de cada documento.
func NewMarotoPDFGenerator(barName string, formatter *money.Formatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{barName: barName, money: formatter}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.barName, true).
		Build()
	return maroto.New(cfg)
}

// GenerateReceiptPDF genera el PDF de un recibo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(receipt *dto.ReceiptResponse) ([]byte, error) {
	m := g.newDocument("Reçu " + receipt.ID)

	m.AddRows(g.headerRow("REÇU", receipt.ID, receipt.CreatedAt.Format("02/01/2006 15:04"), receipt.ID))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Client: "+nonEmpty(receipt.CustomerName, "-"), props.Text{Size: 10, Top: 3}),
	)))

	m.AddRows(tableHeaderRow([]string{"Qté", "Article", "Catégorie", "Unité", "Montant"}, []int{1, 5, 2, 1, 3}))
	for _, l := range receipt.Lines {
		m.AddRows(tableRow([]string{
			fmt.Sprintf("%d", l.Quantity), l.Article, l.Category, l.Unit, g.money.Format(l.Amount),
		}, []int{1, 5, 2, 1, 3}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow("TOTAL:", g.money.Format(receipt.TotalAmount)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateReportPDF genera el reporte del período: resumen y detalle diario.
func (g *MarotoPDFGenerator) GenerateReportPDF(report *dto.PeriodReportDTO) ([]byte, error) {
	m := g.newDocument(report.Title)
	s := report.Summary

	m.AddRows(g.headerRow("RAPPORT", report.Title, s.Start+" - "+s.End, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]string{"Ventes", "Marge", "Charges", "Net"}, []int{3, 3, 3, 3}))
	m.AddRows(tableRow([]string{
		g.money.Format(s.TotalSales), g.money.Format(s.TotalMargin),
		g.money.Format(s.TotalCharges), g.money.Format(s.Net),
	}, []int{3, 3, 3, 3}))
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow([]string{"Jour", "Ventes", "Marge"}, []int{4, 4, 4}))
	if len(report.Daily) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Aucune vente sur la période.", props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		)))
	}
	for _, d := range report.Daily {
		m.AddRows(tableRow([]string{d.Period, g.money.Format(d.TotalSales), g.money.Format(d.TotalMargin)}, []int{4, 4, 4}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del bar (izq), tipo de documento, referencia y fecha (der) y QR opcional.
func (g *MarotoPDFGenerator) headerRow(kind, ref, date, qr string) core.Row {
	right := col.New(5).Add(
		text.New(kind, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
		text.New(ref, props.Text{Size: 7, Align: align.Right, Top: 7}),
		text.New(date, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
	)
	left := col.New(5).Add(
		text.New(g.barName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
	)
	qrCol := col.New(2)
	if qr != "" {
		qrCol = col.New(2).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true}))
	}
	return row.New(20).Add(left, qrCol, right)
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1, Align: cellAlign(i, len(labels)),
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Right: 1, Align: cellAlign(i, len(values)),
		})))
	}
	return row.New(7).Add(cols...)
}

// cellAlign la última columna (importes) va a la derecha.
func cellAlign(i, n int) align.Type {
	if i == n-1 {
		return align.Right
	}
	return align.Left
}

func totalRow(label, value string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2})),
		col.New(3).Add(text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
