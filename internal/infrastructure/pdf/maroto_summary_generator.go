// Package pdf genera el reporte de gastos (resumen de facturas) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de gastos + período │ Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / Total / N° facturas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS: Categoría | Total | %                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha | Proveedor | Categoría | Subtotal | Total  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/ports"
)

var _ ports.SummaryPDFGenerator = (*MarotoSummaryGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSummaryGenerator implementa ports.SummaryPDFGenerator usando Maroto v2.
type MarotoSummaryGenerator struct {
	appName string
	money   *message.Printer
}

// NewMarotoSummaryGenerator construye el generador. Los montos se formatean en español (1.234,50).
func NewMarotoSummaryGenerator(appName string) *MarotoSummaryGenerator {
	return &MarotoSummaryGenerator{appName: appName, money: message.NewPrinter(language.Spanish)}
}

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoSummaryGenerator) GenerateSummaryPDF(
	_ context.Context,
	summary dto.InvoiceSummaryDTO,
	invoices []dto.InvoiceResponse,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de gastos - "+summary.PeriodLabel, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("GASTOS POR CATEGORÍA"))
	m.AddRows(tableHeaderRow(
		header{"Categoría", 6, align.Left},
		header{"Total", 4, align.Right},
		header{"%", 2, align.Right},
	))
	m.AddRows(g.categoryRows(summary.Categories)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("DETALLE DE FACTURAS"))
	m.AddRows(tableHeaderRow(
		header{"Fecha", 2, align.Left},
		header{"Proveedor", 4, align.Left},
		header{"Categoría", 2, align.Left},
		header{"Subtotal", 2, align.Right},
		header{"Total", 2, align.Right},
	))
	m.AddRows(g.invoiceRows(invoices)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoSummaryGenerator) headerRow(summary dto.InvoiceSummaryDTO, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de gastos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(summary.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoSummaryGenerator) totalsRow(summary dto.InvoiceSummaryDTO) core.Row {
	cell := func(label, value string, highlight bool) core.Col {
		c := colorGray
		if highlight {
			c = colorPrimary
		}
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 8}),
		)
	}
	return row.New(18).Add(
		cell("Subtotal", g.formatMoney(summary.TotalAmount), false),
		cell("Impuestos", g.formatMoney(summary.TotalTax), false),
		cell("Total", g.formatMoney(summary.GrandTotal), true),
		cell("Facturas", fmt.Sprintf("%d", summary.InvoiceCount), false),
	)
}

func (g *MarotoSummaryGenerator) categoryRows(categories []dto.CategoryTotalDTO) []core.Row {
	if len(categories) == 0 {
		return []core.Row{emptyRow("Sin gastos en el período")}
	}
	rows := make([]core.Row, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(c.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(g.formatMoney(c.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(c.Percent.StringFixed(1)+"%", props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoSummaryGenerator) invoiceRows(invoices []dto.InvoiceResponse) []core.Row {
	if len(invoices) == 0 {
		return []core.Row{emptyRow("No hay facturas registradas en el período")}
	}
	rows := make([]core.Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(inv.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(inv.Vendor, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(inv.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.formatMoney(inv.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.formatMoney(inv.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

type header struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow cabecera de tabla con fondo primario.
func tableHeaderRow(headers ...header) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formato en español con dos decimales: 1234567.5 → "$1.234.567,50".
func (g *MarotoSummaryGenerator) formatMoney(d decimal.Decimal) string {
	return g.money.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}
