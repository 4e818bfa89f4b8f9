// Package pdf genera la versión imprimible de los reportes del catálogo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENCIMIENTOS: Código | Nombre | Categoría | Vence | Stock   │
//	│  STOCK BAJO:   Código | Nombre | Categoría | Vence | Stock   │
//	│  MÁRGENES:     Categoría | Productos | Margen promedio       │
//	│  SECTORES:     un bloque por sector con sus productos        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el PDF de reportes usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title aparece en la cabecera y metadatos.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Catálogo de productos"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateReportPDF genera el PDF del bundle y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, b *analytics.ReportBundle) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("pdf: bundle nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" - Reportes", true).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(language.Spanish)

	m.AddRows(g.headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(fmt.Sprintf("PRODUCTOS QUE VENCEN EN LOS PRÓXIMOS %d DÍAS", b.ExpiryDays)))
	m.AddRows(productRows(p, b.Expiring)...)

	m.AddRows(sectionRow(fmt.Sprintf("PRODUCTOS CON STOCK MENOR A %d", b.Threshold)))
	m.AddRows(productRows(p, b.LowStock)...)

	m.AddRows(sectionRow("MARGEN PROMEDIO POR CATEGORÍA"))
	m.AddRows(marginRows(p, b.Margins)...)

	m.AddRows(sectionRow("PRODUCTOS POR SECTOR"))
	for _, s := range b.Sectors {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s (%d)", s.Sector, len(s.Products)), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray,
			}),
		)))
		m.AddRows(productRows(p, s.Products)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(b *analytics.ReportBundle) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Reportes del catálogo", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+b.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4}),
	))
}

// productRows: cabecera + una fila por producto, o una fila "sin datos".
func productRows(p *message.Printer, products []entity.Product) []core.Row {
	if len(products) == 0 {
		return []core.Row{emptyRow()}
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1}))
	}
	rows := []core.Row{row.New(6).Add(
		h("Código", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Vence", 2, align.Center),
		h("Stock", 1, align.Right),
		h("Venta", 1, align.Right),
	)}
	for _, pr := range products {
		c := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1}))
		}
		rows = append(rows, row.New(5).Add(
			c(pr.Code, 2, align.Left),
			c(pr.Name, 4, align.Left),
			c(pr.Category.Name, 2, align.Left),
			c(pr.ExpiryDate.Format("02/01/2006"), 2, align.Center),
			c(p.Sprintf("%d", pr.StockQuantity), 1, align.Right),
			c(p.Sprintf("%.2f", pr.SalePrice.InexactFloat64()), 1, align.Right),
		))
	}
	return rows
}

func marginRows(p *message.Printer, margins []analytics.CategoryMargin) []core.Row {
	if len(margins) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(margins))
	for _, m := range margins {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(m.Category, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(p.Sprintf("%d productos", m.Products), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(3).Add(text.New(p.Sprintf("%.2f %%", m.AvgMarginPct), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New("Sin datos", props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}
