// Package xlsx exporta los reportes del catálogo a una planilla Excel (una hoja por reporte).
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/inventory"
)

// Nombres de las hojas, en el orden en que se crean.
const (
	SheetExpiring = "Vencimientos"
	SheetLowStock = "StockBajo"
	SheetMargins  = "Margenes"
	SheetSectors  = "Sectores"
)

var productColumns = []interface{}{
	"Código", "Nombre", "Categoría", "Sector", "Fabricación", "Vencimiento",
	"Precio compra", "Precio venta", "Margen %", "Stock",
}

// ExcelizeReportExporter genera el XLSX de reportes con excelize.
type ExcelizeReportExporter struct{}

// NewExcelizeReportExporter construye el exportador.
func NewExcelizeReportExporter() *ExcelizeReportExporter {
	return &ExcelizeReportExporter{}
}

// ExportReportXLSX devuelve los bytes del libro con las cuatro hojas.
func (e *ExcelizeReportExporter) ExportReportXLSX(_ context.Context, b *analytics.ReportBundle) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("xlsx: bundle nulo")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetExpiring); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetLowStock, SheetMargins, SheetSectors} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := &sheetWriter{f: f, bold: bold}
	w.products(SheetExpiring, b.Expiring)
	w.products(SheetLowStock, b.LowStock)

	w.header(SheetMargins, 1, []interface{}{"Categoría", "Productos", "Margen promedio %"})
	for i, m := range b.Margins {
		w.row(SheetMargins, i+2, []interface{}{m.Category, m.Products, m.AvgMarginPct})
	}

	w.header(SheetSectors, 1, append([]interface{}{}, productColumns...))
	r := 2
	for _, s := range b.Sectors {
		for _, p := range s.Products {
			w.row(SheetSectors, r, productRow(p))
			r++
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter acumula el primer error para no chequear cada celda.
type sheetWriter struct {
	f    *excelize.File
	bold int
	err  error
}

func (w *sheetWriter) products(sheet string, products []entity.Product) {
	w.header(sheet, 1, productColumns)
	for i, p := range products {
		w.row(sheet, i+2, productRow(p))
	}
}

func (w *sheetWriter) header(sheet string, r int, values []interface{}) {
	w.row(sheet, r, values)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, r)
	last, _ := excelize.CoordinatesToCellName(len(values), r)
	if err := w.f.SetCellStyle(sheet, first, last, w.bold); err != nil {
		w.err = fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
}

func (w *sheetWriter) row(sheet string, r int, values []interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err == nil {
		err = w.f.SetSheetRow(sheet, cell, &values)
	}
	if err != nil {
		w.err = fmt.Errorf("xlsx: fila %d de %s: %w", r, sheet, err)
	}
}

func productRow(p entity.Product) []interface{} {
	return []interface{}{
		p.Code,
		p.Name,
		p.Category.Name,
		p.Category.Sector,
		p.ManufactureDate.Format(entity.DateLayout),
		p.ExpiryDate.Format(entity.DateLayout),
		p.PurchasePrice.InexactFloat64(),
		p.SalePrice.InexactFloat64(),
		inventory.MarginPct(p.PurchasePrice, p.SalePrice).InexactFloat64(),
		p.StockQuantity,
	}
}
