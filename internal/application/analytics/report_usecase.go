// Package analytics contiene los reportes de negocio del catálogo: vencimientos, stock bajo,
// margen promedio por categoría y agrupación por sector.
//
// Todos los reportes son funciones puras sobre un snapshot del almacén; nunca lo mutan.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/domain/inventory"
)

// Valores por defecto de los reportes.
const (
	DefaultExpiryDays        = 60
	DefaultLowStockThreshold = 10
)

// ProductSource fuente del snapshot (implementado por catalog.ProductStore).
type ProductSource interface {
	ListAll() []entity.Product
}

// CategoryMargin margen promedio de una categoría.
type CategoryMargin struct {
	Category     string
	AvgMarginPct float64
	Products     int
}

// SectorGroup productos de un sector, en el orden del catálogo.
type SectorGroup struct {
	Sector   string
	Products []entity.Product
}

// ReportBundle todos los reportes calculados sobre un mismo snapshot.
type ReportBundle struct {
	GeneratedAt time.Time
	ExpiryDays  int
	Threshold   int
	Expiring    []entity.Product
	LowStock    []entity.Product
	Margins     []CategoryMargin // ordenado por nombre de categoría
	Sectors     []SectorGroup    // ordenado por nombre de sector
}

// ReportUseCase expone los reportes sobre el snapshot actual del almacén.
type ReportUseCase struct {
	source ProductSource
	now    func() time.Time
}

// ReportOption configura el ReportUseCase.
type ReportOption func(*ReportUseCase)

// WithClock reemplaza el reloj usado para "hoy" (tests).
func WithClock(now func() time.Time) ReportOption {
	return func(uc *ReportUseCase) { uc.now = now }
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source ProductSource, opts ...ReportOption) *ReportUseCase {
	uc := &ReportUseCase{source: source, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ExpiringWithin productos que vencen después de hoy y hasta hoy+days inclusive.
func (uc *ReportUseCase) ExpiringWithin(days int) []entity.Product {
	return ExpiringWithin(uc.source.ListAll(), uc.now(), days)
}

// LowStock productos con stock menor que threshold.
func (uc *ReportUseCase) LowStock(threshold int) []entity.Product {
	return LowStock(uc.source.ListAll(), threshold)
}

// AverageMarginByCategory margen porcentual promedio por nombre de categoría.
func (uc *ReportUseCase) AverageMarginByCategory() map[string]float64 {
	return AverageMarginByCategory(uc.source.ListAll())
}

// GroupedBySector productos agrupados por sector de su categoría.
func (uc *ReportUseCase) GroupedBySector() map[string][]entity.Product {
	return GroupedBySector(uc.source.ListAll())
}

// Bundle calcula todos los reportes sobre un único snapshot.
func (uc *ReportUseCase) Bundle(days, threshold int) *ReportBundle {
	products := uc.source.ListAll()
	now := uc.now()

	margins := averageMargins(products)
	marginRows := make([]CategoryMargin, 0, len(margins))
	for _, name := range sortedKeys(margins) {
		marginRows = append(marginRows, CategoryMargin{
			Category:     name,
			AvgMarginPct: margins[name].avg().InexactFloat64(),
			Products:     margins[name].n,
		})
	}

	sectors := GroupedBySector(products)
	sectorRows := make([]SectorGroup, 0, len(sectors))
	for _, name := range sortedKeys(sectors) {
		sectorRows = append(sectorRows, SectorGroup{Sector: name, Products: sectors[name]})
	}

	return &ReportBundle{
		GeneratedAt: now,
		ExpiryDays:  days,
		Threshold:   threshold,
		Expiring:    ExpiringWithin(products, now, days),
		LowStock:    LowStock(products, threshold),
		Margins:     marginRows,
		Sectors:     sectorRows,
	}
}

// ── Funciones puras ───────────────────────────────────────────────────────────

// ExpiringWithin filtra today < vencimiento <= today+days. Los que vencen hoy quedan fuera.
func ExpiringWithin(products []entity.Product, now time.Time, days int) []entity.Product {
	// Día calendario de now en su propia zona, llevado a medianoche UTC como las fechas guardadas.
	today := entity.Date(now)
	limit := today.AddDate(0, 0, days)
	out := []entity.Product{}
	for _, p := range products {
		if p.ExpiryDate.IsZero() {
			continue
		}
		exp := entity.Date(p.ExpiryDate)
		if exp.After(today) && !exp.After(limit) {
			out = append(out, p)
		}
	}
	return out
}

// LowStock filtra stock < threshold.
func LowStock(products []entity.Product, threshold int) []entity.Product {
	out := []entity.Product{}
	for _, p := range products {
		if p.StockQuantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// AverageMarginByCategory promedio del margen porcentual (redondeado a 2 decimales por producto).
// Solo aparecen categorías con productos: nunca hay divisiones por cero ni NaN.
func AverageMarginByCategory(products []entity.Product) map[string]float64 {
	acc := averageMargins(products)
	out := make(map[string]float64, len(acc))
	for name, a := range acc {
		out[name] = a.avg().InexactFloat64()
	}
	return out
}

// GroupedBySector agrupa por sector conservando el orden de la lista original.
func GroupedBySector(products []entity.Product) map[string][]entity.Product {
	out := make(map[string][]entity.Product)
	for _, p := range products {
		out[p.Category.Sector] = append(out[p.Category.Sector], p)
	}
	return out
}

type marginAcc struct {
	sum decimal.Decimal
	n   int
}

func (a marginAcc) avg() decimal.Decimal {
	return a.sum.Div(decimal.NewFromInt(int64(a.n)))
}

func averageMargins(products []entity.Product) map[string]marginAcc {
	acc := make(map[string]marginAcc)
	for _, p := range products {
		a := acc[p.Category.Name]
		a.sum = a.sum.Add(inventory.MarginPct(p.PurchasePrice, p.SalePrice))
		a.n++
		acc[p.Category.Name] = a
	}
	return acc
}

// sortedKeys ordena alfabéticamente según las reglas del español (acentos, ñ).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	collate.New(language.Spanish).SortStrings(keys)
	return keys
}
