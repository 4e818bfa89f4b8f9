package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

var (
	now       = time.Date(2026, 10, 19, 18, 45, 0, 0, time.UTC)
	food      = entity.Category{ID: 1, Name: "Food", Description: "Comida", Sector: "Perecederos"}
	drinks    = entity.Category{ID: 2, Name: "Bebidas", Description: "Bebidas", Sector: "Perecederos"}
	cleaning  = entity.Category{ID: 3, Name: "Limpieza", Description: "Limpieza", Sector: "Químicos"}
	emptyList = staticSource{}
)

type staticSource []entity.Product

func (s staticSource) ListAll() []entity.Product {
	out := make([]entity.Product, len(s))
	copy(out, s)
	return out
}

func clock() time.Time { return now }

func prod(code string, expiry time.Time, stock int, purchase, sale string, c entity.Category) entity.Product {
	return entity.Product{
		Code:            code,
		Name:            "Producto " + code,
		ManufactureDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      expiry,
		PurchasePrice:   decimal.RequireFromString(purchase),
		SalePrice:       decimal.RequireFromString(sale),
		StockQuantity:   stock,
		Category:        c,
	}
}

func day(offset int) time.Time {
	return entity.Date(now).AddDate(0, 0, offset)
}

func codes(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Code)
	}
	return out
}

func TestExpiringWithin_Limites(t *testing.T) {
	src := staticSource{
		prod("VENCIDO1", day(-1), 5, "1", "2", food),
		prod("HOY00001", day(0), 5, "1", "2", food),
		prod("MANANA01", day(1), 5, "1", "2", food),
		prod("LIMITE01", day(60), 5, "1", "2", food),
		prod("FUERA001", day(61), 5, "1", "2", food),
	}
	uc := analytics.NewReportUseCase(src, analytics.WithClock(clock))

	assert.Equal(t, []string{"MANANA01", "LIMITE01"}, codes(uc.ExpiringWithin(60)),
		"se excluyen vencidos y los que vencen hoy; el límite es inclusivo")
	assert.Empty(t, uc.ExpiringWithin(0))
	assert.Empty(t, uc.ExpiringWithin(-5))
}

func TestLowStock(t *testing.T) {
	src := staticSource{
		prod("A0000001", day(10), 0, "1", "2", food),
		prod("A0000002", day(10), 9, "1", "2", food),
		prod("A0000003", day(10), 10, "1", "2", food),
	}
	uc := analytics.NewReportUseCase(src, analytics.WithClock(clock))
	assert.Equal(t, []string{"A0000001", "A0000002"}, codes(uc.LowStock(10)))
	assert.Empty(t, uc.LowStock(0))
}

func TestAverageMarginByCategory_Promedio(t *testing.T) {
	src := staticSource{
		prod("F0000001", day(10), 1, "10", "15", food),    // 50%
		prod("F0000002", day(10), 1, "10", "13", food),    // 30%
		prod("B0000001", day(10), 1, "3", "4", drinks),    // 33.33%
		prod("B0000002", day(10), 1, "3", "5", drinks),    // 66.67%
		prod("L0000001", day(10), 1, "8", "10", cleaning), // 25%
	}
	got := analytics.NewReportUseCase(src).AverageMarginByCategory()

	require.Len(t, got, 3)
	assert.InDelta(t, 40.0, got["Food"], 1e-9)
	assert.InDelta(t, 50.0, got["Bebidas"], 1e-9)
	assert.InDelta(t, 25.0, got["Limpieza"], 1e-9)
}

func TestReportes_CatalogoVacio(t *testing.T) {
	uc := analytics.NewReportUseCase(emptyList, analytics.WithClock(clock))
	assert.Empty(t, uc.ExpiringWithin(60))
	assert.Empty(t, uc.LowStock(10))
	assert.Empty(t, uc.AverageMarginByCategory(), "sin productos no hay entradas (ni NaN)")
	assert.Empty(t, uc.GroupedBySector())
}

func TestGroupedBySector_ConservaOrden(t *testing.T) {
	src := staticSource{
		prod("P0000001", day(10), 1, "1", "2", food),
		prod("Q0000001", day(10), 1, "1", "2", cleaning),
		prod("P0000002", day(10), 1, "1", "2", drinks),
		prod("P0000003", day(10), 1, "1", "2", food),
	}
	got := analytics.NewReportUseCase(src).GroupedBySector()

	require.Len(t, got, 2)
	assert.Equal(t, []string{"P0000001", "P0000002", "P0000003"}, codes(got["Perecederos"]))
	assert.Equal(t, []string{"Q0000001"}, codes(got["Químicos"]))
}

func TestBundle_OrdenadoYConsistente(t *testing.T) {
	src := staticSource{
		prod("F0000001", day(5), 2, "10", "15", food),
		prod("L0000001", day(90), 50, "8", "10", cleaning),
		prod("B0000001", day(30), 20, "3", "4", drinks),
	}
	b := analytics.NewReportUseCase(src, analytics.WithClock(clock)).
		Bundle(analytics.DefaultExpiryDays, analytics.DefaultLowStockThreshold)

	assert.Equal(t, now, b.GeneratedAt)
	assert.Equal(t, []string{"F0000001", "B0000001"}, codes(b.Expiring))
	assert.Equal(t, []string{"F0000001"}, codes(b.LowStock))

	require.Len(t, b.Margins, 3)
	assert.Equal(t, "Bebidas", b.Margins[0].Category)
	assert.Equal(t, "Food", b.Margins[1].Category)
	assert.Equal(t, "Limpieza", b.Margins[2].Category)
	assert.Equal(t, 1, b.Margins[1].Products)

	require.Len(t, b.Sectors, 2)
	assert.Equal(t, "Perecederos", b.Sectors[0].Sector)
	assert.Equal(t, "Químicos", b.Sectors[1].Sector)
}

// Los reportes no deben mutar la fuente.
func TestReportes_NoMutanSnapshot(t *testing.T) {
	src := staticSource{prod("F0000001", day(5), 2, "10", "15", food)}
	uc := analytics.NewReportUseCase(src, analytics.WithClock(clock))
	_ = uc.Bundle(60, 10)
	assert.Equal(t, "F0000001", src[0].Code)
	assert.Equal(t, 2, src[0].StockQuantity)
}

func TestExpiringWithin_ReferenciaEnZonaLocal(t *testing.T) {
	// 2026-10-19 22:00 en Bogotá es 2026-10-20 03:00 UTC; cuenta el día local.
	bogota := time.FixedZone("COT", -5*3600)
	local := time.Date(2026, 10, 19, 22, 0, 0, 0, bogota)
	src := staticSource{
		prod("HOYLOCAL", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), 1, "1", "2", food),
		prod("MANANA01", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), 1, "1", "2", food),
	}
	got := analytics.ExpiringWithin(src.ListAll(), local, 1)
	assert.Equal(t, []string{"MANANA01"}, codes(got))
}
