package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/application/analytics"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/pdf"
)

func bundle() *analytics.ReportBundle {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	p := entity.Product{
		Code:            "LECHE001",
		Name:            "Leche entera",
		ManufactureDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
		PurchasePrice:   decimal.RequireFromString("1.20"),
		SalePrice:       decimal.RequireFromString("1.85"),
		StockQuantity:   4,
		Category:        entity.Category{ID: 2, Name: "Bebidas", Description: "Bebidas en general", Sector: "Perecederos"},
	}
	src := staticSource{p}
	return analytics.NewReportUseCase(src, analytics.WithClock(func() time.Time { return now })).Bundle(60, 10)
}

type staticSource []entity.Product

func (s staticSource) ListAll() []entity.Product { return append([]entity.Product(nil), s...) }

func TestGenerateReportPDF(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("")
	out, err := g.GenerateReportPDF(context.Background(), bundle())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateReportPDF_BundleVacio(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("Catálogo")
	out, err := g.GenerateReportPDF(context.Background(), &analytics.ReportBundle{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReportPDF_Nil(t *testing.T) {
	_, err := pdf.NewMarotoReportGenerator("").GenerateReportPDF(context.Background(), nil)
	assert.Error(t, err)
}
