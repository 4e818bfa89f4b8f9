package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato ISO de fecha de calendario usado en archivos y API.
const DateLayout = "2006-01-02"

// Product representa un producto del catálogo. Code es la clave primaria.
// Category se guarda por valor (copia resuelta desde el registro por ID), nunca como puntero compartido.
type Product struct {
	Code            string // 8 caracteres alfanuméricos
	Name            string
	Description     string
	ManufactureDate time.Time // fecha de calendario (UTC, 00:00)
	ExpiryDate      time.Time
	PurchasePrice   decimal.Decimal
	SalePrice       decimal.Decimal
	StockQuantity   int
	Category        Category
}

// Equal compara todos los campos; los decimales se comparan por valor numérico.
func (p Product) Equal(o Product) bool {
	return p.Code == o.Code &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.ManufactureDate.Equal(o.ManufactureDate) &&
		p.ExpiryDate.Equal(o.ExpiryDate) &&
		p.PurchasePrice.Equal(o.PurchasePrice) &&
		p.SalePrice.Equal(o.SalePrice) &&
		p.StockQuantity == o.StockQuantity &&
		p.Category == o.Category
}

// Date normaliza t a una fecha de calendario (medianoche UTC) conservando año, mes y día locales.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
