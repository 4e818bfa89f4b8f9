package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MarginPct implementa el margen porcentual de un producto (servicio de dominio).
// Margen = (PrecioVenta - PrecioCompra) / PrecioCompra * 100, redondeado a 2 decimales.
// Con PrecioCompra <= 0 devuelve 0 (nunca divide por cero).
func MarginPct(purchasePrice, salePrice decimal.Decimal) decimal.Decimal {
	if !purchasePrice.IsPositive() {
		return decimal.Zero
	}
	return salePrice.Sub(purchasePrice).Div(purchasePrice).Mul(hundred).Round(2)
}
