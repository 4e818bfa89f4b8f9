package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-productos/internal/domain/inventory"
)

func TestMarginPct_Cincuenta(t *testing.T) {
	got := inventory.MarginPct(decimal.NewFromInt(10), decimal.NewFromInt(15))
	assert.True(t, got.Equal(decimal.NewFromInt(50)), "esperado 50, obtenido %s", got)
}

func TestMarginPct_RedondeoDosDecimales(t *testing.T) {
	// 1/3 * 100 = 33.333... -> 33.33
	got := inventory.MarginPct(decimal.NewFromInt(3), decimal.NewFromInt(4))
	assert.Equal(t, "33.33", got.StringFixed(2))

	// 2/3 * 100 = 66.666... -> 66.67
	got = inventory.MarginPct(decimal.NewFromInt(3), decimal.NewFromInt(5))
	assert.Equal(t, "66.67", got.StringFixed(2))
}

func TestMarginPct_CompraCeroNoDivide(t *testing.T) {
	assert.True(t, inventory.MarginPct(decimal.Zero, decimal.NewFromInt(5)).IsZero())
	assert.True(t, inventory.MarginPct(decimal.NewFromInt(-1), decimal.NewFromInt(5)).IsZero())
}
