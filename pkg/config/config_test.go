package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "productos.csv", cfg.Catalog.ProductsFile)
	assert.Equal(t, "categorias.csv", cfg.Catalog.CategoriesFile)
	assert.Equal(t, 60, cfg.Report.ExpiryDays)
	assert.Equal(t, 10, cfg.Report.LowStockThreshold)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.JWT.AuthEnabled())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CATALOG_PRODUCTS_FILE", "/tmp/p.csv")
	t.Setenv("REPORT_EXPIRY_DAYS", "30")
	t.Setenv("REPORT_LOW_STOCK_THRESHOLD", "no-numero")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/p.csv", cfg.Catalog.ProductsFile)
	assert.Equal(t, 30, cfg.Report.ExpiryDays)
	assert.Equal(t, 10, cfg.Report.LowStockThreshold, "un valor no numérico vuelve al defecto")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.JWT.AuthEnabled())
}

func TestLoad_PuertoInvalido(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")
	_, err := config.Load()
	assert.Error(t, err)
}
