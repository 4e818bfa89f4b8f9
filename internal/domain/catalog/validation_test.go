package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

var (
	testToday = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	alimentos = entity.Category{ID: 1, Name: "Alimentos", Description: "Productos alimenticios", Sector: "Perecederos"}
)

type fakeResolver map[int]entity.Category

func (f fakeResolver) FindByID(id int) (entity.Category, error) {
	c, ok := f[id]
	if !ok {
		return entity.Category{}, domain.ErrNotFound
	}
	return c, nil
}

func resolver() fakeResolver { return fakeResolver{1: alimentos} }

func validProduct() entity.Product {
	return entity.Product{
		Code:            "ABC12345",
		Name:            "Arroz integral",
		Description:     "Bolsa 1kg",
		ManufactureDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC),
		PurchasePrice:   decimal.RequireFromString("2.50"),
		SalePrice:       decimal.RequireFromString("3.75"),
		StockQuantity:   40,
		Category:        alimentos,
	}
}

// requireRule verifica que err sea un ValidationError de la regla indicada.
func validate(p entity.Product) error {
	_, err := catalog.ValidateProduct(p, testToday, resolver())
	return err
}

func requireRule(t *testing.T, err error, rule domain.Rule) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, obtenido %T", err)
	assert.Equal(t, rule, ve.Rule)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	return ve
}

func TestValidateProduct_Valido(t *testing.T) {
	assert.NoError(t, validate(validProduct()))
}

func TestValidateProduct_CodigoSieteCaracteres(t *testing.T) {
	p := validProduct()
	p.Code = "ABC1234"
	ve := requireRule(t, validate(p), domain.RuleCode)
	assert.Equal(t, catalog.ReasonCode, ve.Reason)
}

func TestValidateProduct_CodigoNoAlfanumerico(t *testing.T) {
	p := validProduct()
	p.Code = "ABC-1234"
	requireRule(t, validate(p), domain.RuleCode)
}

func TestValidateProduct_NombreCortoTrasTrim(t *testing.T) {
	p := validProduct()
	p.Name = "  ab  "
	requireRule(t, validate(p), domain.RuleName)
}

func TestValidateProduct_FabricacionFutura(t *testing.T) {
	p := validProduct()
	p.ManufactureDate = testToday.AddDate(0, 0, 1)
	p.ExpiryDate = testToday.AddDate(1, 0, 0)
	requireRule(t, validate(p), domain.RuleManufactureDate)
}

func TestValidateProduct_FabricacionHoyEsValida(t *testing.T) {
	p := validProduct()
	p.ManufactureDate = entity.Date(testToday)
	assert.NoError(t, validate(p))
}

func TestValidateProduct_FechasNulas(t *testing.T) {
	p := validProduct()
	p.ManufactureDate = time.Time{}
	requireRule(t, validate(p), domain.RuleManufactureDate)

	p = validProduct()
	p.ExpiryDate = time.Time{}
	requireRule(t, validate(p), domain.RuleExpiryDate)
}

func TestValidateProduct_VencimientoAntesDeFabricacion(t *testing.T) {
	p := validProduct()
	p.ExpiryDate = p.ManufactureDate.AddDate(0, 0, -1)
	requireRule(t, validate(p), domain.RuleExpiryDate)
}

func TestValidateProduct_PrecioCompraCero(t *testing.T) {
	p := validProduct()
	p.PurchasePrice = decimal.Zero
	requireRule(t, validate(p), domain.RulePurchasePrice)
}

func TestValidateProduct_PrecioVentaNoMayorQueCompra(t *testing.T) {
	p := validProduct()
	p.SalePrice = p.PurchasePrice
	ve := requireRule(t, validate(p), domain.RuleSalePrice)
	assert.Equal(t, catalog.ReasonSaleBelowCost, ve.Reason)

	p.SalePrice = decimal.RequireFromString("-1")
	ve = requireRule(t, validate(p), domain.RuleSalePrice)
	assert.Equal(t, catalog.ReasonSalePrice, ve.Reason)
}

func TestValidateProduct_StockNegativo(t *testing.T) {
	p := validProduct()
	p.StockQuantity = -1
	ve := requireRule(t, validate(p), domain.RuleStock)
	assert.Equal(t, catalog.ReasonStock, ve.Reason)
}

func TestValidateProduct_CategoriaNoRegistrada(t *testing.T) {
	p := validProduct()
	p.Category = entity.Category{ID: 99, Name: "X", Description: "X", Sector: "X"}
	requireRule(t, validate(p), domain.RuleCategory)

	p.Category = entity.Category{}
	requireRule(t, validate(p), domain.RuleCategory)
}

func TestValidateProduct_SeparadorEnTexto(t *testing.T) {
	p := validProduct()
	p.Description = "uno;dos"
	requireRule(t, validate(p), domain.RuleDelimiter)
}

// El orden importa: con varias violaciones se reporta la primera.
func TestValidateProduct_FailFastOrden(t *testing.T) {
	p := validProduct()
	p.Code = "X"
	p.Name = ""
	p.StockQuantity = -5
	requireRule(t, validate(p), domain.RuleCode)

	p.Code = "ABCDEFGH"
	requireRule(t, validate(p), domain.RuleName)
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, catalog.ValidateCategory(alimentos))
	assert.Error(t, catalog.ValidateCategory(entity.Category{ID: 0, Name: "a", Description: "b", Sector: "c"}))
	assert.Error(t, catalog.ValidateCategory(entity.Category{ID: 2, Name: "a", Description: "", Sector: "c"}))
	assert.Error(t, catalog.ValidateCategory(entity.Category{ID: 2, Name: "a;b", Description: "b", Sector: "c"}))
}

func TestValidateProduct_DevuelveCategoriaDelRegistro(t *testing.T) {
	p := validProduct()
	p.Category = entity.Category{ID: 1} // solo el ID
	got, err := catalog.ValidateProduct(p, testToday, resolver())
	require.NoError(t, err)
	assert.Equal(t, alimentos, got)
}
