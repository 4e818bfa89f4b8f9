package flatfile_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
	"github.com/jhoicas/catalogo-productos/internal/infrastructure/flatfile"
)

var (
	alimentos = entity.Category{ID: 1, Name: "Alimentos", Description: "Productos alimenticios", Sector: "Perecederos"}
	bebidas   = entity.Category{ID: 2, Name: "Bebidas", Description: "Bebidas en general", Sector: "Perecederos"}
)

type fakeResolver map[int]entity.Category

func (f fakeResolver) FindByID(id int) (entity.Category, error) {
	c, ok := f[id]
	if !ok {
		return entity.Category{}, domain.ErrNotFound
	}
	return c, nil
}

func sampleProduct() entity.Product {
	return entity.Product{
		Code:            "LECHE001",
		Name:            "Leche entera",
		Description:     "",
		ManufactureDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
		PurchasePrice:   decimal.RequireFromString("1.20"),
		SalePrice:       decimal.RequireFromString("1.850"),
		StockQuantity:   0,
		Category:        bebidas,
	}
}

func TestEncodeProduct_OrdenDeCampos(t *testing.T) {
	line, err := flatfile.EncodeProduct(sampleProduct())
	require.NoError(t, err)
	assert.Equal(t, "LECHE001;Leche entera;;2026-10-01;2026-11-15;1.2;1.85;0;2;Bebidas;Bebidas en general;Perecederos", line)
}

func TestProductCodec_RoundTrip(t *testing.T) {
	products := []entity.Product{sampleProduct()}
	p := sampleProduct()
	p.Code = "abc12XYZ"
	p.Description = "Descripción con acentos y espacios  "
	p.PurchasePrice = decimal.RequireFromString("1234567.8900")
	p.SalePrice = decimal.RequireFromString("2000000")
	p.StockQuantity = 987
	p.Category = alimentos
	products = append(products, p)

	for _, want := range products {
		line, err := flatfile.EncodeProduct(want)
		require.NoError(t, err)
		got, err := flatfile.DecodeProduct(line, fakeResolver{1: alimentos, 2: bebidas})
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "round-trip distinto:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestDecodeProduct_ResuelveCategoriaDelRegistro(t *testing.T) {
	line := "LECHE001;Leche;;2026-10-01;2026-11-15;1.2;1.85;3;2;Nombre viejo;Desc vieja;Sector viejo"
	got, err := flatfile.DecodeProduct(line, fakeResolver{2: bebidas})
	require.NoError(t, err)
	assert.Equal(t, bebidas, got.Category)
}

func TestDecodeProduct_CategoriaDesconocidaConservaEmbebida(t *testing.T) {
	line := "LECHE001;Leche;;2026-10-01;2026-11-15;1.2;1.85;3;7;Lácteos;Derivados;Refrigerados"
	got, err := flatfile.DecodeProduct(line, fakeResolver{})
	require.NoError(t, err)
	assert.Equal(t, entity.Category{ID: 7, Name: "Lácteos", Description: "Derivados", Sector: "Refrigerados"}, got.Category)
}

func TestDecodeProduct_LineasMalformadas(t *testing.T) {
	cases := map[string]string{
		"pocos campos":          "LECHE001;Leche;;2026-10-01",
		"precio no numérico":    "LECHE001;Leche;;2026-10-01;2026-11-15;abc;1.85;3;2;Bebidas;B;P",
		"fecha inválida":        "LECHE001;Leche;;01/10/2026;2026-11-15;1.2;1.85;3;2;Bebidas;B;P",
		"stock no numérico":     "LECHE001;Leche;;2026-10-01;2026-11-15;1.2;1.85;x;2;Bebidas;B;P",
		"código inválido":       "LECHE;Leche;;2026-10-01;2026-11-15;1.2;1.85;3;2;Bebidas;B;P",
		"categoría sin nombre":  "LECHE001;Leche;;2026-10-01;2026-11-15;1.2;1.85;3;2;;B;P",
		"id categoría inválido": "LECHE001;Leche;;2026-10-01;2026-11-15;1.2;1.85;3;dos;Bebidas;B;P",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := flatfile.DecodeProduct(line, nil)
			require.Error(t, err)
			var de *domain.DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, line, de.Content, "el error debe llevar la línea original")
			assert.NotEmpty(t, de.Reason)
		})
	}
}

func TestEncodeProduct_RechazaSeparador(t *testing.T) {
	p := sampleProduct()
	p.Name = "Leche;entera"
	_, err := flatfile.EncodeProduct(p)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryCodec_RoundTrip(t *testing.T) {
	line, err := flatfile.EncodeCategory(alimentos)
	require.NoError(t, err)
	assert.Equal(t, "1;Alimentos;Productos alimenticios;Perecederos", line)

	got, err := flatfile.DecodeCategory(line)
	require.NoError(t, err)
	assert.Equal(t, alimentos, got)
}

func TestDecodeCategory_Malformada(t *testing.T) {
	for _, line := range []string{"1;Alimentos;Desc", "x;Alimentos;Desc;Sector", "0;Alimentos;Desc;Sector", "3;;Desc;Sector"} {
		_, err := flatfile.DecodeCategory(line)
		var de *domain.DecodeError
		assert.True(t, errors.As(err, &de), "línea %q debe fallar con DecodeError", line)
	}
}
