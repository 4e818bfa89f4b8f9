// Package flatfile implementa la persistencia del catálogo en archivos de texto delimitados por ';'.
//
// Formato de producto (una línea por registro, cabecera opcional):
//
//	code;name;description;manufactureDate;expiryDate;purchasePrice;salePrice;stockQuantity;categoryId;categoryName;categoryDescription;categorySector
//
// Formato de categoría (sin cabecera):
//
//	id;name;description;sector
//
// El separador no se escapa dentro de los valores; los textos con ';' se rechazan al codificar.
package flatfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// ProductHeader cabecera del archivo de productos.
const ProductHeader = "code;name;description;manufactureDate;expiryDate;purchasePrice;salePrice;stockQuantity;categoryId;categoryName;categoryDescription;categorySector"

const (
	productFields  = 12
	categoryFields = 4
)

// EncodeProduct convierte un producto en una línea (sin salto de línea final).
func EncodeProduct(p entity.Product) (string, error) {
	for _, s := range []string{p.Code, p.Name, p.Description, p.Category.Name, p.Category.Description, p.Category.Sector} {
		if !catalog.SafeText(s) {
			return "", fmt.Errorf("codificar producto %s: %w", p.Code, domain.NewValidationError(domain.RuleDelimiter, catalog.ReasonDelimiter))
		}
	}
	return strings.Join([]string{
		p.Code,
		p.Name,
		p.Description,
		p.ManufactureDate.Format(entity.DateLayout),
		p.ExpiryDate.Format(entity.DateLayout),
		p.PurchasePrice.String(),
		p.SalePrice.String(),
		strconv.Itoa(p.StockQuantity),
		strconv.Itoa(p.Category.ID),
		p.Category.Name,
		p.Category.Description,
		p.Category.Sector,
	}, catalog.Delimiter), nil
}

// DecodeProduct interpreta una línea de producto. La categoría se resuelve por ID contra categories;
// si el ID no está registrado se conservan los campos embebidos en la línea.
// Los errores son siempre *domain.DecodeError (sin número de línea; lo completa quien lee el archivo).
func DecodeProduct(line string, categories catalog.CategoryResolver) (entity.Product, error) {
	line = strings.TrimRight(line, "\r")
	fields := strings.Split(line, catalog.Delimiter)
	if len(fields) != productFields {
		return entity.Product{}, decodeErr(line, fmt.Sprintf("se esperaban %d campos, hay %d", productFields, len(fields)), nil)
	}

	code := fields[0]
	if !catalog.ValidCode(code) {
		return entity.Product{}, decodeErr(line, "código inválido", nil)
	}
	manufacture, err := entity.ParseDate(fields[3])
	if err != nil {
		return entity.Product{}, decodeErr(line, "fecha de fabricación inválida", err)
	}
	expiry, err := entity.ParseDate(fields[4])
	if err != nil {
		return entity.Product{}, decodeErr(line, "fecha de vencimiento inválida", err)
	}
	purchase, err := decimal.NewFromString(strings.TrimSpace(fields[5]))
	if err != nil {
		return entity.Product{}, decodeErr(line, "precio de compra no numérico", err)
	}
	sale, err := decimal.NewFromString(strings.TrimSpace(fields[6]))
	if err != nil {
		return entity.Product{}, decodeErr(line, "precio de venta no numérico", err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(fields[7]))
	if err != nil {
		return entity.Product{}, decodeErr(line, "cantidad en stock no numérica", err)
	}
	category, err := decodeCategoryFields(fields[8:])
	if err != nil {
		return entity.Product{}, decodeErr(line, err.Error(), err)
	}
	if categories != nil {
		if registered, err := categories.FindByID(category.ID); err == nil {
			category = registered
		}
	}

	return entity.Product{
		Code:            code,
		Name:            fields[1],
		Description:     fields[2],
		ManufactureDate: manufacture,
		ExpiryDate:      expiry,
		PurchasePrice:   purchase,
		SalePrice:       sale,
		StockQuantity:   stock,
		Category:        category,
	}, nil
}

// EncodeCategory convierte una categoría en una línea id;name;description;sector.
func EncodeCategory(c entity.Category) (string, error) {
	for _, s := range []string{c.Name, c.Description, c.Sector} {
		if !catalog.SafeText(s) {
			return "", fmt.Errorf("codificar categoría %d: %w", c.ID, domain.NewValidationError(domain.RuleDelimiter, catalog.ReasonDelimiter))
		}
	}
	return strings.Join([]string{strconv.Itoa(c.ID), c.Name, c.Description, c.Sector}, catalog.Delimiter), nil
}

// DecodeCategory interpreta una línea de categoría.
func DecodeCategory(line string) (entity.Category, error) {
	line = strings.TrimRight(line, "\r")
	fields := strings.Split(line, catalog.Delimiter)
	if len(fields) != categoryFields {
		return entity.Category{}, decodeErr(line, fmt.Sprintf("se esperaban %d campos, hay %d", categoryFields, len(fields)), nil)
	}
	c, err := decodeCategoryFields(fields)
	if err != nil {
		return entity.Category{}, decodeErr(line, err.Error(), err)
	}
	return c, nil
}

func decodeCategoryFields(fields []string) (entity.Category, error) {
	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return entity.Category{}, fmt.Errorf("id de categoría no numérico")
	}
	c := entity.Category{ID: id, Name: fields[1], Description: fields[2], Sector: fields[3]}
	if err := catalog.ValidateCategory(c); err != nil {
		return entity.Category{}, fmt.Errorf("categoría inválida: %w", err)
	}
	return c, nil
}

func decodeErr(line, reason string, err error) *domain.DecodeError {
	return &domain.DecodeError{Content: line, Reason: reason, Err: err}
}
