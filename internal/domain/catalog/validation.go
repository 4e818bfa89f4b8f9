// Package catalog contiene las reglas de validación de dominio del catálogo de productos.
// El orden de las reglas es parte del contrato: se devuelve solo la PRIMERA violación.
package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// Delimiter separador de campos de los archivos planos. No se escapa dentro de los valores.
const Delimiter = ";"

const minNameLength = 3

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

// Mensajes mostrados tal cual por la interfaz.
const (
	ReasonCode            = "Código inválido. Debe tener 8 caracteres alfanuméricos."
	ReasonName            = "Nombre inválido. Debe tener como mínimo 3 caracteres."
	ReasonManufactureDate = "Fecha de fabricación inválida. No puede ser futura."
	ReasonExpiryDate      = "Fecha de vencimiento inválida. No puede ser anterior a la fecha de fabricación."
	ReasonPurchasePrice   = "El precio de compra debe ser un valor positivo."
	ReasonSalePrice       = "El precio de venta debe ser un valor positivo."
	ReasonSaleBelowCost   = "El precio de venta debe ser mayor que el precio de compra."
	ReasonStock           = "La cantidad en stock no puede ser negativa."
	ReasonCategory        = "El producto debe tener una categoría registrada."
	ReasonDelimiter       = "Los campos de texto no pueden contener ';' ni saltos de línea."
)

// CategoryResolver resuelve una categoría por ID (implementado por el registro de categorías).
type CategoryResolver interface {
	FindByID(id int) (entity.Category, error)
}

// ValidCode indica si code cumple el patrón de 8 caracteres alfanuméricos.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// ValidateProduct aplica las reglas en orden y devuelve la primera violación como *domain.ValidationError.
// today es la fecha de referencia para la regla de fabricación. Si es válido devuelve la categoría
// tal como la resolvió el registro.
func ValidateProduct(p entity.Product, today time.Time, categories CategoryResolver) (entity.Category, error) {
	if !ValidCode(p.Code) {
		return entity.Category{}, domain.NewValidationError(domain.RuleCode, ReasonCode)
	}
	if len([]rune(strings.TrimSpace(p.Name))) < minNameLength {
		return entity.Category{}, domain.NewValidationError(domain.RuleName, ReasonName)
	}
	if p.ManufactureDate.IsZero() || entity.Date(p.ManufactureDate).After(entity.Date(today)) {
		return entity.Category{}, domain.NewValidationError(domain.RuleManufactureDate, ReasonManufactureDate)
	}
	if p.ExpiryDate.IsZero() || entity.Date(p.ExpiryDate).Before(entity.Date(p.ManufactureDate)) {
		return entity.Category{}, domain.NewValidationError(domain.RuleExpiryDate, ReasonExpiryDate)
	}
	if !p.PurchasePrice.IsPositive() {
		return entity.Category{}, domain.NewValidationError(domain.RulePurchasePrice, ReasonPurchasePrice)
	}
	if !p.SalePrice.IsPositive() {
		return entity.Category{}, domain.NewValidationError(domain.RuleSalePrice, ReasonSalePrice)
	}
	if p.SalePrice.LessThanOrEqual(p.PurchasePrice) {
		return entity.Category{}, domain.NewValidationError(domain.RuleSalePrice, ReasonSaleBelowCost)
	}
	if p.StockQuantity < 0 {
		return entity.Category{}, domain.NewValidationError(domain.RuleStock, ReasonStock)
	}
	if p.Category.IsZero() || categories == nil {
		return entity.Category{}, domain.NewValidationError(domain.RuleCategory, ReasonCategory)
	}
	category, err := categories.FindByID(p.Category.ID)
	if err != nil {
		return entity.Category{}, domain.NewValidationError(domain.RuleCategory, ReasonCategory)
	}
	// El formato plano no escapa el separador: se rechaza antes de persistir.
	if !SafeText(p.Name) || !SafeText(p.Description) {
		return entity.Category{}, domain.NewValidationError(domain.RuleDelimiter, ReasonDelimiter)
	}
	return category, nil
}

// ValidateCategory valida una categoría antes de guardarla en el registro.
func ValidateCategory(c entity.Category) error {
	if c.ID < 1 {
		return domain.NewValidationError(domain.RuleCategory, "El ID de la categoría debe ser mayor o igual a 1.")
	}
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Description) == "" || strings.TrimSpace(c.Sector) == "" {
		return domain.NewValidationError(domain.RuleCategory, "La categoría requiere nombre, descripción y sector.")
	}
	if !SafeText(c.Name) || !SafeText(c.Description) || !SafeText(c.Sector) {
		return domain.NewValidationError(domain.RuleDelimiter, ReasonDelimiter)
	}
	return nil
}

// SafeText indica si s puede escribirse en un campo del archivo plano sin romper la línea.
func SafeText(s string) bool {
	return !strings.ContainsAny(s, Delimiter+"\r\n")
}
