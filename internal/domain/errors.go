package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicateCode = errors.New("código de producto duplicado")
)

// Rule identifica la regla de validación violada por un producto.
type Rule string

const (
	RuleCode            Rule = "code"
	RuleName            Rule = "name"
	RuleManufactureDate Rule = "manufacture_date"
	RuleExpiryDate      Rule = "expiry_date"
	RulePurchasePrice   Rule = "purchase_price"
	RuleSalePrice       Rule = "sale_price"
	RuleStock           Rule = "stock_quantity"
	RuleCategory        Rule = "category"
	RuleDelimiter       Rule = "delimiter"
)

// ValidationError indica la primera regla de negocio violada.
// El Reason se muestra tal cual al usuario.
type ValidationError struct {
	Rule   Rule
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(rule Rule, reason string) *ValidationError {
	return &ValidationError{Rule: rule, Reason: reason}
}

// DecodeError describe una línea persistida que no pudo decodificarse.
// Se recupera localmente durante la carga; nunca aborta la carga completa.
type DecodeError struct {
	Source  string // ruta del archivo
	Line    int    // número de línea (1 = primera línea del archivo)
	Content string
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("línea %d inválida (%s): %q", e.Line, e.Reason, e.Content)
	}
	return fmt.Sprintf("línea inválida (%s): %q", e.Reason, e.Content)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PersistenceError envuelve un fallo de lectura/escritura de archivo.
type PersistenceError struct {
	Op   string // load, save
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence indica si err contiene un PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
