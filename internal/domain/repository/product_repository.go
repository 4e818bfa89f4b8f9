package repository

import (
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/catalog"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// ProductLoadResult resultado de una carga masiva del catálogo.
// Las líneas corruptas se omiten y se reportan en Failures; nunca abortan la carga.
type ProductLoadResult struct {
	Products []entity.Product
	Failures []*domain.DecodeError
	HeaderOK bool // false si la cabecera faltaba o no coincidía (solo advertencia)
	Created  bool // true si el archivo no existía y se creó con la cabecera
}

// ProductRepository define el puerto de persistencia del catálogo completo (DIP).
// La persistencia es reescritura completa: SaveAll reemplaza todo el contenido.
type ProductRepository interface {
	LoadAll(categories catalog.CategoryResolver) (*ProductLoadResult, error)
	SaveAll(products []entity.Product) error
}
