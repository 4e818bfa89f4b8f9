package repository

import (
	"github.com/jhoicas/catalogo-productos/internal/domain"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// CategoryLoadResult resultado de leer el archivo de categorías.
type CategoryLoadResult struct {
	Categories []entity.Category
	Failures   []*domain.DecodeError
	Missing    bool // el archivo no existe
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	LoadAll() (*CategoryLoadResult, error)
	SaveAll(categories []entity.Category) error
}
