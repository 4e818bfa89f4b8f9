package dto

import "github.com/jhoicas/catalogo-productos/internal/domain/entity"

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
}

// ToCategoryResponse convierte la entidad.
func ToCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Sector: c.Sector}
}

// CategoryRequest entrada de una categoría en PUT /api/categories.
type CategoryRequest struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
}

// ToEntity convierte la petición en entidad.
func (r CategoryRequest) ToEntity() entity.Category {
	return entity.Category{ID: r.ID, Name: r.Name, Description: r.Description, Sector: r.Sector}
}
