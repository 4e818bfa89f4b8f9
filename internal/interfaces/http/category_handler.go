package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-productos/internal/application/catalog"
	"github.com/jhoicas/catalogo-productos/internal/application/dto"
	"github.com/jhoicas/catalogo-productos/internal/domain/entity"
)

// CategoryHandler expone el registro de categorías.
type CategoryHandler struct {
	registry *catalog.CategoryRegistry
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(registry *catalog.CategoryRegistry) *CategoryHandler {
	return &CategoryHandler{registry: registry}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	all := h.registry.All()
	out := make([]dto.CategoryResponse, 0, len(all))
	for _, cat := range all {
		out = append(out, dto.ToCategoryResponse(cat))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id debe ser numérico")
	}
	cat, err := h.registry.FindByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCategoryResponse(cat))
}

// Replace godoc
// @Summary      Reemplazar el conjunto de categorías
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CategoryRequest  true  "Conjunto completo"
// @Success      200   {array}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [put]
func (h *CategoryHandler) Replace(c *fiber.Ctx) error {
	var in []dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	categories := make([]entity.Category, 0, len(in))
	for _, r := range in {
		categories = append(categories, r.ToEntity())
	}
	if err := h.registry.Replace(categories); err != nil {
		return writeError(c, err)
	}
	return h.List(c)
}
