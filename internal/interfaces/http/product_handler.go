package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/catalogo-productos/internal/application/catalog"
	"github.com/jhoicas/catalogo-productos/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP sobre el almacén de productos.
type ProductHandler struct {
	store *catalog.ProductStore
}

// NewProductHandler construye el handler.
func NewProductHandler(store *catalog.ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	p, err := in.ToEntity()
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	if err := h.store.Add(p); err != nil {
		return writeError(c, err)
	}
	saved, _ := h.store.FindByCode(p.Code)
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(saved))
}

// GetByCode godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	p, ok := h.store.FindByCode(c.Params("code"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.ToProductResponse(p))
}

// List godoc
// @Summary      Listar productos (orden de inserción)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	all := h.store.ListAll()
	offset = min(offset, len(all))
	page := all[offset : offset+min(limit, len(all)-offset)]
	return c.JSON(dto.ProductListResponse{
		Items: dto.ToProductResponses(page),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(all)},
	})
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos completos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	// Params apunta al buffer de la petición; el código se guarda en el almacén, hay que copiarlo.
	in.Code = utils.CopyString(c.Params("code"))
	p, err := in.ToEntity()
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	if err := h.store.Update(p); err != nil {
		return writeError(c, err)
	}
	saved, _ := h.store.FindByCode(p.Code)
	return c.JSON(dto.ToProductResponse(saved))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        code  path  string  true  "Código del producto"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	removed, err := h.store.Remove(c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NewCode godoc
// @Summary      Sugerir un código libre
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CodeResponse
// @Router       /api/products/new-code [get]
func (h *ProductHandler) NewCode(c *fiber.Ctx) error {
	code, err := h.store.SuggestCode()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// Flush godoc
// @Summary      Reintentar el guardado del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FlushResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/flush [post]
func (h *ProductHandler) Flush(c *fiber.Ctx) error {
	if err := h.store.Flush(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FlushResponse{Dirty: h.store.Dirty()})
}
