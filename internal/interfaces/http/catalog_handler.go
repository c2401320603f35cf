package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
)

// CatalogHandler maneja las peticiones HTTP para Catalog (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogos
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | archived | draft"
// @Param        search  query  string  false  "Busca en code, name y material"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.APIResponse
// @Router       /api/catalogs [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var in dto.ListCatalogsRequest
	if err := c.QueryParser(&in); err != nil {
		return respondValidation(c, "query params inválidos")
	}
	out, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener catálogo por ID
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogRequest  true  "Datos del catálogo"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogs [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return respondValidation(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar catálogo (code es inmutable)
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del catálogo"
// @Param        body  body  dto.UpdateCatalogRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return respondValidation(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar catálogo (bloqueado si tiene rollos)
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, nil)
}
