package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
)

// RollHandler maneja las peticiones HTTP para Roll (protegido).
type RollHandler struct {
	uc *usecase.RollUseCase
}

// NewRollHandler construye el handler.
func NewRollHandler(uc *usecase.RollUseCase) *RollHandler {
	return &RollHandler{uc: uc}
}

// List godoc
// @Summary      Listar rollos
// @Tags         rolls
// @Security     Bearer
// @Produce      json
// @Param        catalog  query  string  false  "ID de catálogo"
// @Param        status   query  string  false  "in_stock | reserved | sold"
// @Param        degree   query  string  false  "A | B | C"
// @Param        color    query  string  false  "Color exacto"
// @Param        search   query  string  false  "Busca en barcode, color y location"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.APIResponse
// @Router       /api/rolls [get]
func (h *RollHandler) List(c *fiber.Ctx) error {
	var in dto.ListRollsRequest
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
// @Summary      Obtener rollo por ID
// @Tags         rolls
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rollo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rolls/{id} [get]
func (h *RollHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear rollo
// @Tags         rolls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRollRequest  true  "Datos del rollo"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rolls [post]
func (h *RollHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRollRequest
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
// @Summary      Actualizar rollo (campos y transición de estado)
// @Tags         rolls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del rollo"
// @Param        body  body  dto.UpdateRollRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rolls/{id} [put]
func (h *RollHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRollRequest
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
// @Summary      Eliminar rollo (soft delete)
// @Tags         rolls
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rollo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rolls/{id} [delete]
func (h *RollHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, nil)
}
