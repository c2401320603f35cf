package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
)

// AuditHandler consulta del audit log (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar audit log
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "roll | catalog | user"
// @Param        entity_id    query  string  false  "ID de la entidad"
// @Param        action       query  string  false  "create | update | delete | login | logout"
// @Param        actor_id     query  string  false  "ID del actor"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.ListAuditRequest
	if err := c.QueryParser(&in); err != nil {
		return respondValidation(c, "query params inválidos")
	}
	out, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}
