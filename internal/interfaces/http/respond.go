package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
)

// respondOK responde {success:true, data:...} con el status indicado.
func respondOK(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// respondError traduce un error a la envoltura
// {success:false, error:{message, code, statusCode}}. Los errores
// operacionales (*domain.Error) pasan con su código estable; cualquier
// otro es 500 con mensaje genérico y detalle solo en el log del servidor.
func respondError(c *fiber.Ctx, err error) error {
	if de, ok := domain.AsError(err); ok {
		return c.Status(de.StatusCode).JSON(dto.Fail(de.Code, de.Message, de.StatusCode, de.Details))
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(
		dto.Fail(domain.CodeInternal, "error interno del servidor", fiber.StatusInternalServerError, nil))
}

// respondValidation respuesta 400 directa para errores de parseo del body.
func respondValidation(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		dto.Fail(domain.CodeValidation, message, fiber.StatusBadRequest, nil))
}
