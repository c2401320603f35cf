package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tejidosandina/rollos-api/internal/application/dto"
	"github.com/tejidosandina/rollos-api/internal/domain"
	"github.com/tejidosandina/rollos-api/internal/domain/rbac"
)

// RequirePermission devuelve un middleware Fiber que exige el permiso
// indicado según la tabla estática rol → permisos. Debe usarse DESPUÉS
// de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 si no hay rol en el contexto (token legacy sin claim).
//   - 403 PERMISSION_DENIED si el rol no contiene el permiso ni el wildcard.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail(domain.CodeAuthInvalid, "token sin rol", fiber.StatusUnauthorized, nil))
		}
		if !rbac.HasPermission(role, permission) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(
				domain.CodePermissionDenied, "permiso insuficiente", fiber.StatusForbidden,
				map[string]any{"permission": permission}))
		}
		return c.Next()
	}
}

// RequireAnyPermission exige al menos uno de los permisos listados.
func RequireAnyPermission(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail(domain.CodeAuthInvalid, "token sin rol", fiber.StatusUnauthorized, nil))
		}
		if !rbac.HasAny(role, permissions...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(
				domain.CodePermissionDenied, "permiso insuficiente", fiber.StatusForbidden,
				map[string]any{"permissions": permissions}))
		}
		return c.Next()
	}
}
