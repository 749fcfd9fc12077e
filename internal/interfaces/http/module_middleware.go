package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *access.Registry, el mismo que consulta el motor de paradas.
type permissionChecker interface {
	HasPermission(u entity.User, m entity.Module) bool
}

// RequirePermission devuelve un middleware Fiber que verifica si el usuario del token
// puede usar el módulo. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad en el contexto.
//   - 403 Forbidden    → el rol no tiene el módulo (ni por tupla ni por defecto).
func RequirePermission(module entity.Module, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetIdentity(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el token",
			})
		}
		if !checker.HasPermission(CurrentUser(c), module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "sin acceso al módulo '" + string(module) + "'",
			})
		}
		return c.Next()
	}
}
