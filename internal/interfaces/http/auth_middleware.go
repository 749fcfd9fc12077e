package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/auth"
	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/pkg/jwt"
)

// LocalIdentity clave de c.Locals con la identidad del token.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if id.Matricula == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sin matrícula"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del token (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(jwt.Identity)
	return id, ok
}

// CurrentUser usuario que actúa en la petición; vacío si no hay identidad.
func CurrentUser(c *fiber.Ctx) entity.User {
	id, _ := GetIdentity(c)
	return auth.UserOf(id)
}
