package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP. El mensaje del error viaja al cliente
// salvo en los 500, donde se oculta.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrAuthorizationDenied):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "ACCOUNT_INACTIVE"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		status, code = fiber.StatusConflict, "INVALID_STATE_TRANSITION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUserExists):
		status, code = fiber.StatusConflict, "USER_EXISTS"
	case errors.Is(err, domain.ErrAdapterUnavailable):
		status, code = fiber.StatusServiceUnavailable, "ADAPTER_UNAVAILABLE"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
