package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
)

// PermissionHandler administración de permisos por rol.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// List godoc
// @Summary      Listar permisos
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PermissionsResponse
// @Router       /api/permissions [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Reemplazar permisos
// @Tags         permissions
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.SavePermissionsRequest  true  "tuplas"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/permissions [put]
func (h *PermissionHandler) Save(c *fiber.Ctx) error {
	var in dto.SavePermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Save(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
