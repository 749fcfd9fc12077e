package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
)

// EventHandler registro de checklists.
type EventHandler struct {
	uc *usecase.EventUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *usecase.EventUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar checklist
// @Description  PRODUCTION requiere el módulo CHECKLIST y MAINTENANCE el módulo MAINTENANCE.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordChecklistRequest  true  "checklist"
// @Success      201  {object}  dto.EventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordChecklistRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordChecklist(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
