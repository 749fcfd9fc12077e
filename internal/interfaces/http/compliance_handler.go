package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
)

// ComplianceHandler vistas de cumplimiento para gestión.
type ComplianceHandler struct {
	uc *usecase.ComplianceUseCase
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *usecase.ComplianceUseCase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

// Lines godoc
// @Summary      Matriz semanal por línea
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        week   query  string  false  "YYYY-Www (por defecto la semana actual)"
// @Param        shift  query  string  false  "ALL | 1 | 2"
// @Param        kind   query  string  false  "PRODUCTION | MAINTENANCE"
// @Param        lines  query  string  false  "líneas separadas por coma"
// @Success      200  {object}  dto.MatrixResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/compliance/lines [get]
func (h *ComplianceHandler) Lines(c *fiber.Ctx) error {
	var q dto.MatrixQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LineMatrix(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Leaders godoc
// @Summary      Matriz semanal por líder
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        week   query  string  false  "YYYY-Www"
// @Param        shift  query  string  false  "ALL | 1 | 2"
// @Param        kind   query  string  false  "PRODUCTION | MAINTENANCE"
// @Success      200  {object}  dto.MatrixResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compliance/leaders [get]
func (h *ComplianceHandler) Leaders(c *fiber.Ctx) error {
	var q dto.MatrixQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LeaderMatrix(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MissingLeaders godoc
// @Summary      Líderes sin checklist hoy
// @Description  Se recalcula en cada consulta según el corte de cada turno.
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MissingLeadersResponse
// @Router       /api/compliance/missing-leaders [get]
func (h *ComplianceHandler) MissingLeaders(c *fiber.Ctx) error {
	out, err := h.uc.MissingLeaders(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
