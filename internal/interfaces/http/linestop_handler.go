package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
)

// LineStopHandler flujo de paradas de línea.
type LineStopHandler struct {
	uc *usecase.LineStopUseCase
}

// NewLineStopHandler construye el handler.
func NewLineStopHandler(uc *usecase.LineStopUseCase) *LineStopHandler {
	return &LineStopHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir parada de línea
// @Tags         line-stops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLineStopRequest  true  "parada"
// @Success      201  {object}  dto.LineStopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/line-stops [post]
func (h *LineStopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLineStopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), CurrentUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar paradas
// @Tags         line-stops
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "WAITING_JUSTIFICATION | WAITING_SIGNATURE | COMPLETED"
// @Param        line    query  string  false  "línea"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.LineStopListResponse
// @Router       /api/line-stops [get]
func (h *LineStopHandler) List(c *fiber.Ctx) error {
	var f dto.LineStopFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener parada
// @Tags         line-stops
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.LineStopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/line-stops/{id} [get]
func (h *LineStopHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Justify godoc
// @Summary      Justificar parada
// @Description  Solo el sector responsable (o un superusuario). Pasa a WAITING_SIGNATURE.
// @Tags         line-stops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID"
// @Param        body  body  dto.JustifyLineStopRequest  true  "justificación"
// @Success      200  {object}  dto.LineStopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/line-stops/{id}/justify [post]
func (h *LineStopHandler) Justify(c *fiber.Ctx) error {
	var in dto.JustifyLineStopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Justify(c.UserContext(), CurrentUser(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AttachSignedDocument godoc
// @Summary      Adjuntar documento firmado
// @Description  Cierra la parada (COMPLETED). Requiere WAITING_SIGNATURE.
// @Tags         line-stops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.SignedDocumentRequest  true  "documento"
// @Success      200  {object}  dto.LineStopResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/line-stops/{id}/signed-document [post]
func (h *LineStopHandler) AttachSignedDocument(c *fiber.Ctx) error {
	var in dto.SignedDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AttachSignedDocument(c.UserContext(), CurrentUser(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
