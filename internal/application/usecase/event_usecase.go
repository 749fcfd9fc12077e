package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
	"github.com/jhoicas/checklist-api/internal/domain/shift"
	"github.com/jhoicas/checklist-api/pkg/logger"
)

// PermissionChecker decide la visibilidad de módulos (lo implementa *access.Registry).
type PermissionChecker interface {
	HasPermission(u entity.User, m entity.Module) bool
}

// EventUseCase ruta de escritura de checklists (PRODUCTION y MAINTENANCE).
// Las paradas de línea solo se crean por LineStopUseCase.
type EventUseCase struct {
	store repository.EventStore
	perms PermissionChecker
	now   func() time.Time
	log   *logger.Logger
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(store repository.EventStore, perms PermissionChecker, log *logger.Logger) *EventUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EventUseCase{store: store, perms: perms, now: time.Now, log: log.Component("events")}
}

// RecordChecklist registra un checklist ejecutado por actor. defect_count = respuestas NG.
func (uc *EventUseCase) RecordChecklist(ctx context.Context, actor entity.User, in dto.RecordChecklistRequest) (*dto.EventResponse, error) {
	kind := entity.EventKind(strings.ToUpper(strings.TrimSpace(in.Kind)))
	var module entity.Module
	switch kind {
	case entity.KindProduction:
		module = entity.ModuleChecklist
	case entity.KindMaintenance:
		module = entity.ModuleMaintenance
	case entity.KindLineStop:
		return nil, fmt.Errorf("%w: las paradas de línea se abren en /api/line-stops", domain.ErrValidation)
	default:
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrValidation, in.Kind)
	}
	if !uc.perms.HasPermission(actor, module) {
		return nil, fmt.Errorf("%w: módulo %s", domain.ErrAuthorizationDenied, module)
	}
	line := strings.TrimSpace(in.Line)
	if line == "" {
		return nil, fmt.Errorf("%w: la línea es obligatoria", domain.ErrValidation)
	}
	if len(in.Answers) == 0 {
		return nil, fmt.Errorf("%w: el checklist no tiene respuestas", domain.ErrValidation)
	}

	payload := entity.ChecklistPayload{
		Maintenance: kind == entity.KindMaintenance,
		Observation: strings.TrimSpace(in.Observation),
		Answers:     make([]entity.ChecklistAnswer, 0, len(in.Answers)),
	}
	for i, a := range in.Answers {
		answer := strings.ToUpper(strings.TrimSpace(a.Answer))
		switch answer {
		case "OK", entity.AnswerNG, "N/A":
		default:
			return nil, fmt.Errorf("%w: respuesta %d = %q", domain.ErrValidation, i+1, a.Answer)
		}
		payload.Answers = append(payload.Answers, entity.ChecklistAnswer{
			Question: strings.TrimSpace(a.Question),
			Answer:   answer,
			Comment:  strings.TrimSpace(a.Comment),
		})
	}

	ev := entity.ComplianceEvent{
		ID:          uuid.New().String(),
		SubjectID:   actor.Matricula,
		SubjectName: actor.Name,
		SubjectRole: actor.Role,
		Shift:       shift.OfUser(&actor),
		Line:        line,
		Timestamp:   uc.now().UTC(),
		Kind:        kind,
		DefectCount: payload.Defects(),
		Payload:     payload,
	}
	if err := uc.store.UpsertEvent(ctx, &ev); err != nil {
		return nil, storeErr("registrar checklist", err)
	}
	uc.log.Info().Str("event_id", ev.ID).Str("kind", string(kind)).Str("line", line).
		Int("defects", ev.DefectCount).Str("matricula", actor.Matricula).Msg("checklist registrado")

	return &dto.EventResponse{
		ID:          ev.ID,
		Kind:        string(ev.Kind),
		Line:        ev.Line,
		Shift:       ev.Shift,
		SubjectID:   ev.SubjectID,
		SubjectName: ev.SubjectName,
		DefectCount: ev.DefectCount,
		Timestamp:   ev.Timestamp,
	}, nil
}
