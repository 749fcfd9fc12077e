package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/linestop"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
	"github.com/jhoicas/checklist-api/pkg/logger"
)

// LineStopUseCase orquesta el flujo de paradas de línea sobre el almacén de eventos.
// El motor decide la transición; aquí solo se lee, se persiste y se traduce a DTO.
type LineStopUseCase struct {
	store  repository.EventStore
	engine *linestop.Engine
	log    *logger.Logger
}

// NewLineStopUseCase construye el caso de uso.
func NewLineStopUseCase(store repository.EventStore, engine *linestop.Engine, log *logger.Logger) *LineStopUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LineStopUseCase{store: store, engine: engine, log: log.Component("linestop")}
}

// Create abre una parada en WAITING_JUSTIFICATION.
func (uc *LineStopUseCase) Create(ctx context.Context, reporter entity.User, in dto.CreateLineStopRequest) (*dto.LineStopResponse, error) {
	ev, err := uc.engine.Create(linestop.CreateInput{
		Model:             in.Model,
		Line:              in.Line,
		ResponsibleSector: in.ResponsibleSector,
		Reason:            in.Motivo,
		StartTime:         strings.TrimSpace(in.StartTime),
		EndTime:           strings.TrimSpace(in.EndTime),
		Reporter:          reporter,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.store.UpsertEvent(ctx, &ev); err != nil {
		return nil, storeErr("crear parada", err)
	}
	uc.log.Info().Str("event_id", ev.ID).Str("status", string(ev.WorkflowStatus)).
		Str("matricula", reporter.Matricula).Msg("parada de línea creada")
	return toLineStopResponse(&ev), nil
}

// Justify justificación del sector responsable. version es la que leyó el cliente (0 = sin verificar).
func (uc *LineStopUseCase) Justify(ctx context.Context, actor entity.User, id string, in dto.JustifyLineStopRequest) (*dto.LineStopResponse, error) {
	return uc.transition(ctx, id, in.Version, actor.Matricula, func(ev entity.ComplianceEvent) (entity.ComplianceEvent, error) {
		return uc.engine.Justify(ev, in.Justification, actor)
	})
}

// AttachSignedDocument adjunta el documento firmado y cierra la parada.
func (uc *LineStopUseCase) AttachSignedDocument(ctx context.Context, actor entity.User, id string, in dto.SignedDocumentRequest) (*dto.LineStopResponse, error) {
	return uc.transition(ctx, id, in.Version, actor.Matricula, func(ev entity.ComplianceEvent) (entity.ComplianceEvent, error) {
		return uc.engine.AttachSignedDocument(ev, in.DocumentRef)
	})
}

func (uc *LineStopUseCase) transition(ctx context.Context, id string, clientVersion int, matricula string,
	step func(entity.ComplianceEvent) (entity.ComplianceEvent, error)) (*dto.LineStopResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if clientVersion > 0 && clientVersion != current.Version {
		return nil, fmt.Errorf("%w: parada %s versión %d, el cliente tiene %d", domain.ErrConflict, id, current.Version, clientVersion)
	}
	next, err := step(*current)
	if err != nil {
		return nil, err
	}
	// next.Version sigue siendo la leída: el almacén rechaza si alguien escribió antes.
	if err := uc.store.UpsertEvent(ctx, &next); err != nil {
		err = storeErr("actualizar parada", err)
		uc.log.Warn().Err(err).Str("event_id", id).Msg("transición no persistida")
		return nil, err
	}
	uc.log.Info().Str("event_id", next.ID).Str("status", string(next.WorkflowStatus)).
		Str("matricula", matricula).Msg("parada de línea actualizada")
	return toLineStopResponse(&next), nil
}

// Get devuelve una parada por ID.
func (uc *LineStopUseCase) Get(ctx context.Context, id string) (*dto.LineStopResponse, error) {
	ev, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLineStopResponse(ev), nil
}

func (uc *LineStopUseCase) get(ctx context.Context, id string) (*entity.ComplianceEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id vacío", domain.ErrValidation)
	}
	ev, err := uc.store.GetEvent(ctx, id)
	if err != nil {
		return nil, storeErr("leer parada", err)
	}
	if ev == nil || ev.EffectiveKind() != entity.KindLineStop {
		return nil, fmt.Errorf("parada %s: %w", id, domain.ErrNotFound)
	}
	return ev, nil
}

// List paradas filtradas por estado y línea, más recientes primero.
// Si el almacén falla devuelve una lista vacía marcada como Degraded.
func (uc *LineStopUseCase) List(ctx context.Context, f dto.LineStopFilter) (*dto.LineStopListResponse, error) {
	f.DefaultPage()
	status := entity.WorkflowStatus(strings.ToUpper(strings.TrimSpace(f.Status)))
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, f.Status)
	}

	out := &dto.LineStopListResponse{Items: []dto.LineStopResponse{}}
	events, err := uc.store.FetchAllEvents(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("almacén no disponible, listado vacío")
		out.Degraded = true
		out.Page = dto.PageResponse{Limit: f.Limit, Offset: f.Offset}
		return out, nil
	}

	var stops []*entity.ComplianceEvent
	for _, ev := range events {
		if ev.EffectiveKind() != entity.KindLineStop {
			continue
		}
		if status != "" && ev.WorkflowStatus != status {
			continue
		}
		if f.Line != "" && !strings.EqualFold(strings.TrimSpace(ev.Line), strings.TrimSpace(f.Line)) {
			continue
		}
		stops = append(stops, ev)
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Timestamp.After(stops[j].Timestamp) })

	out.Page = dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: len(stops)}
	for i := f.Offset; i < len(stops) && i < f.Offset+f.Limit; i++ {
		out.Items = append(out.Items, *toLineStopResponse(stops[i]))
	}
	return out, nil
}

func toLineStopResponse(ev *entity.ComplianceEvent) *dto.LineStopResponse {
	out := &dto.LineStopResponse{
		ID:             ev.ID,
		WorkflowStatus: string(ev.WorkflowStatus),
		Version:        ev.Version,
		ReportedBy:     ev.SubjectID,
		ReporterName:   ev.SubjectName,
		Shift:          ev.Shift,
		Line:           ev.Line,
		CreatedAt:      ev.Timestamp,
	}
	var p entity.LineStopPayload
	switch v := ev.Payload.(type) {
	case entity.LineStopPayload:
		p = v
	case *entity.LineStopPayload:
		if v != nil {
			p = *v
		}
	}
	out.Model = p.Model
	out.ResponsibleSector = p.ResponsibleSector
	out.Motivo = p.Reason
	out.StartTime = p.StartTime
	out.EndTime = p.EndTime
	out.TotalTime = p.TotalTime
	out.DowntimeHours = linestop.DowntimeHours(p)
	out.Justification = p.Justification
	out.JustifiedBy = p.JustifiedBy
	out.JustifiedAt = p.JustifiedAt
	out.SignedDocumentRef = p.SignedDocumentRef
	out.CompletedAt = p.CompletedAt
	return out
}
