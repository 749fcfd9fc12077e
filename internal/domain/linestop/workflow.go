// Package linestop implementa el flujo de aprobación de paradas de línea:
//
//	WAITING_JUSTIFICATION -> WAITING_SIGNATURE -> COMPLETED
//
// Cada transición recibe el registro por valor y devuelve la copia actualizada; si la
// validación o la autorización fallan, el registro del llamador queda intacto.
package linestop

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// Authorizer decide si un usuario puede actuar sobre un sector (lo implementa *access.Resolver).
type Authorizer interface {
	CanActOnSector(u entity.User, sector string) bool
}

// Engine motor de transiciones. No persiste: el caso de uso guarda el resultado.
type Engine struct {
	auth  Authorizer
	now   func() time.Time
	newID func() string
}

// Option configura el motor (reloj e IDs en tests).
type Option func(*Engine)

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator reemplaza el generador de IDs.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine construye el motor.
func NewEngine(auth Authorizer, opts ...Option) *Engine {
	e := &Engine{
		auth:  auth,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInput datos para abrir una parada de línea.
type CreateInput struct {
	Model             string
	Line              string
	ResponsibleSector string
	Reason            string
	StartTime         string // HH:MM, opcional
	EndTime           string // HH:MM, opcional
	Reporter          entity.User
}

// Create abre la parada directamente en WAITING_JUSTIFICATION con un ID nuevo.
func (e *Engine) Create(in CreateInput) (entity.ComplianceEvent, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"model", in.Model}, {"line", in.Line}, {"responsible_sector", in.ResponsibleSector}, {"motivo", in.Reason},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return entity.ComplianceEvent{}, fmt.Errorf("%w: campos obligatorios: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	payload := entity.LineStopPayload{
		Model:             strings.TrimSpace(in.Model),
		Line:              strings.TrimSpace(in.Line),
		ResponsibleSector: strings.TrimSpace(in.ResponsibleSector),
		Reason:            strings.TrimSpace(in.Reason),
		ItemsCount:        0,
	}
	if in.StartTime != "" || in.EndTime != "" {
		total, err := TotalTime(in.StartTime, in.EndTime)
		if err != nil {
			return entity.ComplianceEvent{}, err
		}
		payload.StartTime, payload.EndTime, payload.TotalTime = in.StartTime, in.EndTime, total
	}

	return entity.ComplianceEvent{
		ID:             e.newID(),
		SubjectID:      in.Reporter.Matricula,
		SubjectName:    in.Reporter.Name,
		SubjectRole:    in.Reporter.Role,
		Shift:          in.Reporter.Shift,
		Line:           payload.Line,
		Timestamp:      e.now().UTC(),
		Kind:           entity.KindLineStop,
		DefectCount:    0,
		Payload:        payload,
		WorkflowStatus: entity.StatusWaitingJustification,
	}, nil
}

// Justify registra la justificación del sector responsable y pasa a WAITING_SIGNATURE.
func (e *Engine) Justify(ev entity.ComplianceEvent, text string, actor entity.User) (entity.ComplianceEvent, error) {
	p, err := payloadOf(ev)
	if err != nil {
		return ev, err
	}
	if ev.WorkflowStatus != entity.StatusWaitingJustification {
		return ev, transitionError(ev, entity.StatusWaitingJustification)
	}
	if !e.auth.CanActOnSector(actor, p.ResponsibleSector) {
		return ev, fmt.Errorf("%w: %s (%s) no puede justificar paradas del sector %s",
			domain.ErrAuthorizationDenied, actor.Matricula, actor.Role, p.ResponsibleSector)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ev, fmt.Errorf("%w: la justificación es obligatoria", domain.ErrValidation)
	}

	now := e.now().UTC()
	p.Justification = text
	p.JustifiedBy = actor.Matricula
	p.JustifiedAt = &now
	ev.Payload = p
	ev.WorkflowStatus = entity.StatusWaitingSignature
	return ev, nil
}

// AttachSignedDocument guarda la referencia del documento firmado y cierra la parada.
func (e *Engine) AttachSignedDocument(ev entity.ComplianceEvent, documentRef string) (entity.ComplianceEvent, error) {
	p, err := payloadOf(ev)
	if err != nil {
		return ev, err
	}
	if ev.WorkflowStatus != entity.StatusWaitingSignature {
		return ev, transitionError(ev, entity.StatusWaitingSignature)
	}
	documentRef = strings.TrimSpace(documentRef)
	if documentRef == "" {
		return ev, fmt.Errorf("%w: la referencia del documento firmado es obligatoria", domain.ErrValidation)
	}

	now := e.now().UTC()
	p.SignedDocumentRef = documentRef
	p.CompletedAt = &now
	ev.Payload = p
	ev.WorkflowStatus = entity.StatusCompleted
	return ev, nil
}

// payloadOf exige que el evento sea una parada de línea con su variante correspondiente.
func payloadOf(ev entity.ComplianceEvent) (entity.LineStopPayload, error) {
	switch kind := ev.EffectiveKind(); kind {
	case entity.KindLineStop:
	case entity.KindProduction, entity.KindMaintenance:
		return entity.LineStopPayload{}, fmt.Errorf("%w: el evento %s es %s, no una parada de línea", domain.ErrValidation, ev.ID, kind)
	default:
		return entity.LineStopPayload{}, fmt.Errorf("%w: tipo de evento desconocido %q", domain.ErrValidation, kind)
	}

	switch p := ev.Payload.(type) {
	case entity.LineStopPayload:
		return p, nil
	case *entity.LineStopPayload:
		if p == nil {
			return entity.LineStopPayload{}, fmt.Errorf("%w: parada %s sin contenido", domain.ErrValidation, ev.ID)
		}
		return *p, nil
	case entity.ChecklistPayload:
		return entity.LineStopPayload{}, fmt.Errorf("%w: parada %s con contenido de checklist", domain.ErrValidation, ev.ID)
	case nil:
		return entity.LineStopPayload{}, fmt.Errorf("%w: parada %s sin contenido", domain.ErrValidation, ev.ID)
	default:
		return entity.LineStopPayload{}, fmt.Errorf("%w: contenido %T no soportado", domain.ErrValidation, p)
	}
}

func transitionError(ev entity.ComplianceEvent, want entity.WorkflowStatus) error {
	return fmt.Errorf("%w: parada %s está en %s, se esperaba %s", domain.ErrInvalidStateTransition, ev.ID, ev.WorkflowStatus, want)
}
