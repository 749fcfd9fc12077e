package entity

import "time"

// EventKind tipo de evento de cumplimiento.
type EventKind string

const (
	KindProduction  EventKind = "PRODUCTION"
	KindMaintenance EventKind = "MAINTENANCE"
	KindLineStop    EventKind = "LINE_STOP"
)

// Effective resuelve la abreviatura legada: sin tipo significa PRODUCTION.
func (k EventKind) Effective() EventKind {
	if k == "" {
		return KindProduction
	}
	return k
}

// WorkflowStatus etapa del ciclo de aprobación de una parada de línea.
type WorkflowStatus string

const (
	StatusWaitingJustification WorkflowStatus = "WAITING_JUSTIFICATION"
	StatusWaitingSignature     WorkflowStatus = "WAITING_SIGNATURE"
	StatusCompleted            WorkflowStatus = "COMPLETED"
)

// Valid informa si el estado pertenece a la secuencia.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case StatusWaitingJustification, StatusWaitingSignature, StatusCompleted:
		return true
	}
	return false
}

// ComplianceEvent registro de un checklist ejecutado o de una parada de línea.
// Se actualiza en sitio (upsert por ID); ID vacío = aún no persistido.
type ComplianceEvent struct {
	ID             string
	SubjectID      string // matrícula del autor
	SubjectName    string
	SubjectRole    string
	Shift          string
	Line           string
	Timestamp      time.Time // UTC
	Kind           EventKind
	DefectCount    int
	Payload        Payload
	WorkflowStatus WorkflowStatus // solo para KindLineStop
	Version        int            // control optimista; 0 = sin verificación
}

// EffectiveKind devuelve el tipo resolviendo eventos legados.
func (e *ComplianceEvent) EffectiveKind() EventKind {
	return e.Kind.Effective()
}

// LocalDate devuelve la fecha civil del evento en la zona de la planta (medianoche UTC de esa fecha).
func (e *ComplianceEvent) LocalDate(loc *time.Location) time.Time {
	t := e.Timestamp.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
