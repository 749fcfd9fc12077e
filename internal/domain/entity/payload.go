package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/checklist-api/internal/domain"
)

// Payload variante del contenido de un evento, según su tipo.
// Solo los tipos de este paquete la implementan.
type Payload interface {
	payloadKind() EventKind
}

// AnswerNG marca un ítem del checklist reprobado.
const AnswerNG = "NG"

// ChecklistAnswer respuesta a un ítem del checklist.
type ChecklistAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"` // "OK" | "NG" | "N/A"
	Comment  string `json:"comment,omitempty"`
}

// ChecklistPayload contenido de PRODUCTION y MAINTENANCE.
type ChecklistPayload struct {
	Maintenance bool              `json:"-"`
	Answers     []ChecklistAnswer `json:"answers"`
	Observation string            `json:"observation,omitempty"`
}

func (p ChecklistPayload) payloadKind() EventKind {
	if p.Maintenance {
		return KindMaintenance
	}
	return KindProduction
}

// Defects cuenta los ítems NG.
func (p ChecklistPayload) Defects() int {
	n := 0
	for _, a := range p.Answers {
		if a.Answer == AnswerNG {
			n++
		}
	}
	return n
}

// LineStopPayload contenido de una parada de línea.
type LineStopPayload struct {
	Model             string     `json:"model"`
	Line              string     `json:"line"`
	ResponsibleSector string     `json:"responsible_sector"`
	Reason            string     `json:"motivo"`
	StartTime         string     `json:"start_time,omitempty"` // HH:MM
	EndTime           string     `json:"end_time,omitempty"`
	TotalTime         string     `json:"total_time,omitempty"`
	ItemsCount        int        `json:"items_count"`
	Justification     string     `json:"justification,omitempty"`
	JustifiedBy       string     `json:"justified_by,omitempty"`
	JustifiedAt       *time.Time `json:"justified_at,omitempty"`
	SignedDocumentRef string     `json:"signed_document_ref,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func (LineStopPayload) payloadKind() EventKind { return KindLineStop }

// EncodePayload serializa la variante a JSON para el almacén.
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// DecodePayload reconstruye la variante según el tipo del evento.
func DecodePayload(kind EventKind, raw []byte) (Payload, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch kind.Effective() {
	case KindProduction, KindMaintenance:
		var p ChecklistPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("payload checklist: %w", err)
		}
		p.Maintenance = kind == KindMaintenance
		return p, nil
	case KindLineStop:
		var p LineStopPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("payload parada de línea: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: tipo de evento desconocido %q", domain.ErrValidation, kind)
	}
}

// PayloadMatchesKind verifica que la variante corresponde al tipo del evento.
func PayloadMatchesKind(kind EventKind, p Payload) bool {
	return p != nil && p.payloadKind() == kind.Effective()
}
