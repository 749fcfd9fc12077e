package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLineStopRequest apertura de una parada de línea.
type CreateLineStopRequest struct {
	Model             string `json:"model" validate:"required"`
	Line              string `json:"line" validate:"required"`
	ResponsibleSector string `json:"responsible_sector" validate:"required"`
	Motivo            string `json:"motivo" validate:"required"`
	StartTime         string `json:"start_time" validate:"omitempty"` // HH:MM
	EndTime           string `json:"end_time" validate:"omitempty"`
}

// JustifyLineStopRequest justificación del sector responsable.
// Version es la que el cliente leyó; 0 desactiva la verificación.
type JustifyLineStopRequest struct {
	Justification string `json:"justification" validate:"required"`
	Version       int    `json:"version"`
}

// SignedDocumentRequest referencia al documento firmado (ruta o URL del archivo ya subido).
type SignedDocumentRequest struct {
	DocumentRef string `json:"document_ref" validate:"required"`
	Version     int    `json:"version"`
}

// LineStopFilter filtro del listado.
type LineStopFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=WAITING_JUSTIFICATION WAITING_SIGNATURE COMPLETED"`
	Line   string `query:"line"`
	PageRequest
}

// LineStopResponse parada de línea con su estado actual.
type LineStopResponse struct {
	ID                string          `json:"id"`
	WorkflowStatus    string          `json:"workflow_status"`
	Version           int             `json:"version"`
	ReportedBy        string          `json:"reported_by"`
	ReporterName      string          `json:"reporter_name"`
	Shift             string          `json:"shift"`
	Line              string          `json:"line"`
	Model             string          `json:"model"`
	ResponsibleSector string          `json:"responsible_sector"`
	Motivo            string          `json:"motivo"`
	StartTime         string          `json:"start_time,omitempty"`
	EndTime           string          `json:"end_time,omitempty"`
	TotalTime         string          `json:"total_time,omitempty"`
	DowntimeHours     decimal.Decimal `json:"downtime_hours"`
	Justification     string          `json:"justification,omitempty"`
	JustifiedBy       string          `json:"justified_by,omitempty"`
	JustifiedAt       *time.Time      `json:"justified_at,omitempty"`
	SignedDocumentRef string          `json:"signed_document_ref,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// LineStopListResponse listado paginado.
type LineStopListResponse struct {
	Items    []LineStopResponse `json:"items"`
	Page     PageResponse       `json:"page"`
	Degraded bool               `json:"degraded"`
}
