package dto

import "github.com/shopspring/decimal"

// MatrixQuery parámetros de la matriz (query string).
// Week en formato "YYYY-Www"; vacío = semana actual. Lines separado por comas.
type MatrixQuery struct {
	Week  string `query:"week"`
	Shift string `query:"shift" validate:"omitempty,oneof=ALL 1 2"`
	Kind  string `query:"kind" validate:"omitempty,oneof=PRODUCTION MAINTENANCE"`
	Lines string `query:"lines"`
}

// CellDTO celda (entidad, día).
type CellDTO struct {
	Date     string   `json:"date"`
	Status   string   `json:"status"` // OK | NG | PENDING
	Label    string   `json:"label,omitempty"`
	EventIDs []string `json:"event_ids,omitempty"`
}

// MatrixRowDTO fila por línea o por líder.
type MatrixRowDTO struct {
	EntityID    string    `json:"entity_id"`
	EntityLabel string    `json:"entity_label"`
	Cells       []CellDTO `json:"cells"`
}

// MatrixSummaryDTO totales de la matriz.
type MatrixSummaryDTO struct {
	OK             int             `json:"ok"`
	NG             int             `json:"ng"`
	Pending        int             `json:"pending"`
	Total          int             `json:"total"`
	ComplianceRate decimal.Decimal `json:"compliance_rate"`
}

// MatrixResponse matriz de cumplimiento semanal.
// Degraded indica que el almacén falló y la matriz se armó sobre una instantánea vacía.
type MatrixResponse struct {
	Week     string           `json:"week"`
	Shift    string           `json:"shift"`
	Kind     string           `json:"kind"`
	Days     []string         `json:"days"`
	Rows     []MatrixRowDTO   `json:"rows"`
	Summary  MatrixSummaryDTO `json:"summary"`
	Degraded bool             `json:"degraded"`
}

// MissingLeadersResponse líderes sin checklist de producción hoy.
type MissingLeadersResponse struct {
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Names    []string `json:"names"`
	Degraded bool     `json:"degraded"`
}
