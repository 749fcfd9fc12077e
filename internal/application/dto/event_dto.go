package dto

import "time"

// ChecklistAnswerDTO respuesta a un ítem.
type ChecklistAnswerDTO struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required,oneof=OK NG N/A"`
	Comment  string `json:"comment,omitempty"`
}

// RecordChecklistRequest registro de un checklist ejecutado.
type RecordChecklistRequest struct {
	Kind        string               `json:"kind" validate:"required,oneof=PRODUCTION MAINTENANCE"`
	Line        string               `json:"line" validate:"required"`
	Answers     []ChecklistAnswerDTO `json:"answers" validate:"required,min=1"`
	Observation string               `json:"observation,omitempty"`
}

// EventResponse evento persistido.
type EventResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Line        string    `json:"line"`
	Shift       string    `json:"shift"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	DefectCount int       `json:"defect_count"`
	Timestamp   time.Time `json:"timestamp"`
}
