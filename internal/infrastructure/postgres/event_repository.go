package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/linestop"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
)

var _ repository.EventStore = (*EventRepo)(nil)

// EventRepo implementación del almacén de eventos sobre PostgreSQL.
// Los usuarios se leen de la misma base (tabla users).
type EventRepo struct {
	pool *pgxpool.Pool
}

// NewEventRepository construye el adaptador.
func NewEventRepository(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

const eventColumns = `id, subject_id, subject_name, subject_role, shift, line, kind, occurred_at,
	defect_count, payload, workflow_status, version`

// FetchAllEvents devuelve todos los eventos en orden de llegada.
func (r *EventRepo) FetchAllEvents(ctx context.Context) ([]*entity.ComplianceEvent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM compliance_events ORDER BY occurred_at, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []*entity.ComplianceEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// FetchAllUsers devuelve todos los usuarios (activos e inactivos).
func (r *EventRepo) FetchAllUsers(ctx context.Context) ([]*entity.User, error) {
	return listUsers(ctx, r.pool)
}

// GetEvent obtiene un evento por ID; (nil, nil) si no existe.
func (r *EventRepo) GetEvent(ctx context.Context, id string) (*entity.ComplianceEvent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM compliance_events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

// UpsertEvent inserta o actualiza por ID. Con ev.Version > 0 la actualización solo ocurre
// si la versión guardada coincide; si no, domain.ErrConflict.
func (r *EventRepo) UpsertEvent(ctx context.Context, ev *entity.ComplianceEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Payload != nil && !entity.PayloadMatchesKind(ev.Kind, ev.Payload) {
		return fmt.Errorf("%w: contenido %T no corresponde al tipo %s", domain.ErrValidation, ev.Payload, ev.EffectiveKind())
	}
	raw, err := entity.EncodePayload(ev.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	var downtime *decimal.Decimal
	if p, ok := ev.Payload.(entity.LineStopPayload); ok && p.TotalTime != "" {
		h := linestop.DowntimeHours(p)
		downtime = &h
	}

	query := `
		INSERT INTO compliance_events (id, subject_id, subject_name, subject_role, shift, line, kind, occurred_at,
			defect_count, payload, workflow_status, downtime_hours, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			subject_id = EXCLUDED.subject_id,
			subject_name = EXCLUDED.subject_name,
			subject_role = EXCLUDED.subject_role,
			shift = EXCLUDED.shift,
			line = EXCLUDED.line,
			kind = EXCLUDED.kind,
			occurred_at = EXCLUDED.occurred_at,
			defect_count = EXCLUDED.defect_count,
			payload = EXCLUDED.payload,
			workflow_status = EXCLUDED.workflow_status,
			downtime_hours = EXCLUDED.downtime_hours,
			version = compliance_events.version + 1,
			updated_at = now()
		WHERE $13::int = 0 OR compliance_events.version = $13::int
		RETURNING version`

	var version int
	err = r.pool.QueryRow(ctx, query,
		ev.ID, ev.SubjectID, ev.SubjectName, ev.SubjectRole, ev.Shift, ev.Line,
		nullIfEmpty(string(ev.Kind)), ev.Timestamp.UTC(), ev.DefectCount, raw,
		nullIfEmpty(string(ev.WorkflowStatus)), downtime, ev.Version,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("evento %s versión %d: %w", ev.ID, ev.Version, domain.ErrConflict)
		}
		return fmt.Errorf("upsert event: %w", err)
	}
	ev.Version = version
	return nil
}

func scanEvent(row pgx.Row) (*entity.ComplianceEvent, error) {
	var (
		ev     entity.ComplianceEvent
		kind   *string
		status *string
		raw    []byte
	)
	err := row.Scan(&ev.ID, &ev.SubjectID, &ev.SubjectName, &ev.SubjectRole, &ev.Shift, &ev.Line,
		&kind, &ev.Timestamp, &ev.DefectCount, &raw, &status, &ev.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	ev.Kind = entity.EventKind(derefString(kind))
	ev.WorkflowStatus = entity.WorkflowStatus(derefString(status))
	ev.Timestamp = ev.Timestamp.UTC()
	ev.Payload, err = entity.DecodePayload(ev.Kind, raw)
	if err != nil {
		return nil, fmt.Errorf("evento %s: %w", ev.ID, err)
	}
	return &ev, nil
}
