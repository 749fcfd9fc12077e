package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain/calendar"
	"github.com/jhoicas/checklist-api/internal/domain/compliance"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
	"github.com/jhoicas/checklist-api/internal/domain/shift"
	"github.com/jhoicas/checklist-api/pkg/logger"
)

// LeaderMatcher decide si un rol es de liderazgo (lo implementa *access.Registry).
type LeaderMatcher interface {
	IsLeader(role string) bool
}

// ComplianceUseCase arma las vistas de lectura: matriz por línea, por líder y líderes faltantes.
// Si el almacén falla, la vista se arma sobre una instantánea vacía y se marca Degraded.
type ComplianceUseCase struct {
	store   repository.EventStore
	leaders LeaderMatcher
	builder *compliance.Builder
	loc     *time.Location
	lines   []string
	now     func() time.Time
	log     *logger.Logger
}

// NewComplianceUseCase construye el caso de uso. lines son las líneas por defecto de la planta.
func NewComplianceUseCase(store repository.EventStore, leaders LeaderMatcher, loc *time.Location, lines []string, log *logger.Logger) *ComplianceUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ComplianceUseCase{
		store:   store,
		leaders: leaders,
		builder: compliance.NewBuilder(loc),
		loc:     loc,
		lines:   lines,
		now:     time.Now,
		log:     log.Component("compliance"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ComplianceUseCase) WithClock(now func() time.Time) *ComplianceUseCase {
	uc.now = now
	return uc
}

type snapshot struct {
	events   []*entity.ComplianceEvent
	users    []*entity.User
	degraded bool
}

// load hace una sola lectura de eventos y usuarios. Nunca devuelve error.
func (uc *ComplianceUseCase) load(ctx context.Context, view string) snapshot {
	events, err := uc.store.FetchAllEvents(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Str("view", view).Msg("almacén no disponible, instantánea vacía")
		return snapshot{degraded: true}
	}
	users, err := uc.store.FetchAllUsers(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Str("view", view).Msg("almacén no disponible, instantánea vacía")
		return snapshot{degraded: true}
	}
	return snapshot{events: events, users: users}
}

// LineMatrix matriz semanal por línea.
func (uc *ComplianceUseCase) LineMatrix(ctx context.Context, in dto.MatrixQuery) (*dto.MatrixResponse, error) {
	q, err := uc.parseQuery(in)
	if err != nil {
		return nil, err
	}
	snap := uc.load(ctx, "lines")

	lines := splitCSV(in.Lines)
	if len(lines) == 0 {
		lines = uc.lines
	}
	if len(lines) == 0 {
		lines = compliance.DistinctLines(snap.events, q.Kind)
	}
	m, err := uc.builder.Lines(q, lines, snap.events, snap.users)
	if err != nil {
		return nil, err
	}
	return toMatrixResponse(q, m, snap.degraded), nil
}

// LeaderMatrix matriz semanal por líder.
func (uc *ComplianceUseCase) LeaderMatrix(ctx context.Context, in dto.MatrixQuery) (*dto.MatrixResponse, error) {
	q, err := uc.parseQuery(in)
	if err != nil {
		return nil, err
	}
	snap := uc.load(ctx, "leaders")
	m, err := uc.builder.Leaders(q, uc.leaders, snap.events, snap.users)
	if err != nil {
		return nil, err
	}
	return toMatrixResponse(q, m, snap.degraded), nil
}

// MissingLeaders líderes sin checklist de producción hoy cuyo corte ya pasó.
func (uc *ComplianceUseCase) MissingLeaders(ctx context.Context) (*dto.MissingLeadersResponse, error) {
	now := uc.now().In(uc.loc)
	today := calendar.Civil(now)
	snap := uc.load(ctx, "missing-leaders")

	todays := make([]*entity.ComplianceEvent, 0, len(snap.events))
	for _, ev := range snap.events {
		if ev.LocalDate(uc.loc).Equal(today) {
			todays = append(todays, ev)
		}
	}
	return &dto.MissingLeadersResponse{
		Date:     today.Format(calendar.DateLayout),
		Time:     now.Format("15:04"),
		Names:    shift.DetectMissingLeaders(snap.users, todays, now, uc.leaders),
		Degraded: snap.degraded,
	}, nil
}

func (uc *ComplianceUseCase) parseQuery(in dto.MatrixQuery) (compliance.Query, error) {
	sel := strings.TrimSpace(in.Week)
	if sel == "" {
		sel = calendar.CurrentWeek(uc.now().In(uc.loc))
	}
	year, week, err := calendar.ParseWeekSelector(sel)
	if err != nil {
		return compliance.Query{}, err
	}
	q := compliance.Query{
		Year:  year,
		Week:  week,
		Shift: strings.ToUpper(strings.TrimSpace(in.Shift)),
		Kind:  entity.EventKind(strings.ToUpper(strings.TrimSpace(in.Kind))),
	}
	if q.Shift == "" {
		q.Shift = compliance.ShiftAll
	}
	if q.Kind == "" {
		q.Kind = entity.KindProduction
	}
	return q, nil
}

func toMatrixResponse(q compliance.Query, m compliance.Matrix, degraded bool) *dto.MatrixResponse {
	out := &dto.MatrixResponse{
		Week:  calendar.FormatWeekSelector(m.Year, m.Week),
		Shift: q.Shift,
		Kind:  string(q.Kind),
		Days:  make([]string, 0, len(m.Days)),
		Rows:  make([]dto.MatrixRowDTO, 0, len(m.Rows)),
		Summary: dto.MatrixSummaryDTO{
			OK:             m.Summary.OK,
			NG:             m.Summary.NG,
			Pending:        m.Summary.Pending,
			Total:          m.Summary.Total,
			ComplianceRate: m.Summary.ComplianceRate,
		},
		Degraded: degraded,
	}
	for _, d := range m.Days {
		out.Days = append(out.Days, d.Format(calendar.DateLayout))
	}
	for _, r := range m.Rows {
		row := dto.MatrixRowDTO{EntityID: r.EntityID, EntityLabel: r.EntityLabel, Cells: make([]dto.CellDTO, 0, len(r.Cells))}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, dto.CellDTO{
				Date:     c.Date.Format(calendar.DateLayout),
				Status:   string(c.Status),
				Label:    c.Label(),
				EventIDs: c.EventIDs,
			})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
