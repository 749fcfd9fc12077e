// Package compliance construye la matriz de cumplimiento semanal: una fila por línea o
// por líder, una columna por día productivo (lunes a sábado) y en cada celda OK, NG o PENDING.
package compliance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/calendar"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/shift"
)

// CellStatus clasificación de una celda.
type CellStatus string

const (
	StatusOK      CellStatus = "OK"
	StatusNG      CellStatus = "NG"
	StatusPending CellStatus = "PENDING"
)

// ShiftAll filtro de turno que no restringe.
const ShiftAll = "ALL"

// Query selector de la matriz.
type Query struct {
	Year  int
	Week  int
	Shift string           // ALL | "1" | "2"
	Kind  entity.EventKind // PRODUCTION | MAINTENANCE
}

func (q Query) validate() error {
	switch q.Kind {
	case entity.KindProduction, entity.KindMaintenance:
	default:
		return fmt.Errorf("%w: tipo %q no admitido en la matriz", domain.ErrValidation, q.Kind)
	}
	switch q.Shift {
	case ShiftAll, entity.ShiftFirst, entity.ShiftSecond:
	default:
		return fmt.Errorf("%w: turno %q", domain.ErrValidation, q.Shift)
	}
	if q.Week < 1 || q.Week > 53 {
		return fmt.Errorf("%w: semana %d", domain.ErrValidation, q.Week)
	}
	return nil
}

// Cell intersección (entidad, día).
type Cell struct {
	Date     time.Time
	Status   CellStatus
	Labels   []string // nombres de los autores, en el orden en que llegaron los eventos
	EventIDs []string
}

// Label concatena los nombres de la celda.
func (c Cell) Label() string {
	return strings.Join(c.Labels, ", ")
}

// Row fila de la matriz.
type Row struct {
	EntityID    string
	EntityLabel string
	Cells       []Cell
}

// Summary totales de la matriz. ComplianceRate = celdas ejecutadas (OK+NG) / total * 100.
type Summary struct {
	OK             int
	NG             int
	Pending        int
	Total          int
	ComplianceRate decimal.Decimal
}

// Matrix resultado para la interfaz.
type Matrix struct {
	Year    int
	Week    int
	Days    []time.Time
	Rows    []Row
	Summary Summary
}

// LeaderMatcher decide si un rol es de liderazgo.
type LeaderMatcher interface {
	IsLeader(role string) bool
}

// Builder arma matrices sobre una instantánea ya cargada en memoria.
type Builder struct {
	loc *time.Location
}

// NewBuilder crea el constructor; loc es la zona horaria de la planta.
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{loc: loc}
}

type rowSpec struct {
	id    string
	label string
}

// Lines matriz por línea de producción.
func (b *Builder) Lines(q Query, lines []string, events []*entity.ComplianceEvent, users []*entity.User) (Matrix, error) {
	if err := q.validate(); err != nil {
		return Matrix{}, err
	}
	specs := make([]rowSpec, 0, len(lines))
	for _, l := range lines {
		specs = append(specs, rowSpec{id: lineKey(l), label: strings.TrimSpace(l)})
	}
	return b.build(q, specs, events, users, func(ev *entity.ComplianceEvent) string { return lineKey(ev.Line) }), nil
}

// Leaders matriz por líder: solo usuarios con rol de liderazgo (y del turno filtrado, si aplica).
func (b *Builder) Leaders(q Query, leaders LeaderMatcher, events []*entity.ComplianceEvent, users []*entity.User) (Matrix, error) {
	if err := q.validate(); err != nil {
		return Matrix{}, err
	}
	var specs []rowSpec
	for _, u := range users {
		if u == nil || !leaders.IsLeader(u.Role) {
			continue
		}
		if q.Shift != ShiftAll && shift.OfUser(u) != q.Shift {
			continue
		}
		specs = append(specs, rowSpec{id: u.Matricula, label: u.Name})
	}
	return b.build(q, specs, events, users, func(ev *entity.ComplianceEvent) string { return ev.SubjectID }), nil
}

func (b *Builder) build(q Query, specs []rowSpec, events []*entity.ComplianceEvent, users []*entity.User, entityOf func(*entity.ComplianceEvent) string) Matrix {
	days := calendar.WeekDates(q.Year, q.Week)
	byID := indexUsers(users)

	// entidad -> fecha -> eventos, preservando el orden de llegada
	cells := make(map[string]map[string][]*entity.ComplianceEvent)
	for _, ev := range events {
		if !b.matches(q, ev, byID) {
			continue
		}
		key := entityOf(ev)
		day := ev.LocalDate(b.loc).Format(calendar.DateLayout)
		if cells[key] == nil {
			cells[key] = make(map[string][]*entity.ComplianceEvent)
		}
		cells[key][day] = append(cells[key][day], ev)
	}

	m := Matrix{Year: q.Year, Week: q.Week, Days: days, Rows: make([]Row, 0, len(specs))}
	for _, spec := range specs {
		row := Row{EntityID: spec.id, EntityLabel: spec.label, Cells: make([]Cell, 0, len(days))}
		for _, d := range days {
			cell := classify(d, cells[spec.id][d.Format(calendar.DateLayout)], byID)
			row.Cells = append(row.Cells, cell)
			m.Summary.add(cell.Status)
		}
		m.Rows = append(m.Rows, row)
	}
	m.Summary.finish()
	return m
}

// matches aplica los filtros de tipo, semana y turno.
func (b *Builder) matches(q Query, ev *entity.ComplianceEvent, byID map[string]*entity.User) bool {
	if ev == nil || ev.EffectiveKind() != q.Kind {
		return false
	}
	if !calendar.InWeek(ev.LocalDate(b.loc), q.Year, q.Week) {
		return false
	}
	if q.Shift != ShiftAll && ownerShift(ev, byID) != q.Shift {
		return false
	}
	return true
}

// classify: sin eventos PENDING; algún evento con defectos NG; si no, OK.
func classify(day time.Time, events []*entity.ComplianceEvent, byID map[string]*entity.User) Cell {
	cell := Cell{Date: day, Status: StatusPending}
	if len(events) == 0 {
		return cell
	}
	cell.Status = StatusOK
	for _, ev := range events {
		if ev.DefectCount > 0 {
			cell.Status = StatusNG
		}
		cell.Labels = append(cell.Labels, displayName(ev, byID))
		cell.EventIDs = append(cell.EventIDs, ev.ID)
	}
	return cell
}

// ownerShift turno del dueño del evento: primero el usuario (unido por matrícula),
// luego el propio evento y, para registros antiguos, el texto del rol.
func ownerShift(ev *entity.ComplianceEvent, byID map[string]*entity.User) string {
	if u := byID[ev.SubjectID]; u != nil && strings.TrimSpace(u.Shift) != "" {
		return strings.TrimSpace(u.Shift)
	}
	if s := strings.TrimSpace(ev.Shift); s != "" {
		return s
	}
	if u := byID[ev.SubjectID]; u != nil {
		if s := shift.FromLegacyRole(u.Role); s != "" {
			return s
		}
	}
	return shift.FromLegacyRole(ev.SubjectRole)
}

func displayName(ev *entity.ComplianceEvent, byID map[string]*entity.User) string {
	if ev.SubjectName != "" {
		return ev.SubjectName
	}
	if u := byID[ev.SubjectID]; u != nil && u.Name != "" {
		return u.Name
	}
	return ev.SubjectID
}

func indexUsers(users []*entity.User) map[string]*entity.User {
	out := make(map[string]*entity.User, len(users))
	for _, u := range users {
		if u != nil {
			out[u.Matricula] = u
		}
	}
	return out
}

func lineKey(line string) string {
	return strings.ToUpper(strings.TrimSpace(line))
}

func (s *Summary) add(st CellStatus) {
	s.Total++
	switch st {
	case StatusOK:
		s.OK++
	case StatusNG:
		s.NG++
	default:
		s.Pending++
	}
}

func (s *Summary) finish() {
	if s.Total == 0 {
		s.ComplianceRate = decimal.Zero
		return
	}
	s.ComplianceRate = decimal.NewFromInt(int64(s.OK + s.NG)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(s.Total))).
		Round(2)
}

// DistinctLines líneas presentes en los eventos, ordenadas, para cuando no hay lista configurada.
func DistinctLines(events []*entity.ComplianceEvent, kind entity.EventKind) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range events {
		if ev == nil || ev.EffectiveKind() != kind {
			continue
		}
		l := strings.TrimSpace(ev.Line)
		if l == "" || seen[lineKey(l)] {
			continue
		}
		seen[lineKey(l)] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
