// Package shift agrupa las reglas de turno: horarios de corte, resolución del turno
// de un operador y el detector de líderes que no ejecutaron el checklist.
package shift

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// Minutos del día (hora local de la planta) a partir de los cuales falta el checklist.
const (
	FirstCutoff  = 7*60 + 30  // 07:30
	SecondCutoff = 17*60 + 20 // 17:20
	// SecondWindowEnd el turno 2 cruza la medianoche: la ventana sigue abierta hasta las 08:00.
	SecondWindowEnd = 8 * 60
)

var legacyShiftPattern = regexp.MustCompile(`(?i)(?:turno\s*([12])\b|\b([12])\s*[ºª°o]?\s*turno|\bt([12])\b)`)

// FromLegacyRole extrae el turno de un rol en texto libre ("LÍDER 2º TURNO", "TURNO 1", "LIDER T2").
// Solo para registros antiguos que no guardaban el turno aparte.
func FromLegacyRole(role string) string {
	m := legacyShiftPattern.FindStringSubmatch(role)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// OfUser turno del usuario: el campo propio o, si falta, el del rol legado.
func OfUser(u *entity.User) string {
	if u == nil {
		return ""
	}
	if s := strings.TrimSpace(u.Shift); s != "" {
		return s
	}
	return FromLegacyRole(u.Role)
}

// MinuteOfDay minutos transcurridos desde la medianoche de t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CutoffPassed informa si, al minuto dado, el checklist del turno ya debería existir.
func CutoffPassed(shift string, minute int) bool {
	switch shift {
	case entity.ShiftFirst:
		return minute >= FirstCutoff
	case entity.ShiftSecond:
		return minute >= SecondCutoff || minute < SecondWindowEnd
	default:
		return false
	}
}
