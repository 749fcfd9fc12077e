// Package calendar resuelve el selector de semana (año, semana) a las fechas de la planta.
//
// La fórmula solo es aproximadamente ISO en los bordes de año (la semana 1 a veces
// empieza en diciembre anterior). Se usa igual para escribir y para consultar, así que
// los reportes históricos son consistentes entre sí.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/checklist-api/internal/domain"
)

// WorkDays días de la semana productiva (lunes a sábado). El domingo nunca es columna.
const WorkDays = 6

// DateLayout formato de fecha civil usado en claves y respuestas.
const DateLayout = "2006-01-02"

// Civil trunca t a su fecha (en la zona de t) y la devuelve como medianoche UTC.
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOf devuelve el año y la semana del jueves de la semana de d.
func WeekOf(d time.Time) (year, week int) {
	day := Civil(d)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7
	}
	thursday := day.AddDate(0, 0, 4-wd)
	start := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(start).Hours() / 24)
	return thursday.Year(), (days + 7) / 7
}

// WeekNumber asigna d a la semana que contiene su jueves.
func WeekNumber(d time.Time) int {
	_, w := WeekOf(d)
	return w
}

// MondayOf calcula 1 de enero + 7*(semana-1) y retrocede al lunes de esa semana.
func MondayOf(year, week int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(week-1))
	offset := 1 - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		offset = -6
	}
	return d.AddDate(0, 0, offset)
}

// WeekDates devuelve lunes a sábado de la semana seleccionada.
func WeekDates(year, week int) []time.Time {
	monday := MondayOf(year, week)
	out := make([]time.Time, WorkDays)
	for i := range out {
		out[i] = monday.AddDate(0, 0, i)
	}
	return out
}

// InWeek informa si la fecha civil de d cae entre el lunes y el domingo de la semana seleccionada.
func InWeek(d time.Time, year, week int) bool {
	day := Civil(d)
	monday := MondayOf(year, week)
	return !day.Before(monday) && day.Before(monday.AddDate(0, 0, 7))
}

// WeekFor devuelve el (año, semana) cuyas fechas de MondayOf contienen d.
// Parte de WeekOf y busca en los años vecinos cuando la aproximación del borde de año lo desplaza.
func WeekFor(d time.Time) (year, week int) {
	year, week = WeekOf(d)
	if InWeek(d, year, week) {
		return year, week
	}
	for _, y := range []int{year, year - 1, year + 1} {
		for w := 1; w <= 53; w++ {
			if InWeek(d, y, w) {
				return y, w
			}
		}
	}
	return year, week
}

// ParseWeekSelector interpreta "YYYY-Www" (ej. "2024-W08").
func ParseWeekSelector(s string) (year, week int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-W")
	if len(parts) != 2 || len(parts[0]) != 4 {
		return 0, 0, fmt.Errorf("%w: semana %q no tiene formato YYYY-Www", domain.ErrValidation, s)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: año %q", domain.ErrValidation, parts[0])
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil || week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("%w: semana %q fuera de rango", domain.ErrValidation, parts[1])
	}
	return year, week, nil
}

// FormatWeekSelector produce "YYYY-Www".
func FormatWeekSelector(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// CurrentWeek selector de la semana que contiene now (en la zona de now).
func CurrentWeek(now time.Time) string {
	return FormatWeekSelector(WeekFor(now))
}
