package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekDates_SeisDiasConsecutivosDesdeLunes(t *testing.T) {
	for year := 2019; year <= 2030; year++ {
		for week := 1; week <= 53; week++ {
			days := calendar.WeekDates(year, week)
			require.Len(t, days, 6)
			assert.Equal(t, time.Monday, days[0].Weekday(), "%d-W%02d", year, week)
			for i := 1; i < len(days); i++ {
				assert.Equal(t, 24*time.Hour, days[i].Sub(days[i-1]), "%d-W%02d día %d", year, week, i)
			}
			assert.Equal(t, time.Saturday, days[5].Weekday())
		}
	}
}

func TestWeekNumber_Semana8De2024(t *testing.T) {
	assert.Equal(t, 8, calendar.WeekNumber(date(2024, time.February, 19)))
	assert.Equal(t, 8, calendar.WeekNumber(date(2024, time.February, 24)))
	assert.Equal(t, 9, calendar.WeekNumber(date(2024, time.February, 26)))
	assert.Equal(t, date(2024, time.February, 19), calendar.MondayOf(2024, 8))
}

func TestWeekNumber_UsaElJuevesDeLaSemana(t *testing.T) {
	// 30/12/2024 es lunes; su jueves es 02/01/2025.
	year, week := calendar.WeekOf(date(2024, time.December, 30))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 1, week)

	// 01/01/2021 es viernes; su jueves es 31/12/2020.
	year, week = calendar.WeekOf(date(2021, time.January, 1))
	assert.Equal(t, 2020, year)
	assert.Equal(t, 53, week)
}

func TestMondayOf_ContieneLaFechaFueraDeLosBordes(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026} {
		for d := date(year, time.January, 8); d.Before(date(year, time.December, 21)); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == time.Sunday {
				continue
			}
			monday := calendar.MondayOf(year, calendar.WeekNumber(d))
			assert.False(t, d.Before(monday), "%s antes de %s", d.Format(calendar.DateLayout), monday.Format(calendar.DateLayout))
			assert.False(t, d.After(monday.AddDate(0, 0, 5)), "%s después del sábado de %s", d.Format(calendar.DateLayout), monday.Format(calendar.DateLayout))
		}
	}
}

func TestMondayOf_DomingoRetrocedeSeisDias(t *testing.T) {
	// 2023: 1 de enero + 7 = 08/01/2023, domingo.
	assert.Equal(t, date(2023, time.January, 2), calendar.MondayOf(2023, 2))
}

func TestWeekFor_RoundTripEnAniosDesplazados(t *testing.T) {
	for _, year := range []int{2020, 2021, 2022, 2027} {
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
			y, w := calendar.WeekFor(d)
			assert.True(t, calendar.InWeek(d, y, w), "%s -> %d-W%02d", d.Format(calendar.DateLayout), y, w)
		}
	}
}

func TestInWeek(t *testing.T) {
	assert.True(t, calendar.InWeek(date(2024, time.February, 19), 2024, 8))
	assert.True(t, calendar.InWeek(date(2024, time.February, 25), 2024, 8))
	assert.False(t, calendar.InWeek(date(2024, time.February, 26), 2024, 8))
	assert.False(t, calendar.InWeek(date(2024, time.February, 18), 2024, 8))
}

func TestParseWeekSelector(t *testing.T) {
	year, week, err := calendar.ParseWeekSelector("2024-W08")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 8, week)

	for _, bad := range []string{"", "2024-08", "24-W08", "2024-W00", "2024-W54", "2024-Wxx", "abcd-W01"} {
		_, _, err := calendar.ParseWeekSelector(bad)
		assert.True(t, errors.Is(err, domain.ErrValidation), "selector %q", bad)
	}
}

func TestFormatWeekSelector(t *testing.T) {
	assert.Equal(t, "2024-W08", calendar.FormatWeekSelector(2024, 8))
	assert.Equal(t, "2024-W08", calendar.CurrentWeek(time.Date(2024, time.February, 21, 15, 0, 0, 0, time.UTC)))
}
