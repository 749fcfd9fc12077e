package linestop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

const minutesPerDay = 24 * 60

// TotalTime calcula (fin - inicio) mod 24h en formato HH:MM; una diferencia negativa cruza la medianoche.
func TotalTime(start, end string) (string, error) {
	s, err := parseClock(start)
	if err != nil {
		return "", err
	}
	e, err := parseClock(end)
	if err != nil {
		return "", err
	}
	diff := ((e-s)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", diff/60, diff%60), nil
}

// DowntimeHours horas de parada (2 decimales) a partir del total HH:MM; cero si no hay total.
func DowntimeHours(p entity.LineStopPayload) decimal.Decimal {
	minutes, err := parseClock(p.TotalTime)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

func parseClock(v string) (int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: hora %q no tiene formato HH:MM", domain.ErrValidation, v)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: hora %q fuera de rango", domain.ErrValidation, v)
	}
	return h*60 + m, nil
}
