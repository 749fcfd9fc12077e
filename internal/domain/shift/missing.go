package shift

import (
	"time"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// LeaderMatcher decide si un rol es de liderazgo (lo implementa *access.Resolver).
type LeaderMatcher interface {
	IsLeader(role string) bool
}

// DetectMissingLeaders devuelve los nombres de los líderes sin checklist de producción hoy
// cuyo horario de corte ya pasó. todays debe contener solo eventos de hoy (hora local);
// now es la hora local de la planta. No guarda estado: se recalcula en cada consulta.
func DetectMissingLeaders(users []*entity.User, todays []*entity.ComplianceEvent, now time.Time, leaders LeaderMatcher) []string {
	done := make(map[string]bool, len(todays))
	for _, ev := range todays {
		if ev.EffectiveKind() == entity.KindProduction {
			done[ev.SubjectID] = true
		}
	}

	minute := MinuteOfDay(now)
	missing := []string{}
	for _, u := range users {
		if u == nil || u.Status == entity.UserStatusInactive || !leaders.IsLeader(u.Role) {
			continue
		}
		if done[u.Matricula] {
			continue
		}
		if CutoffPassed(OfUser(u), minute) {
			missing = append(missing, u.Name)
		}
	}
	return missing
}
