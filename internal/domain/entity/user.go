package entity

import "time"

// SuperadminMatricula matrícula reservada del superadministrador.
const SuperadminMatricula = "admin"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Turnos de la planta.
const (
	ShiftFirst  = "1"
	ShiftSecond = "2"
)

// User representa un operador, líder o gestor de la planta.
type User struct {
	Matricula    string // identificador único (matrícula de RRHH)
	Name         string
	Role         string // texto libre, ej. "LÍDER DE PRODUÇÃO", "TÉC. MANUTENÇÃO"
	Shift        string // "1" | "2" | "" (legado: turno dentro del rol)
	IsAdmin      bool
	PasswordHash string // bcrypt hash
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
