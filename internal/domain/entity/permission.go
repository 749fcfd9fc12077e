package entity

import "strings"

// Module es una sección de la aplicación sujeta a permisos.
type Module string

// Conjunto cerrado de módulos (deben coincidir con el CHECK de la tabla permissions).
const (
	ModuleChecklist   Module = "CHECKLIST"
	ModuleMeeting     Module = "MEETING"
	ModuleMaintenance Module = "MAINTENANCE"
	ModuleAudit       Module = "AUDIT"
	ModuleAdmin       Module = "ADMIN"
	ModuleLineStop    Module = "LINE_STOP"
	ModuleManagement  Module = "MANAGEMENT"
	ModuleScrap       Module = "SCRAP"
)

// AllModules en el orden en que la interfaz los presenta.
var AllModules = []Module{
	ModuleChecklist, ModuleMeeting, ModuleMaintenance, ModuleAudit,
	ModuleAdmin, ModuleLineStop, ModuleManagement, ModuleScrap,
}

// ParseModule valida un nombre de módulo (insensible a mayúsculas).
func ParseModule(s string) (Module, bool) {
	m := Module(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllModules {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// PermissionTuple concede o niega un módulo a un rol.
type PermissionTuple struct {
	Role    string
	Module  Module
	Allowed bool
}
