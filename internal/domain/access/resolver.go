// Package access resuelve qué puede ver y hacer cada usuario: módulos de la interfaz
// y sectores sobre los que puede justificar paradas de línea. Ambas decisiones salen
// de la misma tabla (palabras clave por sector, superusuarios y permisos por defecto).
package access

import (
	"strings"
	"sync/atomic"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

type compiledSector struct {
	sector   string
	prefix   bool
	keywords []string
}

type permKey struct {
	role   string
	module entity.Module
}

// Resolver instantánea inmutable de la tabla y las tuplas de permisos.
// Es segura para uso concurrente.
type Resolver struct {
	superusers   []string
	leaders      []string
	defaultAllow map[entity.Module]bool
	sectors      []compiledSector
	perms        map[permKey]bool
}

// NewResolver compila la tabla y las tuplas (rol, módulo, permitido).
func NewResolver(t Table, perms []entity.PermissionTuple) *Resolver {
	r := &Resolver{
		superusers:   normalizeAll(t.Superusers),
		leaders:      normalizeAll(t.Leaders),
		defaultAllow: make(map[entity.Module]bool, len(t.DefaultAllow)),
		perms:        make(map[permKey]bool, len(perms)),
	}
	for _, m := range t.DefaultAllow {
		r.defaultAllow[m] = true
	}
	for _, s := range t.Sectors {
		r.sectors = append(r.sectors, compiledSector{
			sector:   Normalize(s.Sector),
			prefix:   s.Match == MatchPrefix,
			keywords: normalizeAll(s.Keywords),
		})
	}
	for _, p := range perms {
		r.perms[permKey{role: Normalize(p.Role), module: p.Module}] = p.Allowed
	}
	return r
}

// IsSuperadmin matrícula "admin", rol "Admin" o bandera de administrador.
func (r *Resolver) IsSuperadmin(u entity.User) bool {
	return u.IsAdmin ||
		u.Matricula == entity.SuperadminMatricula ||
		strings.EqualFold(strings.TrimSpace(u.Role), "admin")
}

// HasPermission decide la visibilidad de un módulo: superadmin ve todo; si existe una
// tupla explícita para el rol se usa; si no, la lista por defecto.
func (r *Resolver) HasPermission(u entity.User, m entity.Module) bool {
	if r.IsSuperadmin(u) {
		return true
	}
	if allowed, ok := r.perms[permKey{role: Normalize(u.Role), module: m}]; ok {
		return allowed
	}
	return r.defaultAllow[m]
}

// VisibleModules módulos que la interfaz debe mostrar al usuario.
func (r *Resolver) VisibleModules(u entity.User) []entity.Module {
	var out []entity.Module
	for _, m := range entity.AllModules {
		if r.HasPermission(u, m) {
			out = append(out, m)
		}
	}
	return out
}

// DefaultAllow módulos concedidos cuando el rol no tiene tupla explícita.
func (r *Resolver) DefaultAllow() []entity.Module {
	var out []entity.Module
	for _, m := range entity.AllModules {
		if r.defaultAllow[m] {
			out = append(out, m)
		}
	}
	return out
}

// CanActOnSector decide si u puede justificar paradas del sector. La primera regla que aplica gana:
//  1. rol de superusuario o bandera de administrador;
//  2. el rol contiene literalmente el nombre del sector;
//  3. el rol coincide con alguna palabra clave del sector en la tabla;
//  4. en otro caso, se niega.
func (r *Resolver) CanActOnSector(u entity.User, sector string) bool {
	role := Normalize(u.Role)
	if u.IsAdmin || containsAny(role, r.superusers) {
		return true
	}
	sec := Normalize(sector)
	if sec == "" {
		return false
	}
	if strings.Contains(role, sec) {
		return true
	}
	for _, s := range r.sectors {
		if s.matches(sec) && containsAny(role, s.keywords) {
			return true
		}
	}
	return false
}

func (s compiledSector) matches(sector string) bool {
	if s.prefix {
		return strings.HasPrefix(sector, s.sector)
	}
	return sector == s.sector
}

// IsLeader informa si el rol pertenece al conjunto de liderazgo.
func (r *Resolver) IsLeader(role string) bool {
	return containsAny(Normalize(role), r.leaders)
}

// Registry mantiene la instantánea vigente. Guardar permisos construye una nueva
// y la publica de forma atómica; los lectores nunca ven una tabla a medio cargar.
type Registry struct {
	table   Table
	current atomic.Pointer[Resolver]
}

// NewRegistry crea el registro con la tabla y las tuplas iniciales.
func NewRegistry(t Table, perms []entity.PermissionTuple) *Registry {
	reg := &Registry{table: t}
	reg.current.Store(NewResolver(t, perms))
	return reg
}

// Current devuelve la instantánea vigente.
func (g *Registry) Current() *Resolver {
	return g.current.Load()
}

// Reload reemplaza las tuplas de permisos manteniendo la tabla de palabras clave.
func (g *Registry) Reload(perms []entity.PermissionTuple) {
	g.current.Store(NewResolver(g.table, perms))
}

// HasPermission consulta la instantánea vigente.
func (g *Registry) HasPermission(u entity.User, m entity.Module) bool {
	return g.Current().HasPermission(u, m)
}

// CanActOnSector consulta la instantánea vigente.
func (g *Registry) CanActOnSector(u entity.User, sector string) bool {
	return g.Current().CanActOnSector(u, sector)
}

// IsLeader consulta la instantánea vigente.
func (g *Registry) IsLeader(role string) bool {
	return g.Current().IsLeader(role)
}

// VisibleModules consulta la instantánea vigente.
func (g *Registry) VisibleModules(u entity.User) []entity.Module {
	return g.Current().VisibleModules(u)
}
