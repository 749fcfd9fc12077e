package access_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

func newResolver(t *testing.T, perms ...entity.PermissionTuple) *access.Resolver {
	t.Helper()
	table, err := access.DefaultTable()
	require.NoError(t, err, "la tabla embebida debe ser válida")
	return access.NewResolver(table, perms)
}

func user(role string) entity.User {
	return entity.User{Matricula: "1001", Name: "Fulano", Role: role, Shift: entity.ShiftFirst}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanActOnSector
// ──────────────────────────────────────────────────────────────────────────────

func TestCanActOnSector_DiretorActuaEnCualquierSector(t *testing.T) {
	r := newResolver(t)
	for _, sector := range []string{"MANUTENÇÃO", "QUALIDADE", "SMD 2", "LOGÍSTICA", ""} {
		assert.True(t, r.CanActOnSector(user("Diretor"), sector), "sector %q", sector)
	}
}

func TestCanActOnSector_Manutencao(t *testing.T) {
	r := newResolver(t)
	assert.True(t, r.CanActOnSector(user("TÉC. MANUTENÇÃO"), "MANUTENÇÃO"))
	assert.False(t, r.CanActOnSector(user("LÍDER DE PRODUÇÃO"), "MANUTENÇÃO"))
}

func TestCanActOnSector_TablaPorSector(t *testing.T) {
	r := newResolver(t)
	cases := []struct {
		role   string
		sector string
		want   bool
	}{
		{"INSPETORA DE QUALIDADE", "QUALIDADE", true},
		{"Inspetor CQ", "Qualidade", true},
		{"TÉCNICO DE REPARO", "ÁREA TÉCNICA", true},
		{"tecnico de reparo", "AREA TECNICA", true},
		{"MECÂNICO", "MANUTENÇÃO", true},
		{"LÍDER DE LINHA", "PRODUÇÃO", true},
		{"ENCARREGADO", "PRODUÇÃO", true},
		{"PQC", "SMD", true},
		{"PQC", "SMD LINHA 3", true},
		{"PQC", "QUALIDADE", false},
		{"OPERADOR", "PRODUÇÃO", false},
		{"MECÂNICO", "QUALIDADE", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, r.CanActOnSector(user(c.role), c.sector), "%s en %s", c.role, c.sector)
	}
}

func TestCanActOnSector_RolContieneElSector(t *testing.T) {
	r := newResolver(t)
	assert.True(t, r.CanActOnSector(user("ANALISTA DE LOGÍSTICA"), "LOGÍSTICA"))
	assert.False(t, r.CanActOnSector(user("ANALISTA DE LOGÍSTICA"), ""), "sector vacío no concede por contención")
}

func TestCanActOnSector_SuperusuarioYAdmin(t *testing.T) {
	r := newResolver(t)
	assert.True(t, r.CanActOnSector(user("Coordenadora de Produção"), "QUALIDADE"))
	assert.True(t, r.CanActOnSector(user("ANALISTA DE TI"), "QUALIDADE"))
	assert.False(t, r.CanActOnSector(user("PRATICANTE"), "QUALIDADE"), "TI dentro de una palabra no es superusuario")

	admin := user("OPERADOR")
	admin.IsAdmin = true
	assert.True(t, r.CanActOnSector(admin, "QUALIDADE"))
}

// ──────────────────────────────────────────────────────────────────────────────
// HasPermission
// ──────────────────────────────────────────────────────────────────────────────

func TestHasPermission_SuperadminVeTodo(t *testing.T) {
	r := newResolver(t, entity.PermissionTuple{Role: "Admin", Module: entity.ModuleAdmin, Allowed: false})

	byMatricula := entity.User{Matricula: "admin", Role: "OPERADOR"}
	byRole := entity.User{Matricula: "9", Role: "Admin"}
	byFlag := entity.User{Matricula: "9", Role: "OPERADOR", IsAdmin: true}
	for _, u := range []entity.User{byMatricula, byRole, byFlag} {
		for _, m := range entity.AllModules {
			assert.True(t, r.HasPermission(u, m), "%+v %s", u, m)
		}
	}
}

func TestHasPermission_TuplaExplicitaPrevalece(t *testing.T) {
	r := newResolver(t,
		entity.PermissionTuple{Role: "LÍDER DE PRODUÇÃO", Module: entity.ModuleChecklist, Allowed: true},
		entity.PermissionTuple{Role: "LÍDER DE PRODUÇÃO", Module: entity.ModuleScrap, Allowed: false},
	)
	u := user("Líder de Produção")
	assert.True(t, r.HasPermission(u, entity.ModuleChecklist))
	assert.False(t, r.HasPermission(u, entity.ModuleScrap), "la tupla niega aunque SCRAP esté en la lista por defecto")
}

func TestHasPermission_ListaPorDefecto(t *testing.T) {
	r := newResolver(t)
	u := user("OPERADOR")
	assert.True(t, r.HasPermission(u, entity.ModuleLineStop))
	assert.True(t, r.HasPermission(u, entity.ModuleMeeting))
	assert.True(t, r.HasPermission(u, entity.ModuleScrap))
	assert.False(t, r.HasPermission(u, entity.ModuleChecklist))
	assert.False(t, r.HasPermission(u, entity.ModuleAdmin))
	assert.Equal(t, []entity.Module{entity.ModuleMeeting, entity.ModuleLineStop, entity.ModuleScrap}, r.VisibleModules(u))
	assert.Equal(t, r.VisibleModules(u), r.DefaultAllow())
}

func TestIsLeader(t *testing.T) {
	r := newResolver(t)
	assert.True(t, r.IsLeader("LÍDER DE PRODUÇÃO"))
	assert.True(t, r.IsLeader("lider turno 2"))
	assert.True(t, r.IsLeader("Encarregado"))
	assert.False(t, r.IsLeader("OPERADOR"))
}

func TestRegistry_ReloadPublicaNuevaInstantanea(t *testing.T) {
	table, err := access.DefaultTable()
	require.NoError(t, err)
	reg := access.NewRegistry(table, nil)
	u := user("OPERADOR")

	before := reg.Current()
	assert.False(t, before.HasPermission(u, entity.ModuleChecklist))

	reg.Reload([]entity.PermissionTuple{{Role: "OPERADOR", Module: entity.ModuleChecklist, Allowed: true}})
	assert.True(t, reg.Current().HasPermission(u, entity.ModuleChecklist))
	assert.False(t, before.HasPermission(u, entity.ModuleChecklist), "la instantánea anterior no cambia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla YAML
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadTable_ArchivoReemplazaLaEmbebida(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
superusers: [DIRETOR]
leaders: [LÍDER]
default_allow: [meeting]
sectors:
  - sector: LOGÍSTICA
    keywords: [EMPILHADEIRA]
`), 0o600))

	table, err := access.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []entity.Module{entity.ModuleMeeting}, table.DefaultAllow)
	assert.Equal(t, access.MatchExact, table.Sectors[0].Match)

	r := access.NewResolver(table, nil)
	assert.True(t, r.CanActOnSector(user("OPERADOR DE EMPILHADEIRA"), "Logística"))
	assert.False(t, r.HasPermission(user("OPERADOR"), entity.ModuleScrap))
}

func TestParseTable_Invalida(t *testing.T) {
	_, err := access.ParseTable([]byte("default_allow: [PAYROLL]"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = access.ParseTable([]byte("sectors:\n  - sector: X\n    match: regex\n"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "TEC. MANUTENCAO", access.Normalize("  Téc.   Manutenção "))
	assert.Equal(t, "AREA TECNICA", access.Normalize("Área Técnica"))
}
