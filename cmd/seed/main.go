// seed importa el padrón de operadores (CSV de RRHH) a la tabla users y, si la tabla
// permissions está vacía, escribe las tuplas iniciales por rol.
//
// Uso: go run ./cmd/seed [ruta/padrao.csv]
// Por defecto busca padrao.csv en el directorio actual.
// Los usuarios nuevos reciben la matrícula como contraseña inicial; los existentes
// solo actualizan nombre, función y turno.
package main

import (
	"context"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/infrastructure/postgres"
	"github.com/jhoicas/checklist-api/internal/infrastructure/roster"
	"github.com/jhoicas/checklist-api/pkg/config"
	"github.com/jhoicas/checklist-api/pkg/logger"
)

// defaultPermissions tuplas iniciales. Los módulos de default_allow de la tabla de acceso
// no necesitan tupla.
var defaultPermissions = []entity.PermissionTuple{
	{Role: "LÍDER DE PRODUÇÃO", Module: entity.ModuleChecklist, Allowed: true},
	{Role: "ENCARREGADO", Module: entity.ModuleChecklist, Allowed: true},
	{Role: "TÉC. MANUTENÇÃO", Module: entity.ModuleMaintenance, Allowed: true},
	{Role: "INSPETORA DE QUALIDADE", Module: entity.ModuleAudit, Allowed: true},
	{Role: "SUPERVISOR", Module: entity.ModuleChecklist, Allowed: true},
	{Role: "SUPERVISOR", Module: entity.ModuleManagement, Allowed: true},
	{Role: "COORDENADOR", Module: entity.ModuleManagement, Allowed: true},
	{Role: "GERENTE", Module: entity.ModuleManagement, Allowed: true},
	{Role: "DIRETOR", Module: entity.ModuleManagement, Allowed: true},
}

func main() {
	path := "padrao.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir padrón")
	}
	defer f.Close()

	entries, skipped, err := roster.Read(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer padrón")
	}
	for _, s := range skipped {
		log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("fila descartada")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := postgres.NewUserRepository(pool)
	var created, updated int
	for _, e := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.Matricula), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		isNew, err := users.UpsertRoster(ctx, &entity.User{
			Matricula:    e.Matricula,
			Name:         e.Name,
			Role:         e.Role,
			Shift:        e.Shift,
			PasswordHash: string(hash),
			Status:       entity.UserStatusActive,
		})
		if err != nil {
			log.Fatal().Err(err).Str("matricula", e.Matricula).Msg("guardar usuario")
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	perms := postgres.NewPermissionRepository(pool)
	current, err := perms.FetchPermissions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("leer permisos")
	}
	if len(current) == 0 {
		if err := perms.SavePermissions(ctx, defaultPermissions); err != nil {
			log.Fatal().Err(err).Msg("guardar permisos iniciales")
		}
		log.Info().Int("tuples", len(defaultPermissions)).Msg("permisos iniciales escritos")
	}

	log.Info().
		Int("created", created).
		Int("updated", updated).
		Int("skipped", len(skipped)).
		Msg("padrón importado")
}
