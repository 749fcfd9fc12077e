package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
	"github.com/jhoicas/checklist-api/pkg/logger"
)

// PermissionUseCase administra las tuplas (rol, módulo) y publica cada cambio en el registro
// que consultan el middleware de módulos y el motor de paradas.
type PermissionUseCase struct {
	store    repository.PermissionStore
	registry *access.Registry
	log      *logger.Logger
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(store repository.PermissionStore, registry *access.Registry, log *logger.Logger) *PermissionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PermissionUseCase{store: store, registry: registry, log: log.Component("permissions")}
}

// Load lee las tuplas del almacén y las publica. Si falla, el registro conserva la instantánea anterior.
func (uc *PermissionUseCase) Load(ctx context.Context) error {
	perms, err := uc.store.FetchPermissions(ctx)
	if err != nil {
		return fmt.Errorf("cargar permisos: %w: %w", domain.ErrAdapterUnavailable, err)
	}
	uc.registry.Reload(perms)
	uc.log.Info().Int("tuples", len(perms)).Msg("permisos cargados")
	return nil
}

// List tuplas guardadas, ordenadas por rol y módulo.
func (uc *PermissionUseCase) List(ctx context.Context) (*dto.PermissionsResponse, error) {
	perms, err := uc.store.FetchPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar permisos: %w: %w", domain.ErrAdapterUnavailable, err)
	}
	sort.SliceStable(perms, func(i, j int) bool {
		if perms[i].Role != perms[j].Role {
			return perms[i].Role < perms[j].Role
		}
		return perms[i].Module < perms[j].Module
	})

	out := &dto.PermissionsResponse{
		Permissions:  make([]dto.PermissionDTO, 0, len(perms)),
		Modules:      modulesToStrings(entity.AllModules),
		DefaultAllow: modulesToStrings(uc.registry.Current().DefaultAllow()),
	}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, dto.PermissionDTO{Role: p.Role, Module: string(p.Module), Allowed: p.Allowed})
	}
	return out, nil
}

// Save valida y reemplaza el conjunto completo de tuplas. Una tupla repetida (rol, módulo)
// conserva el último valor.
func (uc *PermissionUseCase) Save(ctx context.Context, in dto.SavePermissionsRequest) error {
	type key struct {
		role   string
		module entity.Module
	}
	index := make(map[key]int, len(in.Permissions))
	perms := make([]entity.PermissionTuple, 0, len(in.Permissions))
	for i, p := range in.Permissions {
		role := strings.TrimSpace(p.Role)
		if role == "" {
			return fmt.Errorf("%w: permiso %d sin rol", domain.ErrValidation, i+1)
		}
		m, ok := entity.ParseModule(p.Module)
		if !ok {
			return fmt.Errorf("%w: módulo %q desconocido", domain.ErrValidation, p.Module)
		}
		k := key{role: access.Normalize(role), module: m}
		if at, dup := index[k]; dup {
			perms[at].Allowed = p.Allowed
			continue
		}
		index[k] = len(perms)
		perms = append(perms, entity.PermissionTuple{Role: role, Module: m, Allowed: p.Allowed})
	}

	if err := uc.store.SavePermissions(ctx, perms); err != nil {
		return storeErr("guardar permisos", err)
	}
	uc.registry.Reload(perms)
	uc.log.Info().Int("tuples", len(perms)).Msg("permisos actualizados")
	return nil
}

func modulesToStrings(ms []entity.Module) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, string(m))
	}
	return out
}
