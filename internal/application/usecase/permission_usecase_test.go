package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

func TestPermissions_SavePublicaEnElRegistro(t *testing.T) {
	store := &memStore{}
	reg := newRegistry(t)
	uc := usecase.NewPermissionUseCase(store, reg, nil)
	inspetor := entity.User{Matricula: "9", Role: "INSPETOR"}

	require.False(t, reg.HasPermission(inspetor, entity.ModuleAudit))

	err := uc.Save(context.Background(), dto.SavePermissionsRequest{Permissions: []dto.PermissionDTO{
		{Role: "INSPETOR", Module: "audit", Allowed: true},
		{Role: "INSPETOR", Module: "SCRAP", Allowed: true},
		{Role: "inspetor", Module: "SCRAP", Allowed: false},
	}})
	require.NoError(t, err)

	assert.True(t, reg.HasPermission(inspetor, entity.ModuleAudit))
	assert.False(t, reg.HasPermission(inspetor, entity.ModuleScrap), "la última tupla repetida gana")
	assert.Len(t, store.perms, 2)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Permissions, 2)
	assert.Equal(t, "AUDIT", list.Permissions[0].Module)
	assert.Len(t, list.Modules, len(entity.AllModules))
	assert.Equal(t, []string{"MEETING", "LINE_STOP", "SCRAP"}, list.DefaultAllow)
}

func TestPermissions_SaveRechazaModuloDesconocido(t *testing.T) {
	store := &memStore{}
	uc := usecase.NewPermissionUseCase(store, newRegistry(t), nil)

	err := uc.Save(context.Background(), dto.SavePermissionsRequest{Permissions: []dto.PermissionDTO{{Role: "X", Module: "REPORTS"}}})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	err = uc.Save(context.Background(), dto.SavePermissionsRequest{Permissions: []dto.PermissionDTO{{Module: "AUDIT"}}})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Nil(t, store.perms)
}

func TestPermissions_FallaDelAlmacenConservaInstantanea(t *testing.T) {
	store := &memStore{perms: []entity.PermissionTuple{{Role: "OPERADOR", Module: entity.ModuleChecklist, Allowed: true}}}
	reg := newRegistry(t)
	uc := usecase.NewPermissionUseCase(store, reg, nil)
	op := entity.User{Role: "OPERADOR"}

	require.NoError(t, uc.Load(context.Background()))
	assert.True(t, reg.HasPermission(op, entity.ModuleChecklist))

	store.fail = true
	assert.True(t, errors.Is(uc.Load(context.Background()), domain.ErrAdapterUnavailable))
	err := uc.Save(context.Background(), dto.SavePermissionsRequest{})
	assert.True(t, errors.Is(err, domain.ErrAdapterUnavailable))
	assert.True(t, reg.HasPermission(op, entity.ModuleChecklist))
}
