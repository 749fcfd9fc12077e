package repository

import (
	"context"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// EventStore es el almacén externo de eventos de cumplimiento.
// El núcleo no reintenta ni cachea: una llamada lógica por cálculo.
type EventStore interface {
	FetchAllEvents(ctx context.Context) ([]*entity.ComplianceEvent, error)
	FetchAllUsers(ctx context.Context) ([]*entity.User, error)

	// UpsertEvent inserta o actualiza por ID. ID vacío asigna uno nuevo.
	// Si ev.Version > 0 solo actualiza cuando la versión guardada coincide;
	// en otro caso devuelve domain.ErrConflict. Al volver, ev.ID y ev.Version
	// reflejan lo persistido.
	UpsertEvent(ctx context.Context, ev *entity.ComplianceEvent) error

	// GetEvent devuelve (nil, nil) si no existe.
	GetEvent(ctx context.Context, id string) (*entity.ComplianceEvent, error)
}

// PermissionStore persiste las tuplas (rol, módulo, permitido).
type PermissionStore interface {
	FetchPermissions(ctx context.Context) ([]entity.PermissionTuple, error)
	// SavePermissions reemplaza el conjunto completo.
	SavePermissions(ctx context.Context, perms []entity.PermissionTuple) error
}
