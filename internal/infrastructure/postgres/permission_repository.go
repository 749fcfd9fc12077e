package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
)

var _ repository.PermissionStore = (*PermissionRepo)(nil)

// PermissionRepo tuplas (rol, módulo, permitido) en la tabla permissions.
type PermissionRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool, tx: NewTxRunner(pool)}
}

// FetchPermissions devuelve todas las tuplas.
func (r *PermissionRepo) FetchPermissions(ctx context.Context) ([]entity.PermissionTuple, error) {
	rows, err := r.pool.Query(ctx, `SELECT role, module, allowed FROM permissions ORDER BY role, module`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []entity.PermissionTuple
	for rows.Next() {
		var (
			p      entity.PermissionTuple
			module string
		)
		if err := rows.Scan(&p.Role, &module, &p.Allowed); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		p.Module = entity.Module(module)
		list = append(list, p)
	}
	return list, rows.Err()
}

// SavePermissions reemplaza el conjunto completo en una sola transacción.
func (r *PermissionRepo) SavePermissions(ctx context.Context, perms []entity.PermissionTuple) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM permissions`); err != nil {
			return fmt.Errorf("delete permissions: %w", err)
		}
		if len(perms) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(perms))
		for _, p := range perms {
			rows = append(rows, []any{p.Role, string(p.Module), p.Allowed})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"permissions"}, []string{"role", "module", "allowed"}, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy permissions: %w", err)
		}
		return nil
	})
}
