package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `matricula, name, role, shift, is_admin, password_hash, status, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		user.Matricula, user.Name, user.Role, user.Shift, user.IsAdmin, user.PasswordHash, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpsertRoster inserta o actualiza nombre, rol y turno desde la planilla de RRHH.
// El hash del password solo se escribe al crear; nunca se pisa uno existente.
func (r *UserRepo) UpsertRoster(ctx context.Context, user *entity.User) (created bool, err error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (matricula) DO UPDATE SET
			name = EXCLUDED.name, role = EXCLUDED.role, shift = EXCLUDED.shift, updated_at = now()
		RETURNING (xmax = 0)`
	err = r.pool.QueryRow(ctx, query,
		user.Matricula, user.Name, user.Role, user.Shift, user.IsAdmin, user.PasswordHash, user.Status,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert user %s: %w", user.Matricula, err)
	}
	return created, nil
}

// GetByMatricula obtiene un usuario; (nil, nil) si no existe.
func (r *UserRepo) GetByMatricula(ctx context.Context, matricula string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE matricula = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, matricula))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by matricula: %w", err)
	}
	return u, nil
}

// List lista todos los usuarios por nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return listUsers(ctx, r.pool)
}

func listUsers(ctx context.Context, pool *pgxpool.Pool) ([]*entity.User, error) {
	rows, err := pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, matricula`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.Matricula, &u.Name, &u.Role, &u.Shift, &u.IsAdmin, &u.PasswordHash, &u.Status,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
