package repository

import (
	"context"

	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrUserExists si la matrícula ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByMatricula devuelve (nil, nil) si no existe.
	GetByMatricula(ctx context.Context, matricula string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
