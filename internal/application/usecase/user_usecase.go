package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create registra un operador: hashea el password con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	matricula := strings.TrimSpace(in.Matricula)
	name := strings.TrimSpace(in.Name)
	if matricula == "" || name == "" || strings.TrimSpace(in.Role) == "" {
		return nil, fmt.Errorf("%w: matrícula, nombre y rol son obligatorios", domain.ErrValidation)
	}
	switch in.Shift {
	case "", entity.ShiftFirst, entity.ShiftSecond:
	default:
		return nil, fmt.Errorf("%w: turno %q", domain.ErrValidation, in.Shift)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 6 caracteres", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		Matricula:    matricula,
		Name:         name,
		Role:         strings.TrimSpace(in.Role),
		Shift:        in.Shift,
		IsAdmin:      in.IsAdmin,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, storeErr("crear usuario", err)
	}
	return ToUserResponse(user), nil
}

// GetByMatricula devuelve domain.ErrNotFound si no existe.
func (uc *UserUseCase) GetByMatricula(ctx context.Context, matricula string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByMatricula(ctx, matricula)
	if err != nil {
		return nil, storeErr("leer usuario", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, storeErr("listar usuarios", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// ToUserResponse convierte la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Matricula: u.Matricula,
		Name:      u.Name,
		Role:      u.Role,
		Shift:     u.Shift,
		IsAdmin:   u.IsAdmin,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
