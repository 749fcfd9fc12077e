package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	"github.com/jhoicas/checklist-api/internal/domain/repository"
	"github.com/jhoicas/checklist-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ModuleResolver decide qué módulos ve el usuario (lo implementa *access.Registry).
type ModuleResolver interface {
	VisibleModules(u entity.User) []entity.Module
	IsLeader(role string) bool
}

// AuthUseCase login por matrícula y datos de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	modules  ModuleResolver
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, modules ModuleResolver, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, modules: modules, jwtCfg: jwtCfg}
}

// Login verifica matrícula/password, genera JWT y retorna token + usuario + módulos visibles.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	matricula := strings.TrimSpace(in.Matricula)
	if matricula == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: matrícula y password son obligatorios", domain.ErrValidation)
	}
	user, err := uc.userRepo.GetByMatricula(ctx, matricula)
	if err != nil {
		return nil, fmt.Errorf("login: %w: %w", domain.ErrAdapterUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, IdentityOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		User:    *usecase.ToUserResponse(user),
		Modules: moduleNames(uc.modules.VisibleModules(*user)),
	}, nil
}

// Me datos de la sesión a partir de la identidad del token.
func (uc *AuthUseCase) Me(id jwt.Identity) *dto.MeResponse {
	u := UserOf(id)
	return &dto.MeResponse{
		User: dto.UserResponse{
			Matricula: u.Matricula,
			Name:      u.Name,
			Role:      u.Role,
			Shift:     u.Shift,
			IsAdmin:   u.IsAdmin,
			Status:    entity.UserStatusActive,
		},
		Modules:  moduleNames(uc.modules.VisibleModules(u)),
		IsLeader: uc.modules.IsLeader(u.Role),
	}
}

// IdentityOf lo que viaja en el token.
func IdentityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{
		Matricula: u.Matricula,
		Name:      u.Name,
		Role:      u.Role,
		Shift:     u.Shift,
		IsAdmin:   u.IsAdmin,
	}
}

// UserOf reconstruye el usuario que actúa a partir del token.
func UserOf(id jwt.Identity) entity.User {
	return entity.User{
		Matricula: id.Matricula,
		Name:      id.Name,
		Role:      id.Role,
		Shift:     id.Shift,
		IsAdmin:   id.IsAdmin,
		Status:    entity.UserStatusActive,
	}
}

func moduleNames(ms []entity.Module) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, string(m))
	}
	return out
}
