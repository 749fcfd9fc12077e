package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checklist-api/internal/application/auth"
	"github.com/jhoicas/checklist-api/internal/application/dto"
	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/checklist-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type stubUsers struct {
	users map[string]*entity.User
	err   error
}

func (s stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s stubUsers) List(context.Context) ([]*entity.User, error) {
	return nil, nil
}
func (s stubUsers) GetByMatricula(_ context.Context, m string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[m], nil
}

func newAuth(t *testing.T, users ...*entity.User) *auth.AuthUseCase {
	t.Helper()
	table, err := access.DefaultTable()
	require.NoError(t, err)
	repo := stubUsers{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.Matricula] = u
	}
	return auth.NewAuthUseCase(repo, access.NewRegistry(table, nil), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "checklist-test"})
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_TokenConIdentidad(t *testing.T) {
	u := &entity.User{Matricula: "4512", Name: "Joana", Role: "LÍDER", Shift: "2", PasswordHash: hashed(t, "segredo1"), Status: entity.UserStatusActive}
	uc := newAuth(t, u)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Matricula: "4512", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"MEETING", "LINE_STOP", "SCRAP"}, out.Modules)

	id, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "4512", id.Matricula)
	assert.Equal(t, "LÍDER", id.Role)
	assert.Equal(t, "2", id.Shift)
	assert.False(t, id.IsAdmin)
}

func TestLogin_Errores(t *testing.T) {
	active := &entity.User{Matricula: "1", PasswordHash: hashed(t, "certo"), Status: entity.UserStatusActive}
	inactive := &entity.User{Matricula: "2", PasswordHash: hashed(t, "certo"), Status: entity.UserStatusInactive}
	uc := newAuth(t, active, inactive)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Matricula: "1", Password: "errado"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = uc.Login(ctx, dto.LoginRequest{Matricula: "9", Password: "certo"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = uc.Login(ctx, dto.LoginRequest{Matricula: "2", Password: "certo"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	_, err = uc.Login(ctx, dto.LoginRequest{Matricula: " "})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLogin_AlmacenCaido(t *testing.T) {
	table, err := access.DefaultTable()
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(stubUsers{err: errors.New("timeout")}, access.NewRegistry(table, nil), auth.JWTConfig{Secret: testSecret})

	_, err = uc.Login(context.Background(), dto.LoginRequest{Matricula: "1", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrAdapterUnavailable))
}

func TestMe_SuperadminVeTodo(t *testing.T) {
	uc := newAuth(t)
	me := uc.Me(pkgjwt.Identity{Matricula: "admin", Name: "Admin", Role: "TI"})
	assert.Len(t, me.Modules, len(entity.AllModules))
	assert.False(t, me.IsLeader)

	me = uc.Me(pkgjwt.Identity{Matricula: "7", Role: "Encarregado"})
	assert.True(t, me.IsLeader)
}
