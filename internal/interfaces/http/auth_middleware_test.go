package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
	apphttp "github.com/jhoicas/checklist-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/checklist-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "checklist-api-test"
	testExpMin    = 60
)

func testRegistry(t *testing.T, perms ...entity.PermissionTuple) *access.Registry {
	t.Helper()
	table, err := access.DefaultTable()
	require.NoError(t, err)
	return access.NewRegistry(table, perms)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar la identidad
//   - RequirePermission para el módulo indicado
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, module entity.Module, perms ...entity.PermissionTuple) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(module, testRegistry(t, perms...)),
		func(c *fiber.Ctx) error {
			u := apphttp.CurrentUser(c)
			return c.JSON(fiber.Map{"ok": true, "matricula": u.Matricula, "role": u.Role})
		},
	)
	return app
}

// tokenFor genera un JWT con la identidad indicada.
func tokenFor(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

var (
	idOperador = pkgjwt.Identity{Matricula: "100", Name: "Operador", Role: "OPERADOR", Shift: "1"}
	idGerente  = pkgjwt.Identity{Matricula: "900", Name: "Gerente", Role: "GERENTE", Shift: "1"}
	idAdmin    = pkgjwt.Identity{Matricula: "admin", Name: "Admin", Role: "Admin"}
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ModuloPorDefectoPermitido(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, tokenFor(t, idOperador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "100", body["matricula"])
	assert.Equal(t, "OPERADOR", body["role"])
}

func TestRequirePermission_OperadorBloqueadoEnGestion(t *testing.T) {
	app := buildTestApp(t, entity.ModuleManagement)
	resp := doRequest(t, app, tokenFor(t, idOperador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_FORBIDDEN")
}

func TestRequirePermission_TuplaExplicitaConcede(t *testing.T) {
	app := buildTestApp(t, entity.ModuleManagement,
		entity.PermissionTuple{Role: "gerente", Module: entity.ModuleManagement, Allowed: true})
	resp := doRequest(t, app, tokenFor(t, idGerente))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_TuplaExplicitaNiegaModuloPorDefecto(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop,
		entity.PermissionTuple{Role: "OPERADOR", Module: entity.ModuleLineStop, Allowed: false})
	resp := doRequest(t, app, tokenFor(t, idOperador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermission_SuperadminVeTodo(t *testing.T) {
	app := buildTestApp(t, entity.ModuleAdmin)
	resp := doRequest(t, app, tokenFor(t, idAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenSinMatricula_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, tokenFor(t, pkgjwt.Identity{Role: "OPERADOR"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", idOperador, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(t, entity.ModuleLineStop)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConIdentidad(t *testing.T) {
	id := pkgjwt.Identity{Matricula: "200", Name: "Técnico", Role: "TÉC. MANUTENÇÃO", Shift: "2", IsAdmin: false}
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, idOperador, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}
