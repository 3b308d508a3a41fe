package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/kardex-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-pruebas-no-usar-en-prod"
	testIssuer    = "kardex-api-test"
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testUsername  = "tester"
	testExpMin    = 15
)

// ──────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────

// buildTestApp levanta una app Fiber mínima con una ruta protegida
// y otra restringida a admin/manager, igual que el router real.
func buildTestApp() *fiber.App {
	app := fiber.New()

	protected := app.Group("/api", AuthMiddleware(testJWTSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetRole(c),
		})
	})

	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin, entity.RoleManager))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "generar token de prueba no debe fallar")
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Code
}

// ──────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderRechaza(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/me", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_FormatoInvalidoRechaza(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/me", "Basic abc123")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

// fasthttp recorta el espacio final, así que "Bearer " llega como "Bearer"
// a secas y se rechaza como formato inválido.
func TestAuthMiddleware_BearerSinTokenRechaza(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/me", "Bearer ")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenInvalidoRechaza(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/me", "Bearer no.es.un.jwt")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_FirmaIncorrectaRechaza(t *testing.T) {
	app := buildTestApp()

	// Token firmado con otro secreto.
	token, err := pkgjwt.Generate("otro-secreto", testUserID, testUsername, entity.RoleUser, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/api/me", "Bearer "+token)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestAuthMiddleware_TokenValidoExponeClaims(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleUser)

	resp, body := doRequest(t, app, "/api/me", "Bearer "+token)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var claims map[string]string
	require.NoError(t, json.Unmarshal(body, &claims))
	assert.Equal(t, testUserID, claims["user_id"], "el user_id debe venir del token")
	assert.Equal(t, testUsername, claims["username"])
	assert.Equal(t, entity.RoleUser, claims["role"])
}

func TestAuthMiddleware_BearerMinusculasAcepta(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleUser)

	resp, _ := doRequest(t, app, "/api/me", "bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el esquema Bearer no distingue mayúsculas")
}

// ──────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleAdmin)

	resp, body := doRequest(t, app, "/api/admin/ping", "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestRequireRole_ManagerAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleManager)

	resp, _ := doRequest(t, app, "/api/admin/ping", "Bearer "+token)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_UsuarioComunRechazado(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleUser)

	resp, body := doRequest(t, app, "/api/admin/ping", "Bearer "+token)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestRequireRole_SinTokenNiSiquieraEvaluaRol(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/api/admin/ping", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}
