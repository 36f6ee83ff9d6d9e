package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/access"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	apphttp "github.com/jhoicas/tenant-admin/internal/interfaces/http"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testToken = "valid-token"
	testUID   = "uid-admin"
	testEmail = "admin@example.com"
)

// stubVerifier acepta solo testToken.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (*entity.Identity, error) {
	if token != testToken {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Identity{UID: testUID, Email: testEmail}, nil
}

type stubAdmin struct {
	admin bool
	err   error
}

func (s stubAdmin) IsAdmin(context.Context, string, string) (bool, error) { return s.admin, s.err }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el token y cargar locals
//   - RequireAdmin para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowed []string, checker stubAdmin) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(stubVerifier{}, access.NewAllowlist(allowed)),
		apphttp.RequireAdmin(checker, logger.Nop()),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"uid": apphttp.GetUID(c), "email": apphttp.GetEmail(c)})
		},
	)
	return app
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

func errorBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, stubAdmin{admin: true}), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authorization token is required", body["error"])
}

func TestAuthMiddleware_EsquemaNoBearer_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, stubAdmin{admin: true}), "Basic abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization token is required", errorBody(t, resp)["error"])
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, stubAdmin{admin: true}), "Bearer otro")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", errorBody(t, resp)["error"])
}

func TestAuthMiddleware_EmailNoPermitido_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp([]string{"otro@example.com"}, stubAdmin{admin: true}), "Bearer "+testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Email is not allowed", errorBody(t, resp)["error"])
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	resp := doRequest(t, buildTestApp([]string{"ADMIN@example.com"}, stubAdmin{admin: true}), "Bearer "+testToken)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUID, body["uid"])
	assert.Equal(t, testEmail, body["email"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_NoAdmin_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, stubAdmin{admin: false}), "Bearer "+testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireAdmin_FalloAlVerificar_Retorna503(t *testing.T) {
	resp := doRequest(t, buildTestApp(nil, stubAdmin{err: errors.New("store down")}), "Bearer "+testToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
