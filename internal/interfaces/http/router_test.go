package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/application/auth"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/access"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/localauth"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tenant-admin/internal/interfaces/http"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: repos en memoria, identidad local y partner falso
// ──────────────────────────────────────────────────────────────────────────────

type fakePartner struct {
	mu       sync.Mutex
	gets     int
	getAuths []string
	posts    []map[string]any
	cfg      map[string]any
	err      error
}

func (p *fakePartner) GetSidebarConfig(_ context.Context, authHeader string) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++
	p.getAuths = append(p.getAuths, authHeader)
	if p.err != nil {
		return nil, p.err
	}
	out := map[string]any{}
	for k, v := range p.cfg {
		out[k] = v
	}
	return out, nil
}

func (p *fakePartner) PostSidebarConfig(_ context.Context, _ string, body map[string]any) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append(p.posts, body)
	if p.err != nil {
		return nil, p.err
	}
	return map[string]any{"success": true}, nil
}

func (p *fakePartner) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gets + len(p.posts)
}

type testEnv struct {
	app        *fiber.App
	identity   *localauth.Provider
	users      *memory.UserRepo
	partner    *fakePartner
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	identity := localauth.New(localauth.Config{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"})
	users := memory.NewUserRepository()
	orphanRepo := memory.NewOrphanRepository()
	partner := &fakePartner{cfg: map[string]any{"enabledMenuItems": []any{"inventory-management"}}}

	allow := access.NewAllowlist(nil)
	accessUC := usecase.NewAccessUseCase(users, allow, true)
	orphanUC := usecase.NewOrphanUseCase(orphanRepo, users, identity, nil, log)
	userUC := usecase.NewUserUseCase(users, identity, orphanUC, log, 12)
	sidebarUC := usecase.NewSidebarUseCase(partner, memory.NewSidebarVersionRepository(), log)

	env := &testEnv{identity: identity, users: users, partner: partner}
	env.adminToken = env.account(t, ctx, "admin@example.com", entity.RoleAdmin)
	env.userToken = env.account(t, ctx, "user@example.com", entity.RoleUser)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UserUC:    userUC,
		SidebarUC: sidebarUC,
		OrphanUC:  orphanUC,
		AccessUC:  accessUC,
		AuthUC:    auth.NewAuthUseCase(identity, allow),
		Verifier:  identity,
		Log:       log,
	})
	env.app = app
	return env
}

// account crea identidad y registro con el rol dado y devuelve "Bearer <token>".
func (e *testEnv) account(t *testing.T, ctx context.Context, email, role string) string {
	t.Helper()
	uid, err := e.identity.Seed(ctx, entity.NewIdentity{Email: email, Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, e.users.Create(ctx, &entity.User{
		ID: uid, Email: email, DisplayName: email, CompanyName: "Acme", Role: role, Status: entity.StatusActive,
	}))
	token, _, err := e.identity.SignIn(ctx, email, "secret123")
	require.NoError(t, err)
	return "Bearer " + token
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_ListarRequiereToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/users", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization token is required", body["error"])
}

func TestUsers_Listar(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/users", env.userToken, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["users"], 2)
}

func TestUsers_CrearYLeer(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{
		"email":       "nuevo@example.com",
		"password":    "secret123",
		"companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uid, _ := body["uid"].(string)
	require.NotEmpty(t, uid)

	resp, body = env.do(t, http.MethodGet, "/api/admin/users/"+uid, env.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "nuevo@example.com", user["email"])
	assert.Equal(t, "nuevo", user["displayName"])
	assert.Equal(t, entity.RoleUser, user["role"])
	assert.Nil(t, user["subscriptionType"])
}

func TestUsers_CrearEmailDuplicado_Retorna409(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{
		"email":       "user@example.com",
		"password":    "secret123",
		"companyName": "Acme",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "The email address is already in use", body["error"])
}

func TestUsers_CrearSinPassword_Retorna400(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{"email": "x@example.com"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email and password are required", body["error"])
}

func TestUsers_CrearSinRolAdmin_Retorna403(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/admin/users", env.userToken, map[string]any{
		"email": "x@example.com", "password": "secret123", "companyName": "Acme",
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_PrimerOperadorSinRegistroPuedeCrear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.identity.Seed(ctx, entity.NewIdentity{Email: "first@example.com", Password: "secret123"})
	require.NoError(t, err)
	token, _, err := env.identity.SignIn(ctx, "first@example.com", "secret123")
	require.NoError(t, err)

	resp, body := env.do(t, http.MethodPost, "/api/admin/users", "Bearer "+token, map[string]any{
		"email": "team@example.com", "password": "secret123", "companyName": "Acme",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestUsers_AltaMasivaSiempre200(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{
		"companyName": "Acme",
		"users": []map[string]string{
			{"displayName": "Ana", "email": "ana@example.com"},
			{"displayName": "Dup", "email": "user@example.com"},
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["total"])
	assert.Equal(t, float64(1), summary["success"])
	assert.Equal(t, float64(1), summary["failed"])
}

func TestUsers_AltaMasivaSinFilas_Retorna400(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{
		"companyName": "Acme",
		"users":       []any{},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_ActualizarYBorrarSuscripcion(t *testing.T) {
	env := newTestEnv(t)
	uid := createUser(t, env, "sub@example.com")

	resp, body := env.do(t, http.MethodPut, "/api/admin/users/"+uid, env.adminToken, `{"subscriptionType":"trial","department":"Ventas"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "trial", body["user"].(map[string]any)["subscriptionType"])

	resp, body = env.do(t, http.MethodPut, "/api/admin/users/"+uid, env.adminToken, `{"subscriptionType":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Nil(t, user["subscriptionType"])
	assert.Equal(t, "Ventas", user["department"])
}

func TestUsers_ActualizarInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/admin/users/nope", env.adminToken, `{"role":"manager"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestUsers_BorrarInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodDelete, "/api/admin/users/nope", env.adminToken, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestUsers_BorrarEliminaIdentidadYRegistro(t *testing.T) {
	env := newTestEnv(t)
	uid := createUser(t, env, "bye@example.com")

	resp, _ := env.do(t, http.MethodDelete, "/api/admin/users/"+uid, env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := env.users.GetByID(context.Background(), uid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = env.identity.SignIn(context.Background(), "bye@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func createUser(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp, body := env.do(t, http.MethodPost, "/api/admin/users", env.adminToken, map[string]any{
		"email": email, "password": "secret123", "companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["uid"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sidebar
// ──────────────────────────────────────────────────────────────────────────────

func TestSidebar_GetPublicoCompletaCatalogoYVersion(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/sidebar-config", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["version"])
	assert.Len(t, body["availableMenuItems"], 20)
}

func TestSidebar_GetPorUsuarioNoReenviaCredenciales(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/users/u-9/sidebar-config", env.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-9", body["userId"])

	resp, _ = env.do(t, http.MethodGet, "/api/admin/sidebar-config", env.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"", env.userToken}, env.partner.getAuths)
}

func TestSidebar_PostNoArray_Retorna400SinLlamarAlPartner(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/sidebar-config", env.adminToken, map[string]any{
		"enabledMenuItems": "inventory-management",
		"version":          0,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "enabledMenuItems must be an array", body["error"])
	assert.Zero(t, env.partner.calls())
}

func TestSidebar_PostCuerpoInvalido_Retorna400(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/admin/sidebar-config", env.adminToken, "not json")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.partner.calls())
}

func TestSidebar_PostAvanzaVersionYDetectaConflicto(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]any{"enabledMenuItems": []string{"inventory-management"}, "version": 0}

	resp, body := env.do(t, http.MethodPost, "/api/admin/sidebar-config", env.adminToken, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["version"])

	resp, body = env.do(t, http.MethodPost, "/api/admin/sidebar-config", env.adminToken, payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "VERSION_CONFLICT", body["code"])
	assert.Len(t, env.partner.posts, 1)
}

func TestSidebar_PostSinVersionSeReenviaAlPartner(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/sidebar-config", env.adminToken, map[string]any{
		"enabledMenuItems": []string{"calendar"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["version"])
	require.Len(t, env.partner.posts, 1)
	assert.Equal(t, []string{"calendar"}, env.partner.posts[0]["enabledMenuItems"])
}

func TestSidebar_PostPorUsuarioReenviaUserID(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/admin/users/u-9/sidebar-config", env.adminToken, map[string]any{
		"enabledMenuItems": []string{}, "version": 0,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.partner.posts, 1)
	assert.Equal(t, "u-9", env.partner.posts[0]["userId"])
}

func TestSidebar_FalloDelPartner_Retorna500ConDetalle(t *testing.T) {
	env := newTestEnv(t)
	env.partner.err = &domain.UpstreamError{Message: "Failed to fetch sidebar config", Detail: "HTTP 502: bad gateway"}

	resp, body := env.do(t, http.MethodGet, "/api/admin/sidebar-config", "", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_FAILURE", body["code"])
	assert.Equal(t, "Failed to fetch sidebar config", body["error"])
	assert.Equal(t, "HTTP 502: bad gateway", body["details"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, sesión, huérfanos y login
// ──────────────────────────────────────────────────────────────────────────────

func TestMenuCatalog_AgrupadoPorCategoria(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/menu-catalog", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cats := body["categories"].([]any)
	require.NotEmpty(t, cats)
	total := 0
	for _, c := range cats {
		total += len(c.(map[string]any)["items"].([]any))
	}
	assert.Equal(t, 20, total)
}

func TestSession_DevuelveRol(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/admin/session", env.adminToken, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin@example.com", body["email"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, true, body["admin"])
}

func TestOrphans_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/admin/orphans", env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, http.MethodGet, "/api/admin/orphans", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["orphans"])
}

func TestOrphans_ReconciliarInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/api/admin/orphans/nope/reconcile", env.adminToken, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogin_Local(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, _ = env.do(t, http.MethodGet, "/api/admin/session", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
