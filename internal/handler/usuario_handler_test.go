package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/pkg/jwt"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Usuario{},
		&model.Sistema{},
		&model.UserGroup{},
		&model.GroupPermission{},
	))

	log := zap.NewNop()
	usuarioRepo := repository.NewUsuarioRepo(db)
	grupoService := service.NewGrupoService(repository.NewGrupoRepo(db), nil, nil, log)
	usuarioService := service.NewUsuarioService(usuarioRepo, nil, log)
	usuarioHandler := NewUsuarioHandler(usuarioService, grupoService)

	app := fiber.New()
	usuarios := app.Group("/api/v1/Usuarios", middleware.RequireAuth())
	usuarios.Post("/list", usuarioHandler.Grid)
	usuarios.Post("/bulk-delete", middleware.RequirePermission("SEG", "USUARIOS", "E"), usuarioHandler.BulkDelete)
	usuarios.Post("/export/csv", usuarioHandler.ExportCSV)
	usuarios.Post("/import", middleware.RequirePermission("SEG", "USUARIOS", "I"), usuarioHandler.Import)
	usuarios.Post("/", middleware.RequirePermission("SEG", "USUARIOS", "I"), usuarioHandler.Create)
	usuarios.Get("/:cd", usuarioHandler.Get)
	usuarios.Put("/:cd", middleware.RequirePermission("SEG", "USUARIOS", "A"), usuarioHandler.Update)
	usuarios.Delete("/:cd", middleware.RequirePermission("SEG", "USUARIOS", "E"), usuarioHandler.Delete)
	usuarios.Get("/:cd/permissoes", usuarioHandler.Permissions)
	return app
}

func tokenRequest(t *testing.T, method, target string, body io.Reader, perms []string) *http.Request {
	t.Helper()
	token, err := jwt.GenerateToken(1, "ADMIN", "Administrator", perms)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	return tokenRequest(t, method, target, body, []string{"SEG|USUARIOS|IAE"})
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := authedRequest(t, method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUsuarioRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/Usuarios/MARIA", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestUsuarioCreateGetDeleteFlow(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", map[string]any{
		"cdUsuario": "MARIA", "dcUsuario": "Maria Silva", "noUser": 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, "GET", "/api/v1/Usuarios/MARIA", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, "DELETE", "/api/v1/Usuarios/MARIA", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, "GET", "/api/v1/Usuarios/MARIA", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUsuarioCreateDuplicateReturns409(t *testing.T) {
	app := newTestApp(t)
	payload := map[string]any{"cdUsuario": "MARIA", "dcUsuario": "Maria"}

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", payload))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", payload))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestUsuarioCreateValidationReturns400(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", map[string]any{
		"dcUsuario": "Sem codigo",
	}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestUsuarioGridEchoesDraw(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", map[string]any{
		"cdUsuario": "MARIA", "dcUsuario": "Maria",
	}))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	form := url.Values{"draw": {"5"}, "length": {"10"}}
	req := authedRequest(t, "POST", "/api/v1/Usuarios/list", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Draw            int             `json:"draw"`
		RecordsTotal    int64           `json:"recordsTotal"`
		RecordsFiltered int64           `json:"recordsFiltered"`
		Data            json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 5, body.Draw)
	assert.Equal(t, int64(1), body.RecordsTotal)
}

func TestUsuarioGridBadFilterValueReturns400(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"draw":       {"2"},
		"FilterJson": {`{"logic":"and","rules":[{"field":"NoUser","op":"eq","value":"abc"}]}`},
	}
	req := authedRequest(t, "POST", "/api/v1/Usuarios/list", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body struct {
		Draw  int    `json:"draw"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Draw)
	assert.NotEmpty(t, body.Error)
}

func TestUsuarioBulkDeleteEndpoint(t *testing.T) {
	app := newTestApp(t)
	for _, cd := range []string{"A", "B"} {
		resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", map[string]any{
			"cdUsuario": cd, "dcUsuario": "User " + cd,
		}))
		require.NoError(t, err)
		require.Equal(t, 201, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/bulk-delete", []string{"A", "", "X"}))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["deleted"])
}

func TestUsuarioExportCSVEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/Usuarios/", map[string]any{
		"cdUsuario": "MARIA", "dcUsuario": "Maria", "noUser": 2,
	}))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, "POST", "/api/v1/Usuarios/export/csv", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "usuarios.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "CdUsuario;DcUsuario;EmailUsuario;FlAtivo;NoUser"))
}

func TestUsuarioImportEndpointAcceptsRawBody(t *testing.T) {
	app := newTestApp(t)

	csv := "CdUsuario;DcUsuario;EmailUsuario;FlAtivo;NoUser\nJOAO;Joao;;S;3\n"
	req := authedRequest(t, "POST", "/api/v1/Usuarios/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["imported"])

	resp, err = app.Test(authedRequest(t, "GET", "/api/v1/Usuarios/JOAO", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestUsuarioMutationsRequirePermissionClaim(t *testing.T) {
	app := newTestApp(t)

	// Authenticated but without the USUARIOS claim: reads pass, writes 403.
	payload, err := json.Marshal(map[string]any{"cdUsuario": "MARIA", "dcUsuario": "Maria"})
	require.NoError(t, err)
	req := tokenRequest(t, "POST", "/api/v1/Usuarios/", bytes.NewReader(payload), nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	resp, err = app.Test(tokenRequest(t, "DELETE", "/api/v1/Usuarios/MARIA", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	resp, err = app.Test(tokenRequest(t, "GET", "/api/v1/Usuarios/MARIA", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	// A claim for another function does not open the gate.
	resp, err = app.Test(tokenRequest(t, "DELETE", "/api/v1/Usuarios/MARIA", nil, []string{"SEG|GRUPOS|IAE"}))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestUsuarioPermissionsEndpointEmptySet(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(authedRequest(t, "GET", "/api/v1/Usuarios/MARIA/permissoes", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data)
}
