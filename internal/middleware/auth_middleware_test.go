package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-backoffice/pkg/jwt"
)

func newProtectedApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{RequireAuth()}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		tc, ok := TenantFromLocals(c)
		if !ok {
			return c.SendStatus(500)
		}
		return c.JSON(fiber.Map{"tenant": tc.TenantID, "actor": tc.Actor})
	})
	app.Get("/secure", chain...)
	return app
}

func issueToken(t *testing.T, perms []string) string {
	t.Helper()
	token, err := jwt.GenerateToken(1, "MARIA", "Maria Silva", perms)
	require.NoError(t, err)
	return token
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	app := newProtectedApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/secure", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireAuthAcceptsCookieFallback(t *testing.T) {
	app := newProtectedApp()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Cookie", "rhs_token="+issueToken(t, nil))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequirePermissionMatchesClaim(t *testing.T) {
	app := newProtectedApp(RequirePermission("SEG", "USUARIOS", "E"))
	token := issueToken(t, []string{"SEG|USUARIOS|IAE"})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequirePermissionRejectsMissingAction(t *testing.T) {
	app := newProtectedApp(RequirePermission("SEG", "USUARIOS", "X"))
	token := issueToken(t, []string{"SEG|USUARIOS|IAE"})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestRequirePermissionRejectsOtherFunction(t *testing.T) {
	app := newProtectedApp(RequirePermission("SEG", "GRUPOS", ""))
	token := issueToken(t, []string{"SEG|USUARIOS|IAE"})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
