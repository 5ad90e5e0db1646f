package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/tenant"
	"go-backoffice/pkg/jwt"
)

const (
	// tokenCookie is accepted as a fallback for browser clients that keep
	// the token in a cookie instead of a header.
	tokenCookie = "rhs_token"

	localsTenant      = "tenant"
	localsPermissions = "permissions"
)

// RequireAuth validates the bearer token and stores the tenant context and
// permission claims in Locals for downstream handlers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Cookies(tokenCookie)
		}
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		tc := tenant.Context{TenantID: claims.TenantID, Actor: claims.CdUsuario}
		if !tc.Valid() {
			return c.Status(401).JSON(fiber.Map{"error": "Token carries no tenant"})
		}

		c.Locals(localsTenant, tc)
		c.Locals(localsPermissions, claims.Permissions)
		return c.Next()
	}
}

// TenantFromLocals reads the tenant context set by RequireAuth.
func TenantFromLocals(c *fiber.Ctx) (tenant.Context, bool) {
	tc, ok := c.Locals(localsTenant).(tenant.Context)
	return tc, ok
}

// RequirePermission gates a route on a "SISTEMA|FUNCAO" claim; acao narrows
// it to a single action character, empty matches any action set.
func RequirePermission(cdSistema, cdFuncao, acao string) fiber.Handler {
	want := strings.ToUpper(cdSistema + "|" + cdFuncao + "|")
	return func(c *fiber.Ctx) error {
		perms, ok := c.Locals(localsPermissions).([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No permissions found"})
		}
		for _, p := range perms {
			up := strings.ToUpper(p)
			if !strings.HasPrefix(up, want) {
				continue
			}
			if acao == "" || strings.Contains(up[len(want):], strings.ToUpper(acao)) {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + cdSistema + "/" + cdFuncao + "' access",
		})
	}
}
