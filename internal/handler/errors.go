package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"go-backoffice/internal/filter"
	"go-backoffice/internal/service"
	"go-backoffice/internal/tenant"
)

// respondError maps the service error taxonomy onto HTTP statuses. Filter
// value errors are the client's fault; anything unrecognized is a 500 with
// no internals leaked.
func respondError(c *fiber.Ctx, err error) error {
	var be *service.BusinessError
	if errors.As(err, &be) {
		return c.Status(400).JSON(fiber.Map{
			"error":   be.Message,
			"code":    be.Code,
			"details": be.Details,
		})
	}
	var ve *filter.ValueError
	if errors.As(err, &ve) {
		return c.Status(400).JSON(fiber.Map{"error": ve.Error()})
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Record not found"})
	case errors.Is(err, service.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": "Business key already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": "Invalid user or password"})
	case errors.Is(err, service.ErrUserInactive):
		return c.Status(403).JSON(fiber.Map{"error": "User account is inactive"})
	case errors.Is(err, tenant.ErrNoTenant):
		return c.Status(401).JSON(fiber.Map{"error": "No tenant in request context"})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

// requireTenant pulls the tenant context set by the auth middleware; a miss
// means the route was mounted without RequireAuth.
func requireTenant(c *fiber.Ctx) (tenant.Context, error) {
	tc, ok := c.Locals("tenant").(tenant.Context)
	if !ok || !tc.Valid() {
		return tenant.Context{}, tenant.ErrNoTenant
	}
	return tc, nil
}
