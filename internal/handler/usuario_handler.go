package handler

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/filter"
	"go-backoffice/internal/grid"
	"go-backoffice/internal/service"
	"go-backoffice/internal/tenant"
	"go-backoffice/pkg/keycodec"
)

type UsuarioHandler struct {
	service service.UsuarioService
	grupos  service.GrupoService
}

func NewUsuarioHandler(s service.UsuarioService, g service.GrupoService) *UsuarioHandler {
	return &UsuarioHandler{service: s, grupos: g}
}

func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	u, err := h.service.Get(c.Context(), tc, c.Params("cd"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": u})
}

func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.UsuarioCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	u, err := h.service.Create(c.Context(), tc, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Usuario created", "data": u})
}

func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.UsuarioUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	u, err := h.service.Update(c.Context(), tc, c.Params("cd"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Usuario updated", "data": u})
}

func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.Context(), tc, c.Params("cd")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Usuario deleted"})
}

// Grid serves the DataTables list view. Pipeline failures still echo the
// draw counter so the client table does not wedge.
func (h *UsuarioHandler) Grid(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := grid.ParseRequest(c)
	if err != nil {
		return c.Status(400).JSON(grid.Fail[any](req.Draw, err.Error()))
	}
	resp, err := h.service.List(c.Context(), tc, req)
	if err != nil {
		var ve *filter.ValueError
		if errors.As(err, &ve) {
			return c.Status(400).JSON(resp)
		}
		return c.Status(500).JSON(resp)
	}
	return c.JSON(resp)
}

func (h *UsuarioHandler) BulkDelete(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var keys []string
	if err := c.BodyParser(&keys); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	deleted, err := h.service.BulkDelete(c.Context(), tc, keys)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Usuarios deleted", "deleted": deleted})
}

// parseExportFilter reads the optional FilterJson field shared by the export
// routes.
func parseExportFilter(c *fiber.Ctx) (*filter.Group, error) {
	raw := c.FormValue("FilterJson")
	if raw == "" {
		raw = c.Query("FilterJson")
	}
	return filter.Parse(raw)
}

type exportFn func(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)

func (h *UsuarioHandler) export(c *fiber.Ctx, filename, contentType string, fn exportFn) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	group, err := parseExportFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	body, err := fn(c.Context(), tc, group)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

func (h *UsuarioHandler) ExportCSV(c *fiber.Ctx) error {
	return h.export(c, "usuarios.csv", "text/csv", h.service.ExportCSV)
}

func (h *UsuarioHandler) ExportExcel(c *fiber.Ctx) error {
	return h.export(c, "usuarios.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.service.ExportExcel)
}

func (h *UsuarioHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, "usuarios.pdf", "application/pdf", h.service.ExportPDF)
}

// Import ingests a semicolon-delimited CSV uploaded as multipart field
// "file"; a raw text body is accepted as a fallback.
func (h *UsuarioHandler) Import(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}

	var reader io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Unreadable upload"})
		}
		defer f.Close()
		reader = f
	} else {
		reader = bytes.NewReader(c.Body())
	}

	applied, err := h.service.ImportCSV(c.Context(), tc, reader)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Import finished", "imported": applied})
}

// Memberships routes live under the user they belong to.

func (h *UsuarioHandler) ListGroups(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	groups, err := h.grupos.Memberships(c.Context(), tc, c.Params("cd"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": groups})
}

func (h *UsuarioHandler) GrantGroup(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	ug, err := h.grupos.Grant(c.Context(), tc, c.Params("cd"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Membership granted", "data": ug})
}

// RevokeGroup takes the encoded (cdSistema, cdGrUser) pair as the id segment.
func (h *UsuarioHandler) RevokeGroup(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	parts, err := keycodec.Decode(c.Params("id"), 2)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Malformed membership key"})
	}
	if err := h.grupos.Revoke(c.Context(), tc, c.Params("cd"), parts[0], parts[1]); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Membership revoked"})
}

func (h *UsuarioHandler) Permissions(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	perms, err := h.grupos.Permissions(c.Context(), tc, c.Params("cd"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": perms})
}
