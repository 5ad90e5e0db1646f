package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/filter"
	"go-backoffice/internal/grid"
	"go-backoffice/internal/service"
)

type SistemaHandler struct {
	service service.SistemaService
}

func NewSistemaHandler(s service.SistemaService) *SistemaHandler {
	return &SistemaHandler{service: s}
}

func (h *SistemaHandler) GetAll(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.service.GetAll(c.Context(), tc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *SistemaHandler) Get(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	sys, err := h.service.Get(c.Context(), tc, c.Params("cd"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": sys})
}

func (h *SistemaHandler) Create(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.SistemaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	sys, err := h.service.Create(c.Context(), tc, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sistema created", "data": sys})
}

func (h *SistemaHandler) Update(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.SistemaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	sys, err := h.service.Update(c.Context(), tc, c.Params("cd"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sistema updated", "data": sys})
}

func (h *SistemaHandler) Delete(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.Context(), tc, c.Params("cd")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sistema deleted"})
}

func (h *SistemaHandler) Grid(c *fiber.Ctx) error {
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

func (h *SistemaHandler) ExportCSV(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	group, err := parseExportFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	body, err := h.service.ExportCSV(c.Context(), tc, group)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sistemas.csv"`)
	return c.Send(body)
}

func (h *SistemaHandler) ExportExcel(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	group, err := parseExportFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	body, err := h.service.ExportExcel(c.Context(), tc, group)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sistemas.xlsx"`)
	return c.Send(body)
}
