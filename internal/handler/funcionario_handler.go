package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-backoffice/internal/service"
)

type FuncionarioHandler struct {
	service service.FuncionarioService
}

func NewFuncionarioHandler(s service.FuncionarioService) *FuncionarioHandler {
	return &FuncionarioHandler{service: s}
}

func (h *FuncionarioHandler) GetAll(c *fiber.Ctx) error {
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

func (h *FuncionarioHandler) Get(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid funcionario ID"})
	}
	f, err := h.service.Get(c.Context(), tc, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": f})
}

func (h *FuncionarioHandler) Create(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.FuncionarioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	f, err := h.service.Create(c.Context(), tc, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Funcionario created", "data": f})
}

func (h *FuncionarioHandler) Update(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid funcionario ID"})
	}
	var req service.FuncionarioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	f, err := h.service.Update(c.Context(), tc, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Funcionario updated", "data": f})
}

func (h *FuncionarioHandler) Delete(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid funcionario ID"})
	}
	if err := h.service.Delete(c.Context(), tc, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Funcionario deleted"})
}
