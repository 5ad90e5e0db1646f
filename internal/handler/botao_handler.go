package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/service"
)

type BotaoHandler struct {
	service service.BotaoService
}

func NewBotaoHandler(s service.BotaoService) *BotaoHandler {
	return &BotaoHandler{service: s}
}

func (h *BotaoHandler) GetAll(c *fiber.Ctx) error {
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

func (h *BotaoHandler) Get(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.service.Get(c.Context(), tc, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

func (h *BotaoHandler) Create(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.BotaoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.Create(c.Context(), tc, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Botao created", "data": item})
}

func (h *BotaoHandler) Update(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.BotaoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.Update(c.Context(), tc, c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Botao updated", "data": item})
}

func (h *BotaoHandler) Delete(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(c.Context(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Botao deleted"})
}
