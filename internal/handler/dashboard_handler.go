package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	tc, err := requireTenant(c)
	if err != nil {
		return respondError(c, err)
	}
	counts, err := h.service.Stats(c.Context(), tc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": counts})
}
