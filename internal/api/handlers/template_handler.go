package handlers

import (
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	s service.TemplateService
}

func NewTemplateHandler(service service.TemplateService) *TemplateHandler {
	return &TemplateHandler{s: service}
}

func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var req transfer.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	tpl, err := h.s.Create(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tpl)
}

func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.s.List(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(templates)
}

func (h *TemplateHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	tpl, err := h.s.Get(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tpl)
}

func (h *TemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	var req transfer.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	tpl, err := h.s.Update(c.Context(), id, &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tpl)
}

func (h *TemplateHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	if err := h.s.Remove(c.Context(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Template deleted successfully",
	})
}
