package handlers

import (
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PublishHandler struct {
	s service.PublishService
}

func NewPublishHandler(service service.PublishService) *PublishHandler {
	return &PublishHandler{s: service}
}

func (h *PublishHandler) PublishDraft(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft id",
		})
	}

	result, err := h.s.Publish(c.Context(), id, principal)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
