package handlers

import (
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/gofiber/fiber/v2"
)

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	url, err := h.s.UploadImage(c.Context(), file)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": url,
	})
}
