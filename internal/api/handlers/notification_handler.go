package handlers

import (
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	s service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{s: service}
}

func (h *NotificationHandler) Subscribe(c *fiber.Ctx) error {
	var req transfer.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	id, err := h.s.Subscribe(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subscription added successfully",
		"id":      id,
	})
}

func (h *NotificationHandler) Unsubscribe(c *fiber.Ctx) error {
	var req transfer.UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := h.s.Unsubscribe(c.Context(), req.Endpoint); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Subscription removed successfully",
	})
}

// SendNotification acknowledges the batch; delivery happens detached and
// outcomes are observable only via logs.
func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	var req transfer.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	count, err := h.s.Send(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":     "Notifications accepted",
		"subscribers": count,
	})
}
