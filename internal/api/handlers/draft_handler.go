package handlers

import (
	"log/slog"
	"time"

	"github.com/draftwirehq/draftwire/internal/queue"
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type DraftHandler struct {
	s           service.DraftService
	AsynqClient *asynq.Client
}

func NewDraftHandler(service service.DraftService, asynqClient *asynq.Client) *DraftHandler {
	return &DraftHandler{s: service, AsynqClient: asynqClient}
}

func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	var dc transfer.DraftCreation
	if err := c.BodyParser(&dc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	draft, err := h.s.Create(c.Context(), principal, &dc)
	if err != nil {
		return errorResponse(c, err)
	}

	h.scheduleIfDue(draft.ID, draft.ScheduledTime.Valid, draft.ScheduledTime.Time)

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	principal := GetPrincipal(c)
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	drafts, err := h.s.List(c.Context(), principal, skip, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(drafts)
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft id",
		})
	}

	draft, err := h.s.Get(c.Context(), principal, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(draft)
}

func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft id",
		})
	}

	var du transfer.DraftUpdate
	if err := c.BodyParser(&du); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	draft, err := h.s.Update(c.Context(), principal, id, &du)
	if err != nil {
		return errorResponse(c, err)
	}

	h.scheduleIfDue(draft.ID, draft.ScheduledTime.Valid, draft.ScheduledTime.Time)

	return c.Status(fiber.StatusOK).JSON(draft)
}

func (h *DraftHandler) DeleteDraft(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft id",
		})
	}

	if err := h.s.Remove(c.Context(), principal, id); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Draft deleted successfully",
	})
}

func (h *DraftHandler) scheduleIfDue(draftID uuid.UUID, scheduled bool, at time.Time) {
	if !scheduled {
		return
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	err := queue.EnqueueDraft(h.AsynqClient, queue.PublishDraftPayload{DraftID: draftID}, delay)
	if err != nil {
		slog.Error("Error scheduling draft", "draft_id", draftID, "error", err)
	}
}
