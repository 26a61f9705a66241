package handlers

import (
	"errors"

	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/draftwirehq/draftwire/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetPrincipal(c *fiber.Ctx) *transfer.Principal {
	id, _ := uuid.Parse(c.Locals("user_id").(string))
	isSuperuser, _ := c.Locals("is_superuser").(bool)
	return &transfer.Principal{ID: id, IsSuperuser: isSuperuser}
}

// errorResponse maps the error taxonomy onto HTTP statuses. Upstream
// permanent failures propagate the upstream status.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var ae *apperr.Error
	errors.As(err, &ae)

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindValidationRejected:
		status = fiber.StatusBadRequest
	case apperr.KindPermanentUpstream:
		if ae != nil && ae.Status != 0 {
			status = ae.Status
		} else {
			status = fiber.StatusBadGateway
		}
	case apperr.KindTransientUpstream:
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
