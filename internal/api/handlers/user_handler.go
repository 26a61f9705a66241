package handlers

import (
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	principal := GetPrincipal(c)

	userInfo, err := h.s.GetUserInfo(c.Context(), principal.ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(userInfo)
}
