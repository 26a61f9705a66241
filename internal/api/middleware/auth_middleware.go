package middleware

import (
	"log"

	config "github.com/draftwirehq/draftwire/configs"
	"github.com/draftwirehq/draftwire/internal/service"
	"github.com/draftwirehq/draftwire/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	s   service.UserService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, service service.UserService) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg}
}

// AuthMiddleware validates the session cookie and resolves the principal
// through the cached user lookup, so hot sessions don't hit the user table
// on every request.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token subject",
			})
		}

		user, err := m.s.GetUserInfo(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Inactive user",
			})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("is_superuser", user.IsSuperuser)
		return c.Next()
	}
}
