package middleware

import (
	"fmt"
	"log"

	"github.com/draftwirehq/draftwire/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// RateLimit enforces a fixed-window limit per client IP and route. The rate
// string is parsed at wiring time; a malformed one is a configuration error
// and aborts startup.
func RateLimit(limiter *ratelimit.Limiter, spec string) fiber.Handler {
	rate, err := ratelimit.ParseRate(spec)
	if err != nil {
		log.Fatalf("invalid rate limit configuration: %v", err)
	}

	return func(c *fiber.Ctx) error {
		identifier := fmt.Sprintf("%s:%s", c.Route().Path, c.IP())

		if !limiter.Allow(c.Context(), identifier, rate) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fmt.Sprintf("Rate limit exceeded. Maximum %d requests per %d seconds allowed.", rate.MaxRequests, rate.WindowSeconds),
			})
		}

		return c.Next()
	}
}
