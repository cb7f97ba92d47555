package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth answers the liveness probe with the standard envelope and
// a server-side timestamp.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "API is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
