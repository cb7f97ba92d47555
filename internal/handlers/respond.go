package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RouteNotFound answers method/path combinations that fall inside a
// matched API prefix but match no registered route.
func RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "Route not found",
	})
}

// APINotFound answers requests outside every registered prefix.
func APINotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "API endpoint not found",
	})
}

// parseID reads the :id path segment. The ok result is false for
// non-numeric input, which handlers treat the same as an absent record.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
