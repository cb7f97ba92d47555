package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/services"
)

// SessionKey is the Locals key under which a resolved session payload is
// stored for downstream handlers.
const SessionKey = "session"

// CookieName is the cookie carrying the opaque session token.
const CookieName = "token"

// OptionalSession resolves the session cookie when present and valid,
// storing the payload in Locals. Requests without a usable session pass
// through untouched.
func OptionalSession(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(CookieName); token != "" {
			if session, err := authService.Authenticate(token); err == nil {
				c.Locals(SessionKey, session.Data)
			}
		}
		return c.Next()
	}
}

// SessionRequired rejects requests that do not carry a valid session
// cookie.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := authService.Authenticate(c.Cookies(CookieName))
		if err != nil {
			if errors.Is(err, services.ErrInvalidSession) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "Authentication required",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		c.Locals(SessionKey, session.Data)
		return c.Next()
	}
}
