package handlers

import (
	"ecofinds/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ensureSID returns the session id cookie, minting one for first-time visitors
// so anonymous carts and favorites work before login.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
		})
	}
	return sid
}

// currentUser reads the identity RequireUser (or the session middleware)
// attached to the request context. Nil when the visitor is anonymous.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
