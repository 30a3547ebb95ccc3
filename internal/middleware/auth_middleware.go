package middleware

import (
	"log"

	"kvauth/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that rejects requests whose
// Authorization header does not pass AuthService.AuthorizeHeader. The
// rejection is returned as an error so the app's error handler renders it.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := authService.AuthorizeHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			log.Printf("Access token rejected for %s %s: %v", c.Method(), c.Path(), err)
			return err
		}

		if claims != nil {
			c.Locals("username", claims.Username)
		}
		return c.Next()
	}
}
