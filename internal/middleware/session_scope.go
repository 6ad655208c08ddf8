package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const scopeLocal = "session_scope"

// SessionScope identifies the caller's storage scope by cookie, issuing a new one when missing
func SessionScope(cookieName string, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := c.Cookies(cookieName)
		if _, err := uuid.Parse(scope); err != nil {
			scope = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    scope,
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(scopeLocal, scope)
		return c.Next()
	}
}

// Scope returns the storage scope set by SessionScope
func Scope(c *fiber.Ctx) string {
	scope, _ := c.Locals(scopeLocal).(string)
	return scope
}
