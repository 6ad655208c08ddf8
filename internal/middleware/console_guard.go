package middleware

import (
	"errors"
	"net/url"

	"retail-mis-console/internal/model"
	"retail-mis-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

const decisionLocal = "access_decision"

// ConsoleGuard checks the :view route parameter against the caller's session.
// Only authorized requests reach the next handler.
func ConsoleGuard(guard *service.AccessGuard, sessions *service.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := url.PathUnescape(c.Params("view"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid view"})
		}

		store := sessions.Scope(Scope(c))
		d, err := guard.Check(c.UserContext(), store, model.ViewID(raw))
		if errors.Is(err, service.ErrNavigationSuperseded) {
			return nil
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Access check failed"})
		}

		if !d.Authorized() {
			return c.Redirect(d.RedirectRoute(), fiber.StatusFound)
		}
		c.Locals(decisionLocal, d)
		return c.Next()
	}
}

// Decision returns the authorized decision set by ConsoleGuard
func Decision(c *fiber.Ctx) (service.Decision, bool) {
	d, ok := c.Locals(decisionLocal).(service.Decision)
	return d, ok && d.Authorized()
}
