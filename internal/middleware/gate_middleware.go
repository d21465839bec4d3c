package middleware

import (
	"ratehub/internal/gate"
	"ratehub/internal/models"
	"ratehub/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RequireRole is a Fiber middleware evaluating the access gate on every
// request to a guarded view. The session is re-read each time; a logout
// between navigations takes effect immediately.
func RequireRole(sessions *session.Store, allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch gate.Decide(sessions.Current(), allowed...) {
		case gate.Allow:
			return c.Next()
		case gate.RedirectToLogin:
			return c.Redirect("/login", fiber.StatusFound)
		default:
			return c.Redirect("/", fiber.StatusFound)
		}
	}
}
