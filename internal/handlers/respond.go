package handlers

import (
	"errors"
	"fmt"
	"log"

	"ratehub/internal/session"
	"ratehub/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationFailed reports per-field validation messages before any
// upstream request is made.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// upstreamFailed maps an upstream error onto the view boundary. A 401
// means the token is invalid or expired: the session is cleared and the
// user sent back to login. Everything else surfaces as a transient
// failure; local state stays untouched and nothing is retried.
func upstreamFailed(c *fiber.Ctx, sessions *session.Store, err error) error {
	if errors.Is(err, upstream.ErrUnauthorized) {
		if lerr := sessions.Logout(); lerr != nil {
			log.Printf("Error clearing session after upstream 401: %v", lerr)
		}
		return c.Redirect("/login", fiber.StatusFound)
	}

	status := fiber.StatusBadGateway
	switch {
	case errors.Is(err, upstream.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, upstream.ErrNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Request to the rating service failed",
		"error":   err.Error(),
	})
}
