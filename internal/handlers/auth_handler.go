package handlers

import (
	"log"

	"ratehub/internal/models"
	"ratehub/internal/services"
	"ratehub/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler owns the unguarded views: home, login, registration, logout,
// plus the password-change view shared by normal users and store owners.
type AuthHandler struct {
	accounts *services.AccountService
	sessions *session.Store
	validate *validator.Validate
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts *services.AccountService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		validate: models.NewValidator(),
	}
}

// RegisterRoutes registers the auth routes. passwordGuard protects the
// password-change view for the roles allowed to reach it.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, passwordGuard fiber.Handler) {
	router.Get("/", h.HandleHome)
	router.Get("/login", h.HandleLoginView)
	router.Post("/auth/login", h.HandleLogin)
	router.Post("/auth/logout", h.HandleLogout)
	router.Post("/auth/register", h.HandleRegister)
	router.Put("/account/password", passwordGuard, h.HandleUpdatePassword)
}

// HandleHome reports the current identity and where its role lands.
func (h *AuthHandler) HandleHome(c *fiber.Ctx) error {
	snap := h.sessions.Current()
	if !snap.Active() {
		return c.JSON(fiber.Map{
			"message": "Not signed in",
			"login":   "/login",
		})
	}
	return c.JSON(fiber.Map{
		"user":    snap.User,
		"landing": snap.User.Role.LandingPath(),
	})
}

// HandleLoginView is the landing view for unauthenticated redirects.
func (h *AuthHandler) HandleLoginView(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Sign in to your account",
		"submit":  "/auth/login",
	})
}

// HandleLogin authenticates and redirects to the role's landing view.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.accounts.Login(c.Context(), req)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Login successful",
		"user":     user,
		"redirect": user.Role.LandingPath(),
	})
}

// HandleLogout clears the session. Idempotent.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.accounts.Logout(); err != nil {
		log.Printf("Error during logout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Logout failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":  "Logged out",
		"redirect": "/login",
	})
}

// HandleRegister creates a normal-user account and points at login.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.accounts.Register(c.Context(), req); err != nil {
		log.Printf("Error registering %s: %v", req.Email, err)
		return upstreamFailed(c, h.sessions, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Registration successful! Please log in.",
		"redirect": "/login",
	})
}

// HandleUpdatePassword changes the password for the logged-in user.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req models.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing password update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.accounts.UpdatePassword(c.Context(), req); err != nil {
		log.Printf("Error updating password: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}
