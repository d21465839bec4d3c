package handlers

import (
	"log"

	"ratehub/internal/session"
	"ratehub/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// OwnerHandler owns the store owner's dashboard: the store's average and
// the ratings individual users left.
type OwnerHandler struct {
	client   upstream.Client
	sessions *session.Store
}

// NewOwnerHandler creates an OwnerHandler.
func NewOwnerHandler(client upstream.Client, sessions *session.Store) *OwnerHandler {
	return &OwnerHandler{
		client:   client,
		sessions: sessions,
	}
}

// RegisterRoutes registers the owner routes; the caller supplies the
// role-guarded router group.
func (h *OwnerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard returns the owner's store summary.
func (h *OwnerHandler) HandleDashboard(c *fiber.Ctx) error {
	dash, err := h.client.OwnerDashboard(c.Context())
	if err != nil {
		log.Printf("Error fetching owner dashboard: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	return c.JSON(dash)
}
