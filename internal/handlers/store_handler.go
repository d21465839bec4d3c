package handlers

import (
	"errors"
	"log"
	"strconv"
	"sync"

	"ratehub/internal/models"
	"ratehub/internal/services"
	"ratehub/internal/session"
	"ratehub/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler owns the normal user's store browser and drives the rating
// workflow. It keeps the last fetched catalog so a submission knows
// whether the pair was already rated and what value is on display.
type StoreHandler struct {
	client   upstream.Client
	ratings  *services.RatingService
	sessions *session.Store

	mu     sync.Mutex
	cached []models.RatedStore
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(client upstream.Client, ratings *services.RatingService, sessions *session.Store) *StoreHandler {
	return &StoreHandler{
		client:   client,
		ratings:  ratings,
		sessions: sessions,
	}
}

// RegisterRoutes registers the browser routes; the caller supplies the
// role-guarded router group.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stores", h.HandleStores)
	router.Post("/stores/:id/rating", h.HandleRate)
}

// HandleStores returns the browsable catalog, filtered by ?search= across
// name and address.
func (h *StoreHandler) HandleStores(c *fiber.Ctx) error {
	stores, err := h.client.ListRatedStores(c.Context())
	if err != nil {
		log.Printf("Error fetching stores: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	h.setCache(stores)

	search := c.Query("search")
	filtered := make([]models.RatedStore, 0, len(stores))
	for _, s := range stores {
		if matchesSearch(search, s.Name, s.Address) {
			filtered = append(filtered, s)
		}
	}
	return c.JSON(fiber.Map{"stores": filtered})
}

// HandleRate submits a rating for one store. The displayed list is only
// replaced by the authoritative refresh after a successful submission; on
// failure it stays exactly as it was.
func (h *StoreHandler) HandleRate(c *fiber.Ctx) error {
	storeID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid store id",
		})
	}
	var body struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing rating body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	store, ok := h.lookup(storeID)
	if !ok {
		// The browser may not have loaded the catalog yet in this
		// process; fetch it once before giving up.
		stores, ferr := h.client.ListRatedStores(c.Context())
		if ferr != nil {
			log.Printf("Error fetching stores before rating: %v", ferr)
			return upstreamFailed(c, h.sessions, ferr)
		}
		h.setCache(stores)
		if store, ok = h.lookup(storeID); !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Store not found",
			})
		}
	}

	current := 0
	if store.YourRating != nil {
		current = *store.YourRating
	}
	result, err := h.ratings.Submit(c.Context(), storeID, body.Rating, store.HasRated(), current)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Failed to submit rating",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A submission for this store is already in progress",
			})
		}
		log.Printf("Error submitting rating for store %d: %v", storeID, err)
		return upstreamFailed(c, h.sessions, err)
	}

	if result.Skipped {
		return c.JSON(fiber.Map{
			"message": "Rating unchanged",
			"stores":  h.snapshot(),
		})
	}

	h.setCache(result.Stores)
	message := "Rating submitted!"
	if result.Updated {
		message = "Rating updated!"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"stores":  result.Stores,
	})
}

func (h *StoreHandler) setCache(stores []models.RatedStore) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cached = stores
}

func (h *StoreHandler) snapshot() []models.RatedStore {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cached
}

func (h *StoreHandler) lookup(storeID int64) (models.RatedStore, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.cached {
		if s.ID == storeID {
			return s, true
		}
	}
	return models.RatedStore{}, false
}
