package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"ratehub/internal/models"
	"ratehub/internal/services"
	"ratehub/internal/session"
	"ratehub/pkg/sortable"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler owns the admin views: dashboard counts, the sortable user
// and store lists, and account creation.
type AdminHandler struct {
	admin    *services.AdminService
	sessions *session.Store
	validate *validator.Validate

	usersTable  *sortable.Table[models.User]
	storesTable *sortable.Table[models.Store]
}

// NewAdminHandler creates an AdminHandler with its table descriptors.
func NewAdminHandler(admin *services.AdminService, sessions *session.Store) (*AdminHandler, error) {
	usersTable, err := sortable.New(
		sortable.Column[models.User]{Key: "name", Label: "Name", Value: func(u models.User) any { return u.Name }},
		sortable.Column[models.User]{Key: "email", Label: "Email", Value: func(u models.User) any { return u.Email }},
		sortable.Column[models.User]{Key: "address", Label: "Address", Value: func(u models.User) any { return u.Address }},
		sortable.Column[models.User]{
			Key:    "role",
			Label:  "Role",
			Value:  func(u models.User) any { return string(u.Role) },
			Render: renderRole,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build users table: %w", err)
	}
	usersTable.OnSelect = func(u models.User) {
		log.Printf("Viewing details for user: %s", u.Name)
	}

	storesTable, err := sortable.New(
		sortable.Column[models.Store]{Key: "name", Label: "Name", Value: func(s models.Store) any { return s.Name }},
		sortable.Column[models.Store]{Key: "email", Label: "Email", Value: func(s models.Store) any { return s.Email }},
		sortable.Column[models.Store]{Key: "address", Label: "Address", Value: func(s models.Store) any { return s.Address }},
		sortable.Column[models.Store]{
			Key:    "averageRating",
			Label:  "Rating",
			Value:  func(s models.Store) any { return s.AverageRating },
			Render: renderAverage,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build stores table: %w", err)
	}

	return &AdminHandler{
		admin:       admin,
		sessions:    sessions,
		validate:    models.NewValidator(),
		usersTable:  usersTable,
		storesTable: storesTable,
	}, nil
}

// RegisterRoutes registers the admin routes; the caller supplies the
// role-guarded router group.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
	router.Get("/users", h.HandleUsers)
	router.Get("/users/:id", h.HandleUserDetail)
	router.Post("/users", h.HandleAddUser)
	router.Get("/stores", h.HandleStores)
}

// HandleDashboard returns the platform-wide counts.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	stats, err := h.admin.Dashboard(c.Context())
	if err != nil {
		log.Printf("Error fetching admin dashboard: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	return c.JSON(stats)
}

// HandleUsers returns the user list, filtered by ?search= and sorted per
// the table state; ?sort=<column> toggles the sort first.
func (h *AdminHandler) HandleUsers(c *fiber.Ctx) error {
	users, err := h.admin.Users(c.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}

	if col := c.Query("sort"); col != "" {
		h.usersTable.ToggleSort(col)
	}
	search := c.Query("search")
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if matchesSearch(search, u.Name, u.Email, u.Address, string(u.Role)) {
			filtered = append(filtered, u)
		}
	}
	return c.JSON(tableView(h.usersTable, filtered))
}

// HandleUserDetail resolves one user from the list and runs the table's
// row-selection callback.
func (h *AdminHandler) HandleUserDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}
	users, err := h.admin.Users(c.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	for _, u := range users {
		if u.ID == id {
			h.usersTable.Select(u)
			return c.JSON(u)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("User with ID %d not found", id),
	})
}

// HandleAddUser runs the account-creation workflow. A store owner's
// linked store is created in the same step; when that second call fails
// the created account is reported as a partial failure, not rolled back.
func (h *AdminHandler) HandleAddUser(c *fiber.Ctx) error {
	var req models.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.admin.AddUser(c.Context(), req)
	if err != nil {
		var partial *services.StoreCreationError
		if errors.As(err, &partial) {
			log.Printf("Partial failure creating store owner %d: %v", partial.UserID, err)
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"message": "User was created but the linked store was not",
				"user":    user,
				"error":   partial.Err.Error(),
			})
		}
		log.Printf("Error creating user: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleStores returns the store list with the same search and sort
// semantics as the user list.
func (h *AdminHandler) HandleStores(c *fiber.Ctx) error {
	stores, err := h.admin.Stores(c.Context())
	if err != nil {
		log.Printf("Error fetching stores: %v", err)
		return upstreamFailed(c, h.sessions, err)
	}

	if col := c.Query("sort"); col != "" {
		h.storesTable.ToggleSort(col)
	}
	search := c.Query("search")
	filtered := make([]models.Store, 0, len(stores))
	for _, s := range stores {
		if matchesSearch(search, s.Name, s.Email, s.Address) {
			filtered = append(filtered, s)
		}
	}
	return c.JSON(tableView(h.storesTable, filtered))
}

// renderRole displays a role the way the admin list shows it: uppercased
// with the underscore dropped.
func renderRole(v any) string {
	role, _ := v.(string)
	return strings.ToUpper(strings.ReplaceAll(role, "_", " "))
}

// renderAverage displays a server-computed average to one decimal, N/A
// when no rating exists yet.
func renderAverage(v any) string {
	avg, _ := v.(float64)
	if avg == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
