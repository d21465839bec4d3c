package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ratehub/internal/handlers"
	"ratehub/internal/middleware"
	"ratehub/internal/models"
	"ratehub/internal/services"
	"ratehub/internal/session"
	"ratehub/internal/upstream"
)

func main() {
	// --- Configuration ---
	// Viper reads from environment variables with sensible local defaults.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("UPSTREAM_URL", "http://localhost:3000")
	viper.SetDefault("UPSTREAM_FAKE", false)
	viper.SetDefault("SESSION_DRIVER", "sqlite") // sqlite | postgres | memory
	viper.SetDefault("SESSION_DSN", "ratehub.db")
	viper.SetDefault("SESSION_SECRET", "") // empty stores the session unsealed
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Session persistence ---
	persist, err := buildPersistence()
	if err != nil {
		log.Fatalf("Failed to initialize session persistence: %v", err)
	}

	// The one process-wide session store; restores any surviving session.
	sessions, err := session.NewStore(persist)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	if snap := sessions.Current(); snap.Active() {
		log.Printf("Restored session for %s (%s)", snap.User.Email, snap.User.Role)
	}

	// --- Upstream client ---
	// The session store doubles as the bearer token source.
	var client upstream.Client
	if viper.GetBool("UPSTREAM_FAKE") {
		fake := upstream.NewFake(sessions)
		seedDemoData(fake)
		client = fake
		log.Println("Using the in-memory fake backend (UPSTREAM_FAKE=true)")
	} else {
		client, err = upstream.NewHTTPClient(viper.GetString("UPSTREAM_URL"), sessions)
		if err != nil {
			log.Fatalf("Failed to initialize upstream client: %v", err)
		}
	}

	// --- Services ---
	accountService := services.NewAccountService(client, sessions)
	ratingService := services.NewRatingService(client)
	adminService := services.NewAdminService(client)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(accountService, sessions)
	adminHandler, err := handlers.NewAdminHandler(adminService, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize admin handler: %v", err)
	}
	storeHandler := handlers.NewStoreHandler(client, ratingService, sessions)
	ownerHandler := handlers.NewOwnerHandler(client, sessions)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	// The access gate wraps every role-restricted group; it is evaluated
	// on each navigation, so a logout takes effect immediately.
	authHandler.RegisterRoutes(app,
		middleware.RequireRole(sessions, models.RoleNormal, models.RoleStoreOwner))

	adminRoutes := app.Group("/admin", middleware.RequireRole(sessions, models.RoleAdmin))
	adminHandler.RegisterRoutes(adminRoutes)

	userRoutes := app.Group("/user", middleware.RequireRole(sessions, models.RoleNormal))
	storeHandler.RegisterRoutes(userRoutes)

	ownerRoutes := app.Group("/store", middleware.RequireRole(sessions, models.RoleStoreOwner))
	ownerHandler.RegisterRoutes(ownerRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting client on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Client gracefully stopped")
}

// buildPersistence picks the durable session backend from configuration.
func buildPersistence() (session.Persistence, error) {
	driver := viper.GetString("SESSION_DRIVER")
	switch driver {
	case "memory":
		return session.NewMemoryPersistence(), nil
	case "sqlite", "postgres":
		var dialector gorm.Dialector
		if driver == "postgres" {
			dialector = postgres.Open(viper.GetString("SESSION_DSN"))
		} else {
			dialector = sqlite.Open(viper.GetString("SESSION_DSN"))
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, err
		}
		var sealer *session.Sealer
		if secret := viper.GetString("SESSION_SECRET"); secret != "" {
			if sealer, err = session.NewSealer(secret); err != nil {
				return nil, err
			}
		}
		return session.NewGormPersistence(db, sealer)
	}
	log.Fatalf("Unknown SESSION_DRIVER %q (want sqlite, postgres or memory)", driver)
	return nil, nil
}

// seedDemoData populates the fake backend with one account per role and a
// couple of rated stores, so every view is reachable offline.
func seedDemoData(fake *upstream.Fake) {
	admin := fake.SeedUser(models.User{
		Name:  "Platform Administrator Account",
		Email: "admin@ratehub.local",
		Role:  models.RoleAdmin,
	}, "Admin#123")
	owner := fake.SeedUser(models.User{
		Name:    "Acme Hardware Store Owner Account",
		Email:   "owner@acme.local",
		Address: "12 Main Street",
		Role:    models.RoleStoreOwner,
	}, "Owner#123")
	normal := fake.SeedUser(models.User{
		Name:    "Regular Neighborhood Shopper Account",
		Email:   "shopper@ratehub.local",
		Address: "7 Side Street",
		Role:    models.RoleNormal,
	}, "Shopper#1")

	acme := fake.SeedStore(models.Store{
		Name:    "Acme Hardware",
		Email:   "owner@acme.local",
		Address: "12 Main Street",
	}, owner.ID)
	fake.SeedStore(models.Store{
		Name:    "Corner Groceries",
		Email:   "hello@corner.local",
		Address: "3 Market Square",
	}, 0)
	fake.SeedRating(normal.ID, acme.ID, 4)

	log.Printf("Seeded demo accounts: %s, %s, %s", admin.Email, owner.Email, normal.Email)
}
