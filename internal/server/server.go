package server

import (
	"kvauth/internal/config"
	"kvauth/internal/database"
	"kvauth/internal/handlers"
	"kvauth/internal/middleware"
	"kvauth/internal/repositories"
	"kvauth/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Store groups the repositories the app runs on.
type Store struct {
	Users repositories.UserRepository
	Data  repositories.DataRepository
	Ping  func() error
}

// GORMStore returns a Store backed by db.
func GORMStore(db *gorm.DB) Store {
	return Store{
		Users: repositories.NewGORMUserRepository(db),
		Data:  repositories.NewGORMDataRepository(db),
		Ping:  func() error { return database.Ping(db) },
	}
}

// MemoryStore returns a Store that keeps everything in process memory.
func MemoryStore() Store {
	return Store{
		Users: repositories.NewMemoryUserRepository(),
		Data:  repositories.NewMemoryDataRepository(),
		Ping:  func() error { return nil },
	}
}

// Options tweak the app built by New.
type Options struct {
	// Publisher receives domain events. Nil disables publishing.
	Publisher services.EventPublisher
	// DisableRequestLog turns off the per-request access log.
	DisableRequestLog bool
}

// New wires services and handlers over store onto a Fiber app.
func New(cfg config.Config, store Store, opts Options) *fiber.App {
	authService := services.NewAuthService(store.Users, opts.Publisher, services.AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.TokenTTL,
		StaticBearerToken: cfg.StaticBearerToken,
	})
	dataService := services.NewDataService(store.Data, opts.Publisher)

	authHandler := handlers.NewAuthHandler(authService)
	dataHandler := handlers.NewDataHandler(dataService)
	healthHandler := handlers.NewHealthHandler(store.Ping)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if !opts.DisableRequestLog {
		app.Use(logger.New())
	}

	app.Get("/health", healthHandler.HandleHealth)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)

	data := api.Group("/data", middleware.AuthRequired(authService))
	dataHandler.RegisterRoutes(data)

	return app
}
