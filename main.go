package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"kvauth/internal/config"
	"kvauth/internal/database"
	"kvauth/internal/server"
	"kvauth/pkg/rabbitmq"
)

// application bundles the HTTP app with the resources it owns.
type application struct {
	http     *fiber.App
	db       *gorm.DB         // nil for the memory driver
	mqClient *rabbitmq.Client // nil when RABBITMQ_URL is unset
}

// newApplication opens the store, connects to RabbitMQ when configured and
// builds the HTTP app.
func newApplication(cfg config.Config) (*application, error) {
	a := &application{}

	var store server.Store
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Println("Using in-memory store. Data will be lost on restart.")
		store = server.MemoryStore()
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.db = db
		store = server.GORMStore(db)
	}

	opts := server.Options{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			a.closeDB()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mqClient = mqClient
		opts.Publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL is not set. Domain events will not be published.")
	}

	a.http = server.New(cfg, store, opts)
	return a, nil
}

func (a *application) closeDB() {
	if a.db == nil {
		return
	}
	if err := database.Close(a.db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Close shuts down the HTTP app, then the broker and the database.
func (a *application) Close() {
	if err := a.http.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if a.mqClient != nil {
		if err := a.mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	a.closeDB()
}

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := newApplication(cfg)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	if app.mqClient != nil {
		log.Println("Starting RabbitMQ audit consumer...")
		if err := app.mqClient.ConsumeEvents(rabbitmq.AuditLogHandler); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.http.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	app.Close()
	log.Println("Server gracefully stopped")
}
