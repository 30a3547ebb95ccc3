package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	ping func() error
}

// NewHealthHandler creates a HealthHandler that probes the store with ping.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// HandleHealth answers 200 when the database responds, 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	code, status, database := fiber.StatusOK, "healthy", "up"
	if err := h.ping(); err != nil {
		code, status, database = fiber.StatusServiceUnavailable, "unhealthy", "down"
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
