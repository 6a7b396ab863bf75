package handlers

import (
	"time"

	"medicaidgov/internal/cache"
	"medicaidgov/internal/jobs"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	cache     *cache.Manager
	scheduler *jobs.JobScheduler
}

// NewHealthHandler creates a new health handler. scheduler may be nil when
// background refresh is disabled.
func NewHealthHandler(c *cache.Manager, scheduler *jobs.JobScheduler) *HealthHandler {
	return &HealthHandler{cache: c, scheduler: scheduler}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	stats := h.cache.GetStats()
	body := fiber.Map{
		"status":         "healthy",
		"cached_entries": stats.Entries,
		"timestamp":      time.Now().Format(time.RFC3339),
	}
	if h.scheduler != nil {
		body["jobs"] = h.scheduler.GetStatus()
	}
	return c.JSON(body)
}
