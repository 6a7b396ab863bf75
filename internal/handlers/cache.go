package handlers

import (
	"log"

	"medicaidgov/internal/cache"

	"github.com/gofiber/fiber/v2"
)

// CacheHandler exposes cache introspection and invalidation
type CacheHandler struct {
	cache *cache.Manager
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(c *cache.Manager) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Stats returns per-entry cache metadata
func (h *CacheHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.cache.GetStats())
}

// Clear drops every cached dataset. The next query re-fetches upstream.
func (h *CacheHandler) Clear(c *fiber.Ctx) error {
	h.cache.Clear()
	log.Printf("[CACHE] cleared via API")
	return c.JSON(fiber.Map{
		"status": "cleared",
	})
}
