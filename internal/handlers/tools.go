package handlers

import (
	"errors"
	"log"
	"sort"

	"medicaidgov/internal/medicaid"
	"medicaidgov/internal/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ToolsHandler handles tool listing and execution requests
type ToolsHandler struct {
	registry *tools.Registry
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(registry *tools.Registry) *ToolsHandler {
	return &ToolsHandler{registry: registry}
}

// ListTools returns all registered tools with their parameter schemas
func (h *ToolsHandler) ListTools(c *fiber.Ctx) error {
	list := h.registry.ListDetailed()
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return c.JSON(fiber.Map{
		"tools": list,
		"total": h.registry.Count(),
	})
}

// ExecuteRequest is the body of a tool execution call
type ExecuteRequest struct {
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ExecuteTool runs a named tool. Operation failures come back as a
// structured error payload carrying the method and original arguments so
// the caller can see exactly what failed.
func (h *ToolsHandler) ExecuteTool(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	var req ExecuteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Invalid request body",
			"request_id": requestID,
		})
	}
	if req.Tool == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "tool is required",
			"request_id": requestID,
		})
	}
	if _, exists := h.registry.Get(req.Tool); !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":      "tool " + req.Tool + " not found",
			"request_id": requestID,
		})
	}

	log.Printf("[TOOLS] %s executing %s", requestID, req.Tool)
	result, err := h.registry.Execute(req.Tool, req.Arguments)
	if err != nil {
		status := fiber.StatusInternalServerError
		var verr *medicaid.ValidationError
		if errors.As(err, &verr) {
			status = fiber.StatusBadRequest
		}
		log.Printf("[TOOLS] %s %s failed: %v", requestID, req.Tool, err)
		method, _ := req.Arguments["method"].(string)
		return c.Status(status).JSON(fiber.Map{
			"error":      err.Error(),
			"tool":       req.Tool,
			"method":     method,
			"arguments":  req.Arguments,
			"request_id": requestID,
		})
	}

	c.Set("Content-Type", "application/json")
	return c.SendString(result)
}
