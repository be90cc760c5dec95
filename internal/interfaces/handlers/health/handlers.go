package health

import (
	"context"

	healthsvc "kitab-backend/internal/application/health"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Service        *healthsvc.Service
	HealthAdminKey string
}

// GET /health/json — service status, runtime, traffic, dependencies
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := h.Service.Collect(context.Background())
	return c.JSON(fiber.Map{
		"service":      "kitab-api",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
		"timestamp":    result.Timestamp,
	})
}

// GET /health/reset — clears traffic counters. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	keys := []string{
		middleware.KeyReqTotal, middleware.KeyReqErrors,
		middleware.KeyResTime, middleware.KeyResCount, middleware.KeyLastReq,
	}
	if err := h.Service.Rdb.Del(context.Background(), keys...).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"reset": true}, nil)
}
