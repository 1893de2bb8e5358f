package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Pinger checks one backing service.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler takes a nil redis pinger when revalidation runs without Redis.
func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		Redis:     "disabled",
	}
	if err := h.db(ctx); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}
	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis(ctx); err != nil {
			resp.Status = "degraded"
			resp.Redis = "unhealthy: " + err.Error()
		}
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
