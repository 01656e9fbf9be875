package handler

import (
	"context"
	"net/http"
	"time"

	"tha-drop/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	metrics http.Handler
}

// NewHealthHandler serves liveness and, when metrics is set, /metrics.
func NewHealthHandler(store Pinger, metrics http.Handler) *HealthHandler {
	return &HealthHandler{store: store, metrics: metrics}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	if h.metrics != nil {
		r.Get("/metrics", adaptor.HTTPHandler(h.metrics))
	}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "store unavailable", nil)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
}
