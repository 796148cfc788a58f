package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/response"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

func (hc *HealthController) Check(c *ctx.Context) {
	pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := hc.store.Ping(pingCtx); err != nil {
		c.Log().Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, response.Map{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, response.Map{"status": "ok"})
}
