package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/observability"
	"github.com/spec-kit/nexushub/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	metrics     *observability.Metrics
	sessions    func() int
}

// NewHealthHandler returns a new handler instance. sessions reports the
// number of live workspaces and may be nil.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics, sessions func() int) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, metrics: metrics, sessions: sessions}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the configured dependencies.
// Dependencies that are not configured report "disabled".
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	pingers := []struct {
		name    string
		enabled bool
		ping    func(context.Context) error
	}{
		{name: "postgres", enabled: h.postgres.Enabled(), ping: h.postgres.Ping},
		{name: "redis", enabled: h.redis.Enabled(), ping: h.redis.Ping},
	}
	for _, dep := range pingers {
		if !dep.enabled {
			depStatus[dep.name] = "disabled"
			continue
		}
		if err := dep.ping(ctx); err != nil {
			depStatus[dep.name] = err.Error()
			ready = false
			continue
		}
		depStatus[dep.name] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics reports request, error and assist counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	body := fiber.Map{"metrics": h.metrics.Snapshot()}
	if h.sessions != nil {
		body["active_sessions"] = h.sessions()
	}
	return c.JSON(body)
}
