package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Dependency check verdicts. Redis being down only degrades readiness;
// the database being down fails it.
const (
	depUp       = "up"
	depDown     = "down"
	depDisabled = "disabled"
)

type depStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type readiness struct {
	Status        string               `json:"status"`
	Checks        map[string]depStatus `json:"checks"`
	UptimeSeconds int                  `json:"uptime_seconds"`
	Version       string               `json:"version"`
}

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live. Always ok while the process serves.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready with per-dependency checks. Anything
// short of a healthy database and cache answers 503 so load balancers
// drain the instance.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	resp := readiness{
		Status: "healthy",
		Checks: map[string]depStatus{
			"database": timedCheck(ctx, h.pool.Ping),
			"redis":    h.checkRedis(ctx),
		},
		UptimeSeconds: int(time.Since(h.startAt).Seconds()),
		Version:       "1.0.0",
	}

	for _, dep := range resp.Checks {
		if dep.Status == depDown {
			resp.Status = "degraded"
		}
	}

	code := fiber.StatusOK
	if resp.Status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func (h *HealthHandler) checkRedis(ctx context.Context) depStatus {
	if h.rdb == nil {
		return depStatus{Status: depDisabled}
	}
	return timedCheck(ctx, func(ctx context.Context) error {
		return h.rdb.Ping(ctx).Err()
	})
}

// timedCheck runs one dependency ping and records its round-trip time.
func timedCheck(ctx context.Context, ping func(context.Context) error) depStatus {
	start := time.Now()
	err := ping(ctx)
	d := depStatus{
		Status:    depUp,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		d.Status = depDown
		d.Error = "connection failed"
	}
	return d
}
