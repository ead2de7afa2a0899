package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the review engine.
var Metrics = struct {
	VotesTotal          *prometheus.CounterVec
	EngagementEvents    *prometheus.CounterVec
	ModerationDecisions *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
	RequestsInFlight    prometheus.Gauge
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	ScoreRecalcDuration prometheus.Histogram
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_votes_total",
			Help: "Total helpfulness votes submitted, by kind.",
		},
		[]string{"kind"},
	)

	Metrics.EngagementEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_engagement_events_total",
			Help: "Total tracked engagement events, by event type.",
		},
		[]string{"event"},
	)

	Metrics.ModerationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_moderation_decisions_total",
			Help: "Terminal analyzer outcomes, by action.",
		},
		[]string{"action"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviews_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviews_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	Metrics.ScoreRecalcDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviews_score_recalculation_duration_seconds",
			Help:    "Duration of helpfulness score recalculations.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "reviews_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "reviews_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.EngagementEvents,
		Metrics.ModerationDecisions,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.ScoreRecalcDuration,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/reviews/"):
		rest := path[len("/api/reviews/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/reviews/:reviewId" + rest[i:]
		}
		return "/api/reviews/:reviewId"
	case strings.HasPrefix(path, "/api/moderation/analyze/"):
		return "/api/moderation/analyze/:reviewId"
	case strings.HasPrefix(path, "/api/moderation/result/"):
		return "/api/moderation/result/:reviewId"
	case strings.HasPrefix(path, "/api/moderation/history/"):
		return "/api/moderation/history/:reviewId"
	case strings.HasPrefix(path, "/api/moderation/queue/"):
		rest := path[len("/api/moderation/queue/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/moderation/queue/:entryId" + rest[i:]
		}
		return "/api/moderation/queue/:entryId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
