package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/handler"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Vote       *handler.VoteHandler
	Scores     *handler.ScoresHandler
	Moderation *handler.ModerationHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (no auth, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter().Handler()
	voteLimit := middleware.NewVoteSubmitRateLimiter().Handler()
	voteDeleteLimit := middleware.NewVoteDeleteRateLimiter().Handler()
	engagementLimit := middleware.NewEngagementRateLimiter().Handler()
	moderationLimit := middleware.NewModerationRateLimiter().Handler()

	api := app.Group("/api")

	// Vote routes (user-facing)
	api.Post("/votes", h.Vote.Submit, voteLimit)
	api.Delete("/votes", h.Vote.Delete, voteDeleteLimit)

	// Score routes (user-facing, cached reads)
	api.Get("/reviews/:reviewId/helpfulness", h.Scores.GetHelpfulness, readLimit)
	api.Get("/reviews/:reviewId/engagement", h.Scores.GetEngagement, readLimit)
	api.Post("/reviews/:reviewId/engagement/:event", h.Scores.TrackEngagement, engagementLimit)

	// Moderation routes (staff-facing)
	mod := api.Group("/moderation", moderationLimit)
	mod.Post("/analyze/:reviewId", h.Moderation.Analyze)
	mod.Get("/result/:reviewId", h.Moderation.GetResult)
	mod.Get("/queue", h.Moderation.GetQueue)
	mod.Post("/queue/:entryId/assign", h.Moderation.Assign)
	mod.Post("/queue/:entryId/escalate", h.Moderation.Escalate)
	mod.Post("/queue/:entryId/complete", h.Moderation.Complete)
	mod.Post("/queue/:entryId/cancel", h.Moderation.Cancel)
	mod.Get("/history/:reviewId", h.Moderation.History)
	mod.Get("/stats", h.Moderation.Stats)
}
