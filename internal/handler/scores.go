package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/service"
)

// ScoresHandler serves the read-heavy helpfulness and engagement lookups
// through the cache-aside layer.
type ScoresHandler struct {
	helpfulness *service.HelpfulnessService
	engagement  *service.EngagementService
	cache       *service.CacheService
}

func NewScoresHandler(helpfulness *service.HelpfulnessService, engagement *service.EngagementService, cache *service.CacheService) *ScoresHandler {
	return &ScoresHandler{helpfulness: helpfulness, engagement: engagement, cache: cache}
}

// GetHelpfulness handles GET /api/reviews/:reviewId/helpfulness
func (h *ScoresHandler) GetHelpfulness(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if cached, err := h.cache.GetHelpfulness(c.Context(), reviewID); err == nil && cached != nil {
		Metrics.CacheHits.Inc()
		c.Set("Content-Type", "application/json")
		return c.Send(cached)
	}
	Metrics.CacheMisses.Inc()

	score, err := h.helpfulness.Get(c.Context(), reviewID)
	if err != nil {
		return respondError(c, err)
	}

	_ = h.cache.SetHelpfulness(c.Context(), reviewID, score)
	return c.JSON(score)
}

// GetEngagement handles GET /api/reviews/:reviewId/engagement
func (h *ScoresHandler) GetEngagement(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if cached, err := h.cache.GetEngagement(c.Context(), reviewID); err == nil && cached != nil {
		Metrics.CacheHits.Inc()
		c.Set("Content-Type", "application/json")
		return c.Send(cached)
	}
	Metrics.CacheMisses.Inc()

	rec, err := h.engagement.Get(c.Context(), reviewID)
	if err != nil {
		return respondError(c, err)
	}

	_ = h.cache.SetEngagement(c.Context(), reviewID, rec)
	return c.JSON(rec)
}

// TrackEngagement handles POST /api/reviews/:reviewId/engagement/:event
func (h *ScoresHandler) TrackEngagement(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	event := model.EngagementEvent(c.Params("event"))
	viewerID := c.Get("X-Voter-ID")

	rec, err := h.engagement.Track(c.Context(), reviewID, event, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	Metrics.EngagementEvents.WithLabelValues(string(event)).Inc()
	return c.JSON(rec)
}
