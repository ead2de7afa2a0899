package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/service"
	"github.com/Kiran3100/Hostel-Main-sub000/pkg/hash"
)

type VoteHandler struct {
	svc    *service.VoteService
	ipSalt string
}

func NewVoteHandler(svc *service.VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	reviewID, errMsg := middleware.ValidateReviewID(req.ReviewID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ReviewID = reviewID

	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	if req.Kind == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "reviewId, voterId, and kind are required")
	}

	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	// The cast path includes the synchronous score recompute.
	start := time.Now()
	resp, err := h.svc.Cast(c.Context(), req, ipHash)
	if err != nil {
		return respondError(c, err)
	}
	Metrics.ScoreRecalcDuration.Observe(time.Since(start).Seconds())

	Metrics.VotesTotal.WithLabelValues(req.Kind).Inc()
	return c.JSON(resp)
}

// Delete handles DELETE /api/votes
func (h *VoteHandler) Delete(c fiber.Ctx) error {
	var req model.VoteDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	reviewID, errMsg := middleware.ValidateReviewID(req.ReviewID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ReviewID = reviewID

	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	if err := h.svc.Remove(c.Context(), req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
