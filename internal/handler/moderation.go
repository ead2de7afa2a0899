package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/service"
)

// ModerationHandler serves the staff-facing moderation surface: analysis,
// queue operations, history, and performance stats.
type ModerationHandler struct {
	moderation *service.ModerationService
	queue      *service.QueueService
	audit      *service.AuditService
}

func NewModerationHandler(moderation *service.ModerationService, queue *service.QueueService, audit *service.AuditService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, queue: queue, audit: audit}
}

// Analyze handles POST /api/moderation/analyze/:reviewId
func (h *ModerationHandler) Analyze(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.moderation.Analyze(c.Context(), reviewID)
	if err != nil {
		return respondError(c, err)
	}

	Metrics.ModerationDecisions.WithLabelValues(resp.TerminalAction).Inc()
	return c.JSON(resp)
}

// GetResult handles GET /api/moderation/result/:reviewId
func (h *ModerationHandler) GetResult(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.moderation.LatestResult(c.Context(), reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetQueue handles GET /api/moderation/queue?status=&assignedTo=&minPriority=
func (h *ModerationHandler) GetQueue(c fiber.Ctx) error {
	filter := model.QueueFilter{
		Status:     model.QueueStatus(c.Query("status")),
		AssignedTo: c.Query("assignedTo"),
	}
	if mp := c.Query("minPriority"); mp != "" {
		v, err := strconv.ParseFloat(mp, 64)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "minPriority must be a number")
		}
		filter.MinPriority = v
	}
	if lim := c.Query("limit"); lim != "" {
		v, err := strconv.Atoi(lim)
		if err != nil || v < 1 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "limit must be a positive integer")
		}
		filter.Limit = v
	}

	entries, err := h.queue.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries, "count": len(entries)})
}

// Assign handles POST /api/moderation/queue/:entryId/assign
func (h *ModerationHandler) Assign(c fiber.Ctx) error {
	entryID, errMsg := middleware.ValidateEntryID(c.Params("entryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.AssignRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	moderatorID, errMsg := middleware.ValidateStaffID(req.ModeratorID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entry, err := h.queue.Assign(c.Context(), entryID, moderatorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Escalate handles POST /api/moderation/queue/:entryId/escalate
func (h *ModerationHandler) Escalate(c fiber.Ctx) error {
	entryID, errMsg := middleware.ValidateEntryID(c.Params("entryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.EscalateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	reason := middleware.ValidateReason(req.Reason)
	if reason == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "reason is required")
	}

	entry, err := h.queue.Escalate(c.Context(), entryID, reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Complete handles POST /api/moderation/queue/:entryId/complete
func (h *ModerationHandler) Complete(c fiber.Ctx) error {
	entryID, errMsg := middleware.ValidateEntryID(c.Params("entryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entry, err := h.queue.Complete(c.Context(), entryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// Cancel handles POST /api/moderation/queue/:entryId/cancel
func (h *ModerationHandler) Cancel(c fiber.Ctx) error {
	entryID, errMsg := middleware.ValidateEntryID(c.Params("entryId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CancelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	entry, err := h.queue.Cancel(c.Context(), entryID, middleware.ValidateReason(req.Reason))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// History handles GET /api/moderation/history/:reviewId
func (h *ModerationHandler) History(c fiber.Ctx) error {
	reviewID, errMsg := middleware.ValidateReviewID(c.Params("reviewId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, err := h.audit.History(c.Context(), reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reviewId": reviewID, "entries": entries})
}

// Stats handles GET /api/moderation/stats
func (h *ModerationHandler) Stats(c fiber.Ctx) error {
	ledgerStats, err := h.audit.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	queueStats, err := h.queue.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ledger": ledgerStats,
		"queue":  queueStats,
	})
}
