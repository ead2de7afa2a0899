package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxReviewIDLen = 64  // reviews.review_id VARCHAR(64)
	MaxVoterIDLen  = 64  // review_votes.voter_id VARCHAR(64)
	MaxStaffIDLen  = 64  // moderation_queue.assigned_to VARCHAR(64)
	MaxEntryIDLen  = 36  // moderation_queue.id UUID
	MaxReasonLen   = 500 // moderation_queue.reason / moderation_log.reason
)

var (
	// idRe matches opaque identifiers: alphanumeric, dash, underscore.
	idRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// entryIDRe matches UUID-shaped queue entry IDs.
	entryIDRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateReviewID checks that a review ID is well-formed and within DB limits.
func ValidateReviewID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "reviewId is required"
	}
	if len(id) > MaxReviewIDLen {
		return "", "reviewId must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", "reviewId contains invalid characters"
	}
	return id, ""
}

// ValidateVoterID checks that a voter ID is well-formed.
func ValidateVoterID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "voterId is required"
	}
	if len(id) > MaxVoterIDLen {
		return "", "voterId must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", "voterId contains invalid characters"
	}
	return id, ""
}

// ValidateStaffID checks that a moderator/staff ID is well-formed.
func ValidateStaffID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "moderatorId is required"
	}
	if len(id) > MaxStaffIDLen {
		return "", "moderatorId must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", "moderatorId contains invalid characters"
	}
	return id, ""
}

// ValidateEntryID checks that a queue entry ID is a UUID.
func ValidateEntryID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "entryId is required"
	}
	if !entryIDRe.MatchString(id) {
		return "", "entryId must be a UUID"
	}
	return id, ""
}

// ValidateReason trims and truncates a free-text reason to DB limits.
func ValidateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLen {
		reason = reason[:MaxReasonLen]
	}
	return reason
}
