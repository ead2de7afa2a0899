package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/middleware"
)

// respondError maps the error taxonomy to HTTP. Vote/score endpoints are
// user-facing and return validation errors directly; moderation endpoints
// surface conflict and transition errors explicitly so staff UIs can
// refresh state.
func respondError(c fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case apperr.KindNotFound:
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case apperr.KindInvalidTransition:
		return middleware.ErrorResponse(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case apperr.KindConflict:
		return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case apperr.KindOracleUnavailable:
		// Recovered upstream into manual review; reaching here means the
		// recovery itself failed.
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "ORACLE_UNAVAILABLE", err.Error())
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
