package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/middleware"
)

// Business codes that describe a well-formed request the schedule cannot
// honour. Every other business code is an input error.
var unprocessableCodes = map[string]string{
	"outside_availability": "The requested window is not offered for this staff member.",
	"too_soon":             "The requested window starts too soon.",
}

var businessMessages = map[string]string{
	"invalid_date":           "Invalid date, expected YYYY-MM-DD.",
	"invalid_time":           "Invalid time, expected HH:MM that exists on that date.",
	"invalid_window":         "End must be after start.",
	"invalid_total_price":    "Total price must not be negative.",
	"invalid_buffer":         "Buffer must not be negative.",
	"missing_requester":      "Guest name and phone are required.",
	"invalid_phone":          "Invalid phone number.",
	"no_variations":          "At least one service variation is required.",
	"duration_mismatch":      "Window length does not match the selected services.",
	"invalid_payment_method": "Unknown payment method.",
	"invalid_timezone":       "Saloon timezone is not a valid IANA zone.",
	"invalid_state":          "Appointment cannot change to this status.",
	"invalid_working_day":    "Invalid working day configuration.",
	"invalid_break":          "Invalid break configuration.",
	"invalid_month":          "Invalid year or month.",
}

// writeError maps use case errors onto the HTTP error envelope.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		httperr.Conflict(c, domain.ErrConflict.Error(), "This slot was just booked. Please pick another one.")
		return
	case errors.Is(err, domain.ErrIdempotencyConflict):
		httperr.Conflict(c, domain.ErrIdempotencyConflict.Error(), "Idempotency-Key already used for a different booking.")
		return
	case errors.Is(err, domain.ErrSaloonNotFound):
		httperr.NotFound(c, "saloon_not_found", "Saloon not found.")
		return
	case errors.Is(err, domain.ErrStaffNotFound):
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	case errors.Is(err, domain.ErrVariationNotFound):
		httperr.NotFound(c, "variation_not_found", "Service variation not found.")
		return
	case errors.Is(err, domain.ErrAppointmentNotFound):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		middleware.Logger(c, log).Warn("store unavailable", zap.Error(err))
		httperr.Unavailable(c, domain.ErrStoreUnavailable.Error(), "Temporarily unavailable, please retry.")
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if msg, ok := unprocessableCodes[code]; ok {
			httperr.Unprocessable(c, code, msg)
			return
		}
		msg, ok := businessMessages[code]
		if !ok {
			msg = code
		}
		httperr.BadRequest(c, code, msg)
		return
	}

	middleware.Logger(c, log).Error("request failed", zap.Error(err))
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
