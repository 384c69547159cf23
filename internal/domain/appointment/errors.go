package appointment

import "errors"

var (
	// ErrConflict means the requested window overlaps an appointment that
	// was committed first. The client should pick another slot.
	ErrConflict = errors.New("slot_no_longer_available")

	// ErrIdempotencyConflict means an Idempotency-Key was reused for a
	// different window.
	ErrIdempotencyConflict = errors.New("idempotency_conflict")

	// ErrStoreUnavailable wraps transient store faults. Callers may retry.
	ErrStoreUnavailable = errors.New("store_unavailable")

	ErrSaloonNotFound      = errors.New("saloon_not_found")
	ErrStaffNotFound       = errors.New("staff_not_found")
	ErrVariationNotFound   = errors.New("variation_not_found")
	ErrAppointmentNotFound = errors.New("appointment_not_found")
)
