package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

// Catalog is the read side of saloon configuration.
type Catalog interface {
	GetSaloon(
		ctx context.Context,
		id uint,
	) (*models.Saloon, error)

	// GetStaff loads the staff member with working days and breaks.
	GetStaff(
		ctx context.Context,
		saloonID uint,
		staffID uint,
	) (*models.Staff, error)

	// ListVariations fails with ErrVariationNotFound unless every id
	// resolves to an active variation of the saloon.
	ListVariations(
		ctx context.Context,
		saloonID uint,
		ids []uint,
	) ([]models.ServiceVariation, error)
}

// SlotStore owns appointment persistence. InsertIfNoOverlap is the single
// point where a window becomes booked.
type SlotStore interface {
	// ListBooked returns blocking appointments of the staff member that
	// overlap [from, to).
	ListBooked(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// InsertIfNoOverlap atomically re-checks the window against blocking
	// appointments and inserts ap. It returns ErrConflict when the window
	// is taken. When ap.ID already exists with the same staff and window
	// the stored row is copied into ap and created is false.
	InsertIfNoOverlap(
		ctx context.Context,
		ap *models.Appointment,
	) (created bool, err error)

	GetAppointment(
		ctx context.Context,
		saloonID uint,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveCheckout writes only the payment reference and checkout URL, so a
	// status change that landed after commit is kept.
	SaveCheckout(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListForPeriod(
		ctx context.Context,
		saloonID uint,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}

// WorkingDayStore replaces a staff member's weekly configuration.
type WorkingDayStore interface {
	ListWorkingDays(
		ctx context.Context,
		staffID uint,
	) ([]models.WorkingDay, error)

	ReplaceWorkingDays(
		ctx context.Context,
		staffID uint,
		days []models.WorkingDay,
	) error
}

type Checkout struct {
	Reference string
	URL       string
}

// PaymentGateway opens a hosted checkout for a committed appointment.
type PaymentGateway interface {
	CreateCheckout(
		ctx context.Context,
		ap *models.Appointment,
		title string,
	) (Checkout, error)
}
