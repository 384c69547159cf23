package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

type CancelAppointment struct {
	statusChanger
}

func NewCancelAppointment(
	catalog domain.Catalog,
	store domain.SlotStore,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{statusChanger{
		catalog: catalog,
		store:   store,
		audit:   audit,
		now:     time.Now,
	}}
}

// Execute frees the appointment's window for new bookings.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.apply(ctx, saloonID, actorID, appointmentID,
		audit.ActionAppointmentCancelled, domain.Cancel)
}
