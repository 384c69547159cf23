package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

type ConfirmAppointment struct {
	statusChanger
}

func NewConfirmAppointment(
	catalog domain.Catalog,
	store domain.SlotStore,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{statusChanger{
		catalog: catalog,
		store:   store,
		audit:   audit,
		now:     time.Now,
	}}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.apply(ctx, saloonID, actorID, appointmentID,
		audit.ActionAppointmentConfirmed,
		func(ap *models.Appointment, _ time.Time) error { return domain.Confirm(ap) })
}
