package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

type CompleteAppointment struct {
	statusChanger
}

func NewCompleteAppointment(
	catalog domain.Catalog,
	store domain.SlotStore,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{statusChanger{
		catalog: catalog,
		store:   store,
		audit:   audit,
		now:     time.Now,
	}}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.apply(ctx, saloonID, actorID, appointmentID,
		audit.ActionAppointmentCompleted, domain.Complete)
}
