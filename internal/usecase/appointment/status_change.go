package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

type transitionFunc func(ap *models.Appointment, now time.Time) error

// statusChanger loads an appointment of the saloon, applies one lifecycle
// transition and persists it.
type statusChanger struct {
	catalog domain.Catalog
	store   domain.SlotStore
	audit   *audit.Dispatcher
	now     func() time.Time
}

func (s statusChanger) apply(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	appointmentID uuid.UUID,
	action string,
	transition transitionFunc,
) (*models.Appointment, error) {

	saloon, err := s.catalog.GetSaloon(ctx, saloonID)
	if err != nil {
		return nil, err
	}

	ap, err := s.store.GetAppointment(ctx, saloonID, appointmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if loc, err := timezone.Load(saloon.Timezone); err == nil {
		now = now.In(loc)
	}

	if err := transition(ap, now); err != nil {
		return nil, err
	}

	if err := s.store.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		SaloonID: saloonID,
		UserID:   actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: ap.ID.String(),
	})

	return ap, nil
}
