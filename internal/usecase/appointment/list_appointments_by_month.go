package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/dto"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	catalog domain.Catalog
	store   domain.SlotStore
}

func NewListAppointmentsByMonth(
	catalog domain.Catalog,
	store domain.SlotStore,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		catalog: catalog,
		store:   store,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	saloonID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1970 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	saloon, err := uc.catalog.GetSaloon(ctx, saloonID)
	if err != nil {
		return nil, err
	}
	loc, err := timezone.Load(saloon.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_timezone")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	appointments, err := uc.store.ListForPeriod(ctx, saloonID, staffID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
