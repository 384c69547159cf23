package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/dto"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	catalog domain.Catalog
	store   domain.SlotStore
}

func NewListAppointmentsByDate(
	catalog domain.Catalog,
	store domain.SlotStore,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		catalog: catalog,
		store:   store,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	saloonID uint,
	staffID uint,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	saloon, err := uc.catalog.GetSaloon(ctx, saloonID)
	if err != nil {
		return nil, err
	}
	loc, err := timezone.Load(saloon.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_timezone")
	}

	from, to := dayBounds(date, loc)

	appointments, err := uc.store.ListForPeriod(ctx, saloonID, staffID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			Date:          ap.Date,
			Start:         ap.LocalStart,
			End:           ap.LocalEnd,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientName:    ap.GuestName,
			ClientPhone:   ap.GuestPhone,
			VariationIDs:  ap.VariationIDs,
			TotalPrice:    ap.TotalPrice,
		})
	}
	return out
}
