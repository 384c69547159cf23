package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/saloon-scheduler/internal/dto"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	SaloonID     uint
	StaffID      uint
	Date         string
	VariationIDs []uint

	// BufferMinutes overrides the staff member's buffer when set.
	BufferMinutes *int
}

type GetAvailability struct {
	catalog       domain.Catalog
	store         domain.SlotStore
	defaultBuffer time.Duration
	now           func() time.Time
}

func NewGetAvailability(
	catalog domain.Catalog,
	store domain.SlotStore,
	defaultBuffer time.Duration,
) *GetAvailability {
	return &GetAvailability{
		catalog:       catalog,
		store:         store,
		defaultBuffer: defaultBuffer,
		now:           time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*dto.AvailabilityDTO, error) {

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if in.BufferMinutes != nil && *in.BufferMinutes < 0 {
		return nil, httperr.ErrBusiness("invalid_buffer")
	}

	saloon, err := uc.catalog.GetSaloon(ctx, in.SaloonID)
	if err != nil {
		return nil, err
	}
	loc, err := timezone.Load(saloon.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_timezone")
	}

	staff, err := uc.catalog.GetStaff(ctx, in.SaloonID, in.StaffID)
	if err != nil {
		return nil, err
	}

	variations, err := uc.catalog.ListVariations(ctx, in.SaloonID, in.VariationIDs)
	if err != nil {
		return nil, err
	}

	config, err := scheduleStaff(staff)
	if err != nil {
		return nil, err
	}

	out := &dto.AvailabilityDTO{
		Date:     date.String(),
		StaffID:  staff.ID,
		Timezone: saloon.Timezone,
		Slots:    []dto.TimeSlot{},
	}

	now := uc.now().In(loc)
	if date.Before(timezone.DateOf(now)) {
		out.Reason = string(schedule.ReasonInvalidDate)
		return out, nil
	}

	// One snapshot of the day's bookings.
	from, to := dayBounds(date, loc)
	apps, err := uc.store.ListBooked(ctx, staff.ID, from, to)
	if err != nil {
		return nil, err
	}

	result := schedule.ComputeSlots(
		config,
		date,
		variationDurations(variations),
		bufferFor(staff.BufferMinutes, in.BufferMinutes, uc.defaultBuffer),
		bookedIntervals(apps, date, loc),
	)

	earliest := now.Add(time.Duration(saloon.MinAdvanceMinutes) * time.Minute)
	for _, s := range result.Slots {
		from, _, ok := date.Span(s.Start, s.End, loc)
		if !ok || from.Before(earliest) {
			continue
		}
		out.Slots = append(out.Slots, dto.TimeSlot{
			Start: s.Start.String(),
			End:   s.End.String(),
		})
	}

	out.Reason = string(result.Reason)
	if len(out.Slots) == 0 && out.Reason == "" {
		out.Reason = string(schedule.ReasonFullyBooked)
	}

	return out, nil
}

// bufferFor picks the request override, then the staff member's own
// buffer, then the saloon-wide default for rows with no usable value.
func bufferFor(staffMinutes int, override *int, fallback time.Duration) time.Duration {
	if override != nil {
		return time.Duration(*override) * time.Minute
	}
	if staffMinutes < 0 {
		return fallback
	}
	return time.Duration(staffMinutes) * time.Minute
}
