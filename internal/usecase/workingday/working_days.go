package workingday

import (
	"context"
	"fmt"
	"sort"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/saloon-scheduler/internal/dto"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

// ======================================================
// GET
// ======================================================

type GetWorkingDays struct {
	catalog domain.Catalog
	store   domain.WorkingDayStore
}

func NewGetWorkingDays(
	catalog domain.Catalog,
	store domain.WorkingDayStore,
) *GetWorkingDays {
	return &GetWorkingDays{catalog: catalog, store: store}
}

func (uc *GetWorkingDays) Execute(
	ctx context.Context,
	saloonID uint,
	staffID uint,
) ([]dto.WorkingDayDTO, error) {

	if _, err := uc.catalog.GetStaff(ctx, saloonID, staffID); err != nil {
		return nil, err
	}

	days, err := uc.store.ListWorkingDays(ctx, staffID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WorkingDayDTO, 0, len(days))
	for _, d := range days {
		item := dto.WorkingDayDTO{
			Weekday:   d.Weekday,
			IsWorking: d.IsWorking,
			Start:     d.StartTime,
			End:       d.EndTime,
			Breaks:    make([]dto.BreakDTO, 0, len(d.Breaks)),
		}
		for _, b := range d.Breaks {
			item.Breaks = append(item.Breaks, dto.BreakDTO{Start: b.StartTime, End: b.EndTime})
		}
		out = append(out, item)
	}
	return out, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateWorkingDays struct {
	catalog domain.Catalog
	store   domain.WorkingDayStore
	audit   *audit.Dispatcher
}

func NewUpdateWorkingDays(
	catalog domain.Catalog,
	store domain.WorkingDayStore,
	audit *audit.Dispatcher,
) *UpdateWorkingDays {
	return &UpdateWorkingDays{catalog: catalog, store: store, audit: audit}
}

// Execute replaces the whole weekly configuration of the staff member.
func (uc *UpdateWorkingDays) Execute(
	ctx context.Context,
	saloonID uint,
	actorID *uint,
	staffID uint,
	days []dto.WorkingDayDTO,
) error {

	rows, err := Validate(days)
	if err != nil {
		return err
	}

	if _, err := uc.catalog.GetStaff(ctx, saloonID, staffID); err != nil {
		return err
	}

	if err := uc.store.ReplaceWorkingDays(ctx, staffID, rows); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SaloonID: saloonID,
		UserID:   actorID,
		Action:   audit.ActionWorkingDaysUpdated,
		Entity:   "staff",
		EntityID: fmt.Sprint(staffID),
		Metadata: map[string]any{"days": len(rows)},
	})
	return nil
}

// Validate checks a weekly configuration and converts it to rows. Working
// days need start < end; breaks must lie inside the day and not overlap
// each other.
func Validate(days []dto.WorkingDayDTO) ([]models.WorkingDay, error) {
	seen := map[int]bool{}
	rows := make([]models.WorkingDay, 0, len(days))

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 || seen[d.Weekday] {
			return nil, httperr.ErrBusiness("invalid_working_day")
		}
		seen[d.Weekday] = true

		row := models.WorkingDay{
			Weekday:   d.Weekday,
			IsWorking: d.IsWorking,
		}

		if d.Start != "" || d.End != "" {
			start, err1 := timezone.ParseLocalTime(d.Start)
			end, err2 := timezone.ParseLocalTime(d.End)
			if err1 != nil || err2 != nil || start >= end {
				return nil, httperr.ErrBusiness("invalid_working_day")
			}
			row.StartTime = start.String()
			row.EndTime = end.String()

			breaks, err := validateBreaks(d.Breaks, start, end)
			if err != nil {
				return nil, err
			}
			row.Breaks = breaks
		} else {
			if d.IsWorking {
				return nil, httperr.ErrBusiness("invalid_working_day")
			}
			if len(d.Breaks) > 0 {
				return nil, httperr.ErrBusiness("invalid_break")
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Weekday < rows[j].Weekday })
	return rows, nil
}

func validateBreaks(
	in []dto.BreakDTO,
	dayStart timezone.LocalTime,
	dayEnd timezone.LocalTime,
) ([]models.BreakTime, error) {

	parsed := make([]schedule.Interval, 0, len(in))
	for _, b := range in {
		start, err1 := timezone.ParseLocalTime(b.Start)
		end, err2 := timezone.ParseLocalTime(b.End)
		if err1 != nil || err2 != nil || start >= end || start < dayStart || end > dayEnd {
			return nil, httperr.ErrBusiness("invalid_break")
		}
		iv := schedule.Interval{Start: start, End: end}
		for _, other := range parsed {
			if iv.Overlaps(other) {
				return nil, httperr.ErrBusiness("invalid_break")
			}
		}
		parsed = append(parsed, iv)
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Start < parsed[j].Start })

	out := make([]models.BreakTime, 0, len(parsed))
	for _, iv := range parsed {
		out = append(out, models.BreakTime{StartTime: iv.Start.String(), EndTime: iv.End.String()})
	}
	return out, nil
}
