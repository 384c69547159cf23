package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/saloon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

// scheduleStaff converts stored configuration into the calculator's input.
// Days with blank hours are kept but marked as unconfigured.
func scheduleStaff(s *models.Staff) (schedule.Staff, error) {
	out := schedule.Staff{
		ID:          s.ID,
		OnHoliday:   s.OnHoliday,
		WorkingDays: make([]schedule.WorkingDay, 0, len(s.WorkingDays)),
	}

	for _, wd := range s.WorkingDays {
		day := schedule.WorkingDay{
			Weekday:   time.Weekday(wd.Weekday),
			IsWorking: wd.IsWorking,
		}

		if wd.StartTime != "" && wd.EndTime != "" {
			start, err := timezone.ParseLocalTime(wd.StartTime)
			if err != nil {
				return schedule.Staff{}, fmt.Errorf("working day %d: %w", wd.Weekday, err)
			}
			end, err := timezone.ParseLocalTime(wd.EndTime)
			if err != nil {
				return schedule.Staff{}, fmt.Errorf("working day %d: %w", wd.Weekday, err)
			}
			day.HasHours = true
			day.Start = start
			day.End = end
		}

		for _, b := range wd.Breaks {
			start, err := timezone.ParseLocalTime(b.StartTime)
			if err != nil {
				return schedule.Staff{}, fmt.Errorf("break on day %d: %w", wd.Weekday, err)
			}
			end, err := timezone.ParseLocalTime(b.EndTime)
			if err != nil {
				return schedule.Staff{}, fmt.Errorf("break on day %d: %w", wd.Weekday, err)
			}
			day.Breaks = append(day.Breaks, schedule.Interval{Start: start, End: end})
		}

		out.WorkingDays = append(out.WorkingDays, day)
	}

	return out, nil
}

func variationDurations(vs []models.ServiceVariation) []time.Duration {
	out := make([]time.Duration, 0, len(vs))
	for _, v := range vs {
		out = append(out, time.Duration(v.DurationMin)*time.Minute)
	}
	return out
}

// dayBounds returns [midnight, next midnight) of date in loc.
func dayBounds(date timezone.Date, loc *time.Location) (time.Time, time.Time) {
	from := date.At(0, loc)
	to := time.Date(date.Year, date.Month, date.Day+1, 0, 0, 0, 0, loc)
	return from, to
}

// bookedIntervals projects stored appointments onto the wall clock of date,
// clipping any part that falls on a neighbouring day.
func bookedIntervals(
	apps []models.Appointment,
	date timezone.Date,
	loc *time.Location,
) []schedule.Interval {

	out := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		start := ap.StartTime.In(loc)
		end := ap.EndTime.In(loc)

		iv := schedule.Interval{Start: 0, End: timezone.MinutesPerDay}
		if timezone.DateOf(start) == date {
			iv.Start = minuteOfDay(start)
		}
		if timezone.DateOf(end) == date {
			iv.End = minuteOfDay(end)
			// Round a partial trailing minute up so the window stays covered.
			if end.Second() > 0 || end.Nanosecond() > 0 {
				iv.End++
			}
		}
		if iv.Start < iv.End {
			out = append(out, iv)
		}
	}
	return out
}

func minuteOfDay(t time.Time) timezone.LocalTime {
	return timezone.LocalTime(t.Hour()*60 + t.Minute())
}

func variationTitle(vs []models.ServiceVariation) string {
	if len(vs) == 0 {
		return "Appointment"
	}
	title := vs[0].Name
	for _, v := range vs[1:] {
		title += " + " + v.Name
	}
	return title
}
