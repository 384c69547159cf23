package schedule

import (
	"time"

	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

// Reason explains an empty availability result. Empty results are routine
// business information, not failures.
type Reason string

const (
	ReasonAvailable              Reason = ""
	ReasonNoWorkingDay           Reason = "no_working_day"
	ReasonStaffHoliday           Reason = "staff_holiday"
	ReasonNoVariations           Reason = "no_variations"
	ReasonInvalidServiceDuration Reason = "invalid_service_duration"
	ReasonInvalidDate            Reason = "invalid_date"
	ReasonFullyBooked            Reason = "fully_booked"
)

type WorkingDay struct {
	Weekday   time.Weekday
	IsWorking bool
	// HasHours is false when start/end were never configured.
	HasHours bool
	Start    timezone.LocalTime
	End      timezone.LocalTime
	Breaks   []Interval
}

func (wd WorkingDay) open() bool {
	return wd.IsWorking && wd.HasHours && wd.Start < wd.End
}

type Staff struct {
	ID          uint
	OnHoliday   bool
	WorkingDays []WorkingDay
}

func (s Staff) WorkingDayFor(weekday time.Weekday) (WorkingDay, bool) {
	for _, wd := range s.WorkingDays {
		if wd.Weekday == weekday {
			return wd, true
		}
	}
	return WorkingDay{}, false
}

type CandidateSlot struct {
	Start    timezone.LocalTime
	End      timezone.LocalTime
	Duration time.Duration
}

func (c CandidateSlot) Interval() Interval {
	return Interval{Start: c.Start, End: c.End}
}

type Availability struct {
	Date   timezone.Date
	Slots  []CandidateSlot
	Reason Reason
}

// ComputeSlots scans the working day in fixed steps of total+buffer starting
// at the day's start, emitting every window that fits with its trailing
// buffer and overlaps neither a break nor a booked interval. It is a pure
// function of its arguments.
func ComputeSlots(
	staff Staff,
	date timezone.Date,
	serviceDurations []time.Duration,
	buffer time.Duration,
	booked []Interval,
) Availability {
	out := Availability{Date: date, Slots: []CandidateSlot{}}

	if staff.OnHoliday {
		out.Reason = ReasonStaffHoliday
		return out
	}

	wd, ok := staff.WorkingDayFor(date.Weekday())
	if !ok || !wd.open() {
		out.Reason = ReasonNoWorkingDay
		return out
	}

	if len(serviceDurations) == 0 {
		out.Reason = ReasonNoVariations
		return out
	}

	var total time.Duration
	for _, d := range serviceDurations {
		total += d
	}
	if total < time.Minute {
		out.Reason = ReasonInvalidServiceDuration
		return out
	}

	if buffer < 0 {
		buffer = 0
	}

	cursor := wd.Start
	for {
		end, ok := AddDuration(cursor, total)
		if !ok {
			break
		}
		next, ok := AddDuration(end, buffer)
		if !ok || next > wd.End {
			break
		}

		window := Interval{Start: cursor, End: end}
		if !window.overlapsAny(wd.Breaks) && !window.overlapsAny(booked) {
			out.Slots = append(out.Slots, CandidateSlot{Start: cursor, End: end, Duration: total})
		}

		cursor = next
	}

	if len(out.Slots) == 0 {
		out.Reason = ReasonFullyBooked
	}
	return out
}

// Offers reports whether window is one of the slots the scan produces.
func (a Availability) Offers(window Interval) bool {
	for _, s := range a.Slots {
		if s.Start == window.Start && s.End == window.End {
			return true
		}
	}
	return false
}
