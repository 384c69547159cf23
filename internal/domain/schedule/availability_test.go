package schedule

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

func lt(hm string) timezone.LocalTime { return timezone.MustLocalTime(hm) }

func iv(start, end string) Interval { return Interval{Start: lt(start), End: lt(end)} }

// 2026-03-02 is a Monday.
var monday = timezone.Date{Year: 2026, Month: time.March, Day: 2}

func mondayStaff(start, end string, breaks ...Interval) Staff {
	return Staff{
		ID: 1,
		WorkingDays: []WorkingDay{{
			Weekday:   time.Monday,
			IsWorking: true,
			HasHours:  true,
			Start:     lt(start),
			End:       lt(end),
			Breaks:    breaks,
		}},
	}
}

func starts(a Availability) []string {
	out := make([]string, 0, len(a.Slots))
	for _, s := range a.Slots {
		out = append(out, s.Start.String())
	}
	return out
}

func TestComputeSlots_FullDayNoBookings(t *testing.T) {
	staff := mondayStaff("09:00", "17:00")

	got := ComputeSlots(staff, monday, []time.Duration{30 * time.Minute}, 10*time.Minute, nil)

	want := []string{
		"09:00", "09:40", "10:20", "11:00", "11:40", "12:20",
		"13:00", "13:40", "14:20", "15:00", "15:40", "16:20",
	}
	if got.Reason != ReasonAvailable {
		t.Fatalf("reason = %q, want none", got.Reason)
	}
	if len(got.Slots) != len(want) {
		t.Fatalf("got %d slots %v, want %d", len(got.Slots), starts(got), len(want))
	}
	for i, s := range got.Slots {
		if s.Start.String() != want[i] {
			t.Errorf("slot %d start = %s, want %s", i, s.Start, want[i])
		}
		if s.End-s.Start != 30 {
			t.Errorf("slot %d length = %d minutes", i, s.End-s.Start)
		}
	}
}

func TestComputeSlots_ExistingBookingRemovesOverlaps(t *testing.T) {
	staff := mondayStaff("09:00", "12:00")
	booked := []Interval{iv("10:00", "10:30")}

	got := ComputeSlots(staff, monday, []time.Duration{30 * time.Minute}, 10*time.Minute, booked)

	for _, s := range got.Slots {
		if s.Interval().Overlaps(booked[0]) {
			t.Fatalf("slot %s-%s overlaps booking", s.Start, s.End)
		}
	}
	has := map[string]bool{}
	for _, s := range starts(got) {
		has[s] = true
	}
	if !has["09:00"] || !has["11:00"] {
		t.Fatalf("expected 09:00 and 11:00 to survive, got %v", starts(got))
	}
	if has["09:40"] || has["10:20"] {
		t.Fatalf("overlapping candidates offered: %v", starts(got))
	}
}

func TestComputeSlots_BreakRemovesOverlaps(t *testing.T) {
	staff := mondayStaff("09:00", "17:00", iv("12:00", "13:00"))

	got := ComputeSlots(staff, monday, []time.Duration{60 * time.Minute}, 0, nil)

	want := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	if len(got.Slots) != len(want) {
		t.Fatalf("got %v, want %v", starts(got), want)
	}
	for i, s := range got.Slots {
		if s.Start.String() != want[i] {
			t.Errorf("slot %d = %s, want %s", i, s.Start, want[i])
		}
	}
}

func TestComputeSlots_TouchingIntervalsAreFree(t *testing.T) {
	staff := mondayStaff("09:00", "11:00")
	booked := []Interval{iv("09:00", "10:00")}

	got := ComputeSlots(staff, monday, []time.Duration{60 * time.Minute}, 0, booked)

	if len(got.Slots) != 1 || got.Slots[0].Start.String() != "10:00" {
		t.Fatalf("got %v, want [10:00]", starts(got))
	}
}

func TestComputeSlots_BufferMustFitBeforeClose(t *testing.T) {
	// 16:30 + 30m + 10m buffer = 17:10 > 17:00.
	staff := mondayStaff("16:30", "17:00")

	got := ComputeSlots(staff, monday, []time.Duration{30 * time.Minute}, 10*time.Minute, nil)

	if len(got.Slots) != 0 {
		t.Fatalf("got %v, want none", starts(got))
	}
	if got.Reason != ReasonFullyBooked {
		t.Fatalf("reason = %q", got.Reason)
	}
}

func TestComputeSlots_Reasons(t *testing.T) {
	open := mondayStaff("09:00", "17:00")
	holiday := open
	holiday.OnHoliday = true
	closed := Staff{WorkingDays: []WorkingDay{{Weekday: time.Monday, IsWorking: false, HasHours: true, Start: lt("09:00"), End: lt("17:00")}}}
	noHours := Staff{WorkingDays: []WorkingDay{{Weekday: time.Monday, IsWorking: true}}}
	inverted := mondayStaff("17:00", "09:00")

	tests := []struct {
		name      string
		staff     Staff
		durations []time.Duration
		want      Reason
	}{
		{"holiday", holiday, []time.Duration{30 * time.Minute}, ReasonStaffHoliday},
		{"no working day row", Staff{}, []time.Duration{30 * time.Minute}, ReasonNoWorkingDay},
		{"not working", closed, []time.Duration{30 * time.Minute}, ReasonNoWorkingDay},
		{"no hours configured", noHours, []time.Duration{30 * time.Minute}, ReasonNoWorkingDay},
		{"start after end", inverted, []time.Duration{30 * time.Minute}, ReasonNoWorkingDay},
		{"no variations", open, nil, ReasonNoVariations},
		{"zero total duration", open, []time.Duration{0, 0}, ReasonInvalidServiceDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSlots(tt.staff, monday, tt.durations, 10*time.Minute, nil)
			if len(got.Slots) != 0 {
				t.Fatalf("expected no slots, got %v", starts(got))
			}
			if got.Reason != tt.want {
				t.Fatalf("reason = %q, want %q", got.Reason, tt.want)
			}
		})
	}
}

func TestComputeSlots_SumsVariationDurations(t *testing.T) {
	staff := mondayStaff("09:00", "10:30")

	got := ComputeSlots(staff, monday, []time.Duration{30 * time.Minute, 15 * time.Minute}, 0, nil)

	if len(got.Slots) != 2 {
		t.Fatalf("got %v", starts(got))
	}
	if got.Slots[0].Duration != 45*time.Minute || got.Slots[1].Start.String() != "09:45" {
		t.Fatalf("unexpected slots %+v", got.Slots)
	}
}

func TestComputeSlots_EndOfDayDoesNotWrap(t *testing.T) {
	staff := mondayStaff("22:00", "24:00")

	got := ComputeSlots(staff, monday, []time.Duration{90 * time.Minute}, 30*time.Minute, nil)

	if len(got.Slots) != 1 || got.Slots[0].End.String() != "23:30" {
		t.Fatalf("got %+v", got.Slots)
	}
}

func TestComputeSlots_Idempotent(t *testing.T) {
	staff := mondayStaff("09:00", "17:00", iv("12:00", "12:30"))
	booked := []Interval{iv("14:00", "15:00")}
	durations := []time.Duration{25 * time.Minute}

	a := ComputeSlots(staff, monday, durations, 5*time.Minute, booked)
	b := ComputeSlots(staff, monday, durations, 5*time.Minute, booked)

	if len(a.Slots) != len(b.Slots) || a.Reason != b.Reason {
		t.Fatalf("results differ: %v vs %v", starts(a), starts(b))
	}
	for i := range a.Slots {
		if a.Slots[i] != b.Slots[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a.Slots[i], b.Slots[i])
		}
	}
}

func TestComputeSlots_SlotsStayInsideWorkingHours(t *testing.T) {
	staff := mondayStaff("08:15", "18:45", iv("13:00", "13:20"))
	booked := []Interval{iv("09:00", "09:50"), iv("16:10", "16:40")}

	for _, buffer := range []time.Duration{0, 5 * time.Minute, 15 * time.Minute} {
		got := ComputeSlots(staff, monday, []time.Duration{35 * time.Minute}, buffer, booked)
		for _, s := range got.Slots {
			if s.Start < lt("08:15") || s.End > lt("18:45") {
				t.Errorf("buffer %s: slot %s-%s outside hours", buffer, s.Start, s.End)
			}
			if s.Interval().overlapsAny(booked) || s.Interval().overlapsAny(staff.WorkingDays[0].Breaks) {
				t.Errorf("buffer %s: slot %s-%s overlaps", buffer, s.Start, s.End)
			}
		}
	}
}

func TestAvailability_Offers(t *testing.T) {
	a := ComputeSlots(mondayStaff("09:00", "11:00"), monday, []time.Duration{30 * time.Minute}, 10*time.Minute, nil)

	if !a.Offers(iv("09:40", "10:10")) {
		t.Fatal("09:40-10:10 should be offered")
	}
	if a.Offers(iv("09:30", "10:00")) {
		t.Fatal("09:30 is off the scan grid")
	}
}
