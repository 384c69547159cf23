package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

func TestGetAvailability_FullDay(t *testing.T) {
	uc := newAvailability(seededStore())

	starts := slotStarts(t, uc, testDate, haircutID)

	if len(starts) != 12 || starts[0] != "09:00" || starts[11] != "16:20" {
		t.Fatalf("got %v", starts)
	}
}

func TestGetAvailability_ExcludesBookedAndKeepsCancelled(t *testing.T) {
	s := seededStore()
	seedBooking(s, testDate, "10:00", "10:30", domain.StatusConfirmed)
	seedBooking(s, testDate, "13:00", "13:30", domain.StatusCancelled)
	uc := newAvailability(s)

	starts := slotStarts(t, uc, testDate, haircutID)

	if contains(starts, "09:40") || contains(starts, "10:20") {
		t.Fatalf("overlapping slots offered: %v", starts)
	}
	if !contains(starts, "09:00") || !contains(starts, "11:00") || !contains(starts, "13:00") {
		t.Fatalf("expected free slots missing: %v", starts)
	}
}

func TestGetAvailability_BreakAndBufferOverride(t *testing.T) {
	uc := newAvailability(seededStore())
	zero := 0

	out, err := uc.Execute(context.Background(), AvailabilityInput{
		SaloonID:      testSaloonID,
		StaffID:       testStaffID,
		Date:          "2030-03-05", // Tuesday, lunch 12:00-13:00
		VariationIDs:  []uint{haircutID, haircutID},
		BufferMinutes: &zero,
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, s := range out.Slots {
		got = append(got, s.Start)
	}
	want := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestGetAvailability_Reasons(t *testing.T) {
	s := seededStore()
	uc := newAvailability(s)

	tests := []struct {
		name       string
		date       string
		variations []uint
		want       string
	}{
		{"no working day", "2030-03-03", []uint{haircutID}, "no_working_day"},
		{"no variations", testDate, nil, "no_variations"},
		{"past date", "2030-02-25", []uint{haircutID}, "invalid_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), AvailabilityInput{
				SaloonID:     testSaloonID,
				StaffID:      testStaffID,
				Date:         tt.date,
				VariationIDs: tt.variations,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(out.Slots) != 0 || out.Reason != tt.want {
				t.Fatalf("slots=%d reason=%q, want %q", len(out.Slots), out.Reason, tt.want)
			}
		})
	}
}

func TestGetAvailability_Holiday(t *testing.T) {
	s := seededStore()
	staff, _ := s.GetStaff(context.Background(), testSaloonID, testStaffID)
	staff.OnHoliday = true
	s.PutStaff(*staff)

	out, err := newAvailability(s).Execute(context.Background(), AvailabilityInput{
		SaloonID: testSaloonID, StaffID: testStaffID, Date: testDate, VariationIDs: []uint{haircutID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Reason != "staff_holiday" || len(out.Slots) != 0 {
		t.Fatalf("got %+v", out)
	}
}

func TestGetAvailability_TodayDropsPastSlots(t *testing.T) {
	uc := newAvailability(seededStore())
	uc.now = func() time.Time { return time.Date(2030, 3, 4, 11, 5, 0, 0, saoPaulo) }

	starts := slotStarts(t, uc, testDate, haircutID)

	if len(starts) == 0 || starts[0] != "11:40" {
		t.Fatalf("got %v, want first slot 11:40", starts)
	}
}

func TestGetAvailability_MinAdvance(t *testing.T) {
	s := seededStore()
	s.PutSaloon(models.Saloon{ID: testSaloonID, Timezone: "America/Sao_Paulo", MinAdvanceMinutes: 120})
	uc := newAvailability(s)
	uc.now = func() time.Time { return time.Date(2030, 3, 4, 9, 0, 0, 0, saoPaulo) }

	starts := slotStarts(t, uc, testDate, haircutID)

	if len(starts) == 0 || starts[0] != "11:00" {
		t.Fatalf("got %v, want first slot 11:00", starts)
	}
}

func TestGetAvailability_Errors(t *testing.T) {
	uc := newAvailability(seededStore())
	ctx := context.Background()
	negative := -5

	if _, err := uc.Execute(ctx, AvailabilityInput{SaloonID: testSaloonID, StaffID: testStaffID, Date: "04/03/2030"}); !httperr.IsBusiness(err, "invalid_date") {
		t.Errorf("malformed date: %v", err)
	}
	if _, err := uc.Execute(ctx, AvailabilityInput{SaloonID: testSaloonID, StaffID: testStaffID, Date: testDate, BufferMinutes: &negative}); !httperr.IsBusiness(err, "invalid_buffer") {
		t.Errorf("negative buffer: %v", err)
	}
	if _, err := uc.Execute(ctx, AvailabilityInput{SaloonID: 99, StaffID: testStaffID, Date: testDate}); !errors.Is(err, domain.ErrSaloonNotFound) {
		t.Errorf("unknown saloon: %v", err)
	}
	if _, err := uc.Execute(ctx, AvailabilityInput{SaloonID: testSaloonID, StaffID: 99, Date: testDate}); !errors.Is(err, domain.ErrStaffNotFound) {
		t.Errorf("unknown staff: %v", err)
	}
	if _, err := uc.Execute(ctx, AvailabilityInput{SaloonID: testSaloonID, StaffID: testStaffID, Date: testDate, VariationIDs: []uint{404}}); !errors.Is(err, domain.ErrVariationNotFound) {
		t.Errorf("unknown variation: %v", err)
	}
}

func TestGetAvailability_InvalidSaloonTimezone(t *testing.T) {
	s := seededStore()
	s.PutSaloon(models.Saloon{ID: testSaloonID, Timezone: "+03:00"})

	_, err := newAvailability(s).Execute(context.Background(), AvailabilityInput{
		SaloonID: testSaloonID, StaffID: testStaffID, Date: testDate, VariationIDs: []uint{haircutID},
	})
	if !httperr.IsBusiness(err, "invalid_timezone") {
		t.Fatalf("err = %v", err)
	}
}
