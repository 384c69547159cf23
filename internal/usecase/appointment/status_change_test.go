package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
)

func TestLifecycle_ConfirmThenComplete(t *testing.T) {
	s := seededStore()
	ctx := context.Background()
	staffUser := uint(7)

	res, err := newBooking(s, s, nil).Execute(ctx, guestInput("09:00", "09:30"))
	if err != nil {
		t.Fatal(err)
	}
	id := res.Appointment.ID

	complete := NewCompleteAppointment(s, s, nil)
	if _, err := complete.Execute(ctx, testSaloonID, &staffUser, id); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("completing a pending appointment: %v", err)
	}

	ap, err := NewConfirmAppointment(s, s, nil).Execute(ctx, testSaloonID, &staffUser, id)
	if err != nil || ap.Status != string(domain.StatusConfirmed) {
		t.Fatalf("confirm: %+v, %v", ap, err)
	}

	ap, err = complete.Execute(ctx, testSaloonID, &staffUser, id)
	if err != nil || ap.Status != string(domain.StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("complete: %+v, %v", ap, err)
	}

	if _, err := NewCancelAppointment(s, s, nil).Execute(ctx, testSaloonID, &staffUser, id); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("cancelling a completed appointment: %v", err)
	}

	// Completed appointments still occupy their window.
	starts := slotStarts(t, newAvailability(s), testDate, haircutID)
	if contains(starts, "09:00") {
		t.Fatalf("completed window offered again: %v", starts)
	}
}

func TestLifecycle_NotFoundAcrossSaloons(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	res, err := newBooking(s, s, nil).Execute(ctx, guestInput("09:00", "09:30"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewCancelAppointment(s, s, nil).Execute(ctx, testSaloonID, nil, uuid.New()); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
	if _, err := NewCancelAppointment(s, s, nil).Execute(ctx, 99, nil, res.Appointment.ID); !errors.Is(err, domain.ErrSaloonNotFound) {
		t.Fatalf("other saloon: %v", err)
	}
}

func TestListAppointmentsByDate(t *testing.T) {
	s := seededStore()
	ctx := context.Background()
	book := newBooking(s, s, nil)

	for _, w := range [][2]string{{"11:00", "11:30"}, {"09:00", "09:30"}} {
		if _, err := book.Execute(ctx, guestInput(w[0], w[1])); err != nil {
			t.Fatal(err)
		}
	}

	list, err := NewListAppointmentsByDate(s, s).Execute(ctx, testSaloonID, testStaffID, testDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Start != "09:00" || list[1].Start != "11:00" {
		t.Fatalf("list = %+v", list)
	}
	if list[0].ClientName != "Bruna" {
		t.Fatalf("client name = %q", list[0].ClientName)
	}

	month, err := NewListAppointmentsByMonth(s, s).Execute(ctx, testSaloonID, testStaffID, 2030, 3)
	if err != nil || len(month) != 2 {
		t.Fatalf("month = %d, %v", len(month), err)
	}
	if _, err := NewListAppointmentsByMonth(s, s).Execute(ctx, testSaloonID, testStaffID, 2030, 13); !httperr.IsBusiness(err, "invalid_month") {
		t.Fatalf("bad month: %v", err)
	}
}
