package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

func TestTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		from   Status
		action func(*models.Appointment) error
		want   Status
		ok     bool
	}{
		{"confirm pending", StatusPending, Confirm, StatusConfirmed, true},
		{"confirm confirmed", StatusConfirmed, Confirm, StatusConfirmed, false},
		{"cancel pending", StatusPending, func(a *models.Appointment) error { return Cancel(a, now) }, StatusCancelled, true},
		{"cancel confirmed", StatusConfirmed, func(a *models.Appointment) error { return Cancel(a, now) }, StatusCancelled, true},
		{"cancel completed", StatusCompleted, func(a *models.Appointment) error { return Cancel(a, now) }, StatusCompleted, false},
		{"complete confirmed", StatusConfirmed, func(a *models.Appointment) error { return Complete(a, now) }, StatusCompleted, true},
		{"complete pending", StatusPending, func(a *models.Appointment) error { return Complete(a, now) }, StatusPending, false},
		{"complete cancelled", StatusCancelled, func(a *models.Appointment) error { return Complete(a, now) }, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap := &models.Appointment{Status: string(tt.from)}
			err := tt.action(ap)

			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !httperr.IsBusiness(err, "invalid_state") {
				t.Fatalf("err = %v, want invalid_state", err)
			}
			if Status(ap.Status) != tt.want {
				t.Fatalf("status = %s, want %s", ap.Status, tt.want)
			}
		})
	}
}

func TestCancelStampsTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	if err := Cancel(ap, now); err != nil {
		t.Fatal(err)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("cancelled_at = %v", ap.CancelledAt)
	}
	if Status(ap.Status).Blocks() {
		t.Fatal("cancelled appointments must not block")
	}
}
