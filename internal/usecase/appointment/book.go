package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/saloon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/saloon-scheduler/internal/validators"
)

const (
	PaymentMethodInPerson = "in_person"
	PaymentMethodOnline   = "online"
)

var idempotencyNamespace = uuid.MustParse("6f1c2a9e-3b7d-4c55-9a0e-5d2f8b41c7aa")

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	SaloonID uint
	StaffID  uint

	Date  string
	Start string
	End   string

	VariationIDs  []uint
	TotalPrice    float64
	PaymentMethod string

	// BufferMinutes is the override the slot was listed with, if any.
	BufferMinutes *int

	RequesterID *uint
	GuestName   string
	GuestPhone  string
	GuestEmail  string

	Notes          string
	IdempotencyKey string
}

type BookResult struct {
	Appointment *models.Appointment
	// Replayed is true when the Idempotency-Key matched an earlier booking.
	Replayed bool
}

type BookingConfig struct {
	Timeout       time.Duration
	DefaultBuffer time.Duration
}

// ======================================================
// USE CASE
// ======================================================

// BookAppointment turns a requested window into a committed appointment.
// The final overlap check and the insert happen atomically in the store.
type BookAppointment struct {
	catalog  domain.Catalog
	store    domain.SlotStore
	payments domain.PaymentGateway
	audit    *audit.Dispatcher
	log      *zap.Logger
	cfg      BookingConfig
	now      func() time.Time
}

func NewBookAppointment(
	catalog domain.Catalog,
	store domain.SlotStore,
	payments domain.PaymentGateway,
	audit *audit.Dispatcher,
	log *zap.Logger,
	cfg BookingConfig,
) *BookAppointment {
	return &BookAppointment{
		catalog:  catalog,
		store:    store,
		payments: payments,
		audit:    audit,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*BookResult, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	date, window, err := parseWindow(in.Date, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if in.TotalPrice < 0 {
		return nil, httperr.ErrBusiness("invalid_total_price")
	}
	if in.BufferMinutes != nil && *in.BufferMinutes < 0 {
		return nil, httperr.ErrBusiness("invalid_buffer")
	}
	if in.RequesterID == nil &&
		(strings.TrimSpace(in.GuestName) == "" || strings.TrimSpace(in.GuestPhone) == "") {
		return nil, httperr.ErrBusiness("missing_requester")
	}
	phone := strings.TrimSpace(in.GuestPhone)
	if phone != "" {
		normalized, ok := validators.NormalizePhone(phone)
		if !ok {
			return nil, httperr.ErrBusiness("invalid_phone")
		}
		phone = normalized
	}
	method, err := normalizePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if len(in.VariationIDs) == 0 {
		return nil, httperr.ErrBusiness("no_variations")
	}

	// --------------------------------------------------
	// 2. Saloon, staff, variations
	// --------------------------------------------------
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
	durations := variationDurations(variations)

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	if total != window.Duration() {
		return nil, httperr.ErrBusiness("duration_mismatch")
	}

	// --------------------------------------------------
	// 3. Timing
	// --------------------------------------------------
	// Wall-clock times skipped or repeated by a DST change have no single
	// instant for the window.
	start, end, ok := date.Span(window.Start, window.End, loc)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	now := uc.now().In(loc)
	if date.Before(timezone.DateOf(now)) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if start.Before(now.Add(time.Duration(saloon.MinAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Window must be one the calculator offers
	// --------------------------------------------------
	config, err := scheduleStaff(staff)
	if err != nil {
		return nil, err
	}
	offered := schedule.ComputeSlots(
		config,
		date,
		durations,
		bufferFor(staff.BufferMinutes, in.BufferMinutes, uc.cfg.DefaultBuffer),
		nil,
	)
	if !offered.Offers(window) {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	// --------------------------------------------------
	// 5. Fresh read, then atomic insert
	// --------------------------------------------------
	ap := &models.Appointment{
		SaloonID:      saloon.ID,
		StaffID:       staff.ID,
		Date:          date.String(),
		LocalStart:    window.Start.String(),
		LocalEnd:      window.End.String(),
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentUnpaid),
		RequesterID:   in.RequesterID,
		GuestName:     strings.TrimSpace(in.GuestName),
		GuestPhone:    phone,
		GuestEmail:    strings.TrimSpace(in.GuestEmail),
		VariationIDs:  append([]uint(nil), in.VariationIDs...),
		TotalPrice:    in.TotalPrice,
		PaymentMethod: method,
		Notes:         in.Notes,
	}
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		ap.ID = idempotencyID(saloon.ID, staff.ID, key)
	}

	created, err := uc.commit(ctx, ap)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.audit.Dispatch(audit.Event{
				SaloonID: saloon.ID,
				UserID:   in.RequesterID,
				Action:   audit.ActionAppointmentConflict,
				Entity:   "staff",
				EntityID: fmt.Sprint(staff.ID),
				Metadata: map[string]any{
					"date":  ap.Date,
					"start": ap.LocalStart,
					"end":   ap.LocalEnd,
				},
			})
		}
		return nil, err
	}

	if !created {
		return &BookResult{Appointment: ap, Replayed: true}, nil
	}

	uc.audit.Dispatch(audit.Event{
		SaloonID: saloon.ID,
		UserID:   in.RequesterID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{
			"staff_id":      staff.ID,
			"variation_ids": ap.VariationIDs,
		},
	})

	// --------------------------------------------------
	// 6. Payment hand-off, after commit
	// --------------------------------------------------
	if method == PaymentMethodOnline {
		uc.startCheckout(ctx, ap, variationTitle(variations))
	}

	return &BookResult{Appointment: ap}, nil
}

// commit runs the re-check and insert under the booking timeout.
func (uc *BookAppointment) commit(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}

	// A replayed key returns its stored row whatever happened to the
	// window since.
	if ap.ID != uuid.Nil {
		existing, err := uc.store.GetAppointment(ctx, ap.SaloonID, ap.ID)
		switch {
		case err == nil:
			if existing.StaffID != ap.StaffID ||
				!existing.StartTime.Equal(ap.StartTime) ||
				!existing.EndTime.Equal(ap.EndTime) {
				return false, domain.ErrIdempotencyConflict
			}
			*ap = *existing
			return false, nil
		case !errors.Is(err, domain.ErrAppointmentNotFound):
			return false, asStoreFault(err)
		}
	}

	booked, err := uc.store.ListBooked(ctx, ap.StaffID, ap.StartTime, ap.EndTime)
	if err != nil {
		return false, asStoreFault(err)
	}
	for _, b := range booked {
		if schedule.OverlapsInstant(b.StartTime, b.EndTime, ap.StartTime, ap.EndTime) {
			return false, domain.ErrConflict
		}
	}

	created, err := uc.store.InsertIfNoOverlap(ctx, ap)
	if err != nil {
		return false, asStoreFault(err)
	}
	return created, nil
}

func (uc *BookAppointment) startCheckout(
	ctx context.Context,
	ap *models.Appointment,
	title string,
) {
	if uc.payments == nil {
		return
	}

	checkout, err := uc.payments.CreateCheckout(ctx, ap, title)
	if err != nil {
		uc.log.Warn("checkout creation failed",
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
		return
	}

	ap.PaymentReference = checkout.Reference
	ap.CheckoutURL = checkout.URL
	if err := uc.store.SaveCheckout(ctx, ap); err != nil {
		uc.log.Warn("saving checkout reference failed",
			zap.String("appointment_id", ap.ID.String()),
			zap.Error(err),
		)
	}
}

// ======================================================
// HELPERS
// ======================================================

func parseWindow(dateStr, startStr, endStr string) (timezone.Date, schedule.Interval, error) {
	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		return timezone.Date{}, schedule.Interval{}, httperr.ErrBusiness("invalid_date")
	}
	start, err := timezone.ParseLocalTime(startStr)
	if err != nil {
		return timezone.Date{}, schedule.Interval{}, httperr.ErrBusiness("invalid_time")
	}
	end, err := timezone.ParseLocalTime(endStr)
	if err != nil {
		return timezone.Date{}, schedule.Interval{}, httperr.ErrBusiness("invalid_time")
	}
	if end <= start {
		return timezone.Date{}, schedule.Interval{}, httperr.ErrBusiness("invalid_window")
	}
	return date, schedule.Interval{Start: start, End: end}, nil
}

func normalizePaymentMethod(m string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "", PaymentMethodInPerson:
		return PaymentMethodInPerson, nil
	case PaymentMethodOnline:
		return PaymentMethodOnline, nil
	}
	return "", httperr.ErrBusiness("invalid_payment_method")
}

func idempotencyID(saloonID, staffID uint, key string) uuid.UUID {
	return uuid.NewSHA1(idempotencyNamespace, []byte(fmt.Sprintf("%d:%d:%s", saloonID, staffID, key)))
}

func asStoreFault(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
