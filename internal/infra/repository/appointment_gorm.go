package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

const retryBaseDelay = 25 * time.Millisecond

type AppointmentGormRepository struct {
	db         *gorm.DB
	log        *zap.Logger
	maxRetries int
}

func NewAppointmentGormRepository(
	db *gorm.DB,
	log *zap.Logger,
	maxRetries int,
) *AppointmentGormRepository {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &AppointmentGormRepository{db: db, log: log, maxRetries: maxRetries}
}

// --------------------------------------------------
// Booked intervals
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBooked(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "staff_id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, domain.BlockingStatuses, to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, storeFault(err)
	}

	return apps, nil
}

// --------------------------------------------------
// Conditional insert
// --------------------------------------------------

func (r *AppointmentGormRepository) InsertIfNoOverlap(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	var created bool
	err := r.withRetry(ctx, func() error {
		var err error
		created, err = r.insertOnce(ctx, ap)
		return err
	})
	return created, storeFault(err)
}

func (r *AppointmentGormRepository) insertOnce(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStaffDay(tx, ap.StaffID, ap.Date); err != nil {
			return err
		}

		if ap.ID != uuid.Nil {
			var existing models.Appointment
			err := tx.Where("id = ?", ap.ID).Take(&existing).Error
			switch {
			case err == nil:
				if !sameBooking(&existing, ap) {
					return domain.ErrIdempotencyConflict
				}
				*ap = existing
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID, domain.BlockingStatuses, ap.EndTime, ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}

		if err := tx.Create(ap).Error; err != nil {
			return classifyInsert(err)
		}
		created = true
		return nil
	})

	return created, err
}

func classifyInsert(err error) error {
	if isOverlapViolation(err) {
		return domain.ErrConflict
	}
	// Same idempotency key committed under another staff/day lock.
	if pgCode(err) == codeUniqueViolation {
		return domain.ErrIdempotencyConflict
	}
	return err
}

func lockStaffDay(tx *gorm.DB, staffID uint, date string) error {
	key := fmt.Sprintf("staff:%d:%s", staffID, date)
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func sameBooking(existing, ap *models.Appointment) bool {
	return existing.StaffID == ap.StaffID &&
		existing.SaloonID == ap.SaloonID &&
		existing.StartTime.Equal(ap.StartTime) &&
		existing.EndTime.Equal(ap.EndTime)
}

func (r *AppointmentGormRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err = fn(); err == nil || !isRetryable(err) {
			return err
		}

		delay := retryBaseDelay << attempt
		r.log.Warn("retrying appointment insert",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

// --------------------------------------------------
// Appointment (confirm / cancel / complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	saloonID uint,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND saloon_id = ?", id, saloonID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, storeFault(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return storeFault(r.db.WithContext(ctx).Save(ap).Error)
}

func (r *AppointmentGormRepository) SaveCheckout(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return storeFault(r.db.WithContext(ctx).
		Model(ap).
		Select("payment_reference", "checkout_url", "updated_at").
		Updates(ap).Error)
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	saloonID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Where(
			"saloon_id = ? AND staff_id = ? AND start_time >= ? AND start_time < ?",
			saloonID, staffID, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, storeFault(err)
	}

	return apps, nil
}

// Compile-time check
var _ domain.SlotStore = (*AppointmentGormRepository)(nil)
