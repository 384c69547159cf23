// Package memstore keeps saloon data in process memory for tests.
// InsertIfNoOverlap holds one mutex across the re-check and the insert, so
// it is as atomic as the SQL store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

type Store struct {
	mu           sync.Mutex
	saloons      map[uint]models.Saloon
	staff        map[uint]models.Staff
	variations   map[uint]models.ServiceVariation
	appointments map[uuid.UUID]models.Appointment
	inserts      int
}

func New() *Store {
	return &Store{
		saloons:      map[uint]models.Saloon{},
		staff:        map[uint]models.Staff{},
		variations:   map[uint]models.ServiceVariation{},
		appointments: map[uuid.UUID]models.Appointment{},
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) PutSaloon(saloon models.Saloon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saloons[saloon.ID] = saloon
}

func (s *Store) PutStaff(staff models.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[staff.ID] = staff
}

func (s *Store) PutVariation(v models.ServiceVariation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variations[v.ID] = v
}

func (s *Store) PutAppointment(ap models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	s.appointments[ap.ID] = ap
}

// InsertCount reports how many appointments InsertIfNoOverlap committed.
func (s *Store) InsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (s *Store) GetSaloon(_ context.Context, id uint) (*models.Saloon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saloon, ok := s.saloons[id]
	if !ok {
		return nil, domain.ErrSaloonNotFound
	}
	return &saloon, nil
}

func (s *Store) GetStaff(_ context.Context, saloonID, staffID uint) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.staff[staffID]
	if !ok || staff.SaloonID != saloonID || !staff.Active {
		return nil, domain.ErrStaffNotFound
	}
	staff.WorkingDays = cloneDays(staff.WorkingDays)
	return &staff, nil
}

func (s *Store) ListVariations(_ context.Context, saloonID uint, ids []uint) ([]models.ServiceVariation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ServiceVariation, 0, len(ids))
	for _, id := range ids {
		v, ok := s.variations[id]
		if !ok || v.SaloonID != saloonID || !v.Active {
			return nil, domain.ErrVariationNotFound
		}
		out = append(out, v)
	}
	return out, nil
}

// --------------------------------------------------
// Working days
// --------------------------------------------------

func (s *Store) ListWorkingDays(_ context.Context, staffID uint) ([]models.WorkingDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDays(s.staff[staffID].WorkingDays), nil
}

func (s *Store) ReplaceWorkingDays(_ context.Context, staffID uint, days []models.WorkingDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.staff[staffID]
	if !ok {
		return domain.ErrStaffNotFound
	}
	staff.WorkingDays = cloneDays(days)
	for i := range staff.WorkingDays {
		staff.WorkingDays[i].StaffID = staffID
	}
	s.staff[staffID] = staff
	return nil
}

// --------------------------------------------------
// Slot store
// --------------------------------------------------

func (s *Store) ListBooked(_ context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlapping(staffID, from, to), nil
}

func (s *Store) InsertIfNoOverlap(ctx context.Context, ap *models.Appointment) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID != uuid.Nil {
		if existing, ok := s.appointments[ap.ID]; ok {
			if existing.StaffID != ap.StaffID ||
				!existing.StartTime.Equal(ap.StartTime) ||
				!existing.EndTime.Equal(ap.EndTime) {
				return false, domain.ErrIdempotencyConflict
			}
			*ap = existing
			return false, nil
		}
	}

	if len(s.overlapping(ap.StaffID, ap.StartTime, ap.EndTime)) > 0 {
		return false, domain.ErrConflict
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	s.appointments[ap.ID] = *ap
	s.inserts++
	return true, nil
}

func (s *Store) GetAppointment(_ context.Context, saloonID uint, id uuid.UUID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[id]
	if !ok || ap.SaloonID != saloonID {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[ap.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	ap.UpdatedAt = time.Now()
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) SaveCheckout(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.appointments[ap.ID]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	stored.PaymentReference = ap.PaymentReference
	stored.CheckoutURL = ap.CheckoutURL
	stored.UpdatedAt = time.Now()
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) ListForPeriod(_ context.Context, saloonID, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.SaloonID == saloonID && ap.StaffID == staffID &&
			!ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

// overlapping expects s.mu to be held.
func (s *Store) overlapping(staffID uint, from, to time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.StaffID != staffID || !domain.Status(ap.Status).Blocks() {
			continue
		}
		if schedule.OverlapsInstant(ap.StartTime, ap.EndTime, from, to) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out
}

func sortByStart(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].StartTime.Before(apps[j].StartTime) })
}

func cloneDays(days []models.WorkingDay) []models.WorkingDay {
	out := make([]models.WorkingDay, len(days))
	for i, d := range days {
		d.Breaks = append([]models.BreakTime(nil), d.Breaks...)
		out[i] = d
	}
	return out
}

var (
	_ domain.Catalog         = (*Store)(nil)
	_ domain.SlotStore       = (*Store)(nil)
	_ domain.WorkingDayStore = (*Store)(nil)
)
