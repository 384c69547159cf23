package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

const (
	testSaloonID = uint(1)
	testStaffID  = uint(7)
	haircutID    = uint(11)
	beardID      = uint(12)

	// A Monday.
	testDate = "2030-03-04"
)

var saoPaulo = mustLoad("America/Sao_Paulo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// fixedNow is the Friday before testDate.
func fixedNow() time.Time {
	return time.Date(2030, 3, 1, 12, 0, 0, 0, saoPaulo)
}

func seededStore() *memstore.Store {
	s := memstore.New()
	s.PutSaloon(models.Saloon{ID: testSaloonID, Name: "Studio", Slug: "studio", Timezone: "America/Sao_Paulo"})
	s.PutStaff(models.Staff{
		ID:            testStaffID,
		SaloonID:      testSaloonID,
		Name:          "Ana",
		BufferMinutes: 10,
		Active:        true,
		WorkingDays: []models.WorkingDay{
			{Weekday: int(time.Monday), IsWorking: true, StartTime: "09:00", EndTime: "17:00"},
			{Weekday: int(time.Tuesday), IsWorking: true, StartTime: "09:00", EndTime: "17:00",
				Breaks: []models.BreakTime{{StartTime: "12:00", EndTime: "13:00"}}},
			{Weekday: int(time.Friday), IsWorking: true, StartTime: "09:00", EndTime: "17:00"},
		},
	})
	s.PutVariation(models.ServiceVariation{ID: haircutID, SaloonID: testSaloonID, Name: "Haircut", DurationMin: 30, Price: 50, Active: true})
	s.PutVariation(models.ServiceVariation{ID: beardID, SaloonID: testSaloonID, Name: "Beard", DurationMin: 15, Price: 25, Active: true})
	return s
}

func seedBooking(s *memstore.Store, date, start, end string, status domain.Status) {
	d, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+start, saoPaulo)
	e, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+end, saoPaulo)
	s.PutAppointment(models.Appointment{
		SaloonID:   testSaloonID,
		StaffID:    testStaffID,
		Date:       date,
		LocalStart: start,
		LocalEnd:   end,
		StartTime:  d,
		EndTime:    e,
		Status:     string(status),
	})
}

func newAvailability(s *memstore.Store) *GetAvailability {
	uc := NewGetAvailability(s, s, 10*time.Minute)
	uc.now = fixedNow
	return uc
}

func newBooking(store domain.SlotStore, catalog domain.Catalog, payments domain.PaymentGateway) *BookAppointment {
	uc := NewBookAppointment(catalog, store, payments, nil, zap.NewNop(), BookingConfig{
		Timeout:       time.Second,
		DefaultBuffer: 10 * time.Minute,
	})
	uc.now = fixedNow
	return uc
}

func guestInput(start, end string, variations ...uint) BookInput {
	if len(variations) == 0 {
		variations = []uint{haircutID}
	}
	return BookInput{
		SaloonID:     testSaloonID,
		StaffID:      testStaffID,
		Date:         testDate,
		Start:        start,
		End:          end,
		VariationIDs: variations,
		TotalPrice:   50,
		GuestName:    "Bruna",
		GuestPhone:   "+5511999990000",
	}
}

func slotStarts(t *testing.T, uc *GetAvailability, date string, variations ...uint) []string {
	t.Helper()
	out, err := uc.Execute(context.Background(), AvailabilityInput{
		SaloonID:     testSaloonID,
		StaffID:      testStaffID,
		Date:         date,
		VariationIDs: variations,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	starts := make([]string, 0, len(out.Slots))
	for _, s := range out.Slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// slotStoreStub overrides selected memstore calls.
type slotStoreStub struct {
	*memstore.Store
	listBookedFn func(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error)
}

func (s slotStoreStub) ListBooked(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	if s.listBookedFn != nil {
		return s.listBookedFn(ctx, staffID, from, to)
	}
	return s.Store.ListBooked(ctx, staffID, from, to)
}

type gatewayStub struct {
	createFn func(ctx context.Context, ap *models.Appointment, title string) (domain.Checkout, error)
	titles   []string
}

func (g *gatewayStub) CreateCheckout(ctx context.Context, ap *models.Appointment, title string) (domain.Checkout, error) {
	g.titles = append(g.titles, title)
	return g.createFn(ctx, ap, title)
}

var errGatewayDown = errors.New("gateway down")
