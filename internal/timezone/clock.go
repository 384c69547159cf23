package timezone

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidLocalTime = errors.New("invalid_time")
	ErrInvalidDate      = errors.New("invalid_date")
)

// LocalTime is a wall-clock time of day in minutes since midnight.
// MinutesPerDay ("24:00") is accepted as an end-of-day bound.
type LocalTime int

func ParseLocalTime(hm string) (LocalTime, error) {
	if hm == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLocalTime, hm)
	}
	return LocalTime(t.Hour()*60 + t.Minute()), nil
}

func MustLocalTime(hm string) LocalTime {
	lt, err := ParseLocalTime(hm)
	if err != nil {
		panic(err)
	}
	return lt
}

func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t LocalTime) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// Date is a civil calendar date with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return d.midnightUTC().Format(dateLayout)
}

func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

func (d Date) Before(o Date) bool {
	return d.midnightUTC().Before(o.midnightUTC())
}

// At returns the instant the wall clock of loc reads lt on d.
func (d Date) At(lt LocalTime, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, int(lt)/60, int(lt)%60, 0, 0, loc)
}

// Span anchors the wall-clock window [start, end) of d in loc. ok is false
// when a bound does not exist on d (spring-forward gap) or when the elapsed
// time differs from the wall-clock length because the window crosses a
// transition.
func (d Date) Span(start, end LocalTime, loc *time.Location) (from, to time.Time, ok bool) {
	from = d.At(start, loc)
	to = d.At(end, loc)

	if !d.reads(from, start, loc) || !d.reads(to, end, loc) {
		return from, to, false
	}
	return from, to, to.Sub(from) == time.Duration(end-start)*time.Minute
}

// reads reports whether t shows lt on d in loc. "24:00" reads as midnight
// of the next day.
func (d Date) reads(t time.Time, lt LocalTime, loc *time.Location) bool {
	want := d
	if lt == MinutesPerDay {
		want = d.AddDays(1)
		lt = 0
	}
	local := t.In(loc)
	return DateOf(local) == want && LocalTime(local.Hour()*60+local.Minute()) == lt
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.midnightUTC().AddDate(0, 0, n))
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
