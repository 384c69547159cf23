package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var ErrInvalidTimezone = errors.New("invalid_timezone")

func IsValid(tz string) bool {
	_, err := Load(tz)
	return err == nil
}

// Load resolves an IANA identifier. Fixed offsets and the empty string are
// rejected: the zone rules are what make DST dates come out right.
func Load(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || strings.EqualFold(tz, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// ToInstant anchors a wall-clock time of a civil date in the saloon's zone.
func ToInstant(local LocalTime, date Date, tz string) (time.Time, error) {
	loc, err := Load(tz)
	if err != nil {
		return time.Time{}, err
	}
	return date.At(local, loc), nil
}

// ToLocal returns the civil date and wall-clock time of an instant as seen
// in the saloon's zone. Seconds are truncated.
func ToLocal(instant time.Time, tz string) (Date, LocalTime, error) {
	loc, err := Load(tz)
	if err != nil {
		return Date{}, 0, err
	}
	t := instant.In(loc)
	return DateOf(t), LocalTime(t.Hour()*60 + t.Minute()), nil
}

func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
