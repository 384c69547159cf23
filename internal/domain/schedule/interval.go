package schedule

import (
	"time"

	"github.com/BruksfildServices01/saloon-scheduler/internal/timezone"
)

// Interval is a half-open wall-clock window [Start, End) within one day.
type Interval struct {
	Start timezone.LocalTime
	End   timezone.LocalTime
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.End, o.Start, o.End)
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.End-i.Start) * time.Minute
}

func (i Interval) overlapsAny(others []Interval) bool {
	for _, o := range others {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Touching and zero-length intervals never overlap.
func Overlaps(aStart, aEnd, bStart, bEnd timezone.LocalTime) bool {
	if aStart >= aEnd || bStart >= bEnd {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// OverlapsInstant is Overlaps for absolute instants.
func OverlapsInstant(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// AddDuration advances a wall-clock time. ok is false when the result would
// leave the day (past 24:00 or before 00:00) instead of wrapping.
func AddDuration(t timezone.LocalTime, d time.Duration) (timezone.LocalTime, bool) {
	next := int(t) + int(d/time.Minute)
	if next < 0 || next > timezone.MinutesPerDay {
		return t, false
	}
	return timezone.LocalTime(next), true
}
