package domain

import (
	"fmt"
	"time"
)

// Interval represents a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds a validated interval normalized to UTC.
func NewInterval(start, end time.Time) (Interval, error) {
	i := Interval{Start: start.UTC(), End: end.UTC()}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate fails with ErrInvalidRange when End <= Start.
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() || !i.End.After(i.Start) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidRange, i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports a strict overlap. Touching intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Covers reports whether other lies fully inside i.
func (i Interval) Covers(other Interval) bool {
	return !i.Start.After(other.Start) && !i.End.Before(other.End)
}

// AdjacentOrOverlapping reports whether i and other overlap or touch.
// Used for merge decisions.
func (i Interval) AdjacentOrOverlapping(other Interval) bool {
	return !i.Start.After(other.End) && !other.Start.After(i.End)
}

// Union returns the smallest interval spanning both.
func (i Interval) Union(other Interval) Interval {
	out := i
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Equal compares instants, ignoring location.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
