package calendar

import (
	"fmt"
	"time"
)

// Policy anchors a look-back/look-ahead window to the clock. Every call to
// Window re-reads the clock, so the allowed range moves forward with time.
type Policy struct {
	pastLimitDays   int
	futureLimitDays int
	location        *time.Location
	clock           Clock
}

// NewPolicy creates a Policy. A nil location means time.Local and a nil clock
// uses the system time.
func NewPolicy(pastLimitDays, futureLimitDays int, location *time.Location, clock Clock) (*Policy, error) {
	if pastLimitDays < 0 || futureLimitDays < 0 {
		return nil, fmt.Errorf("%w: past=%d future=%d", ErrInvalidLimit, pastLimitDays, futureLimitDays)
	}
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Policy{
		pastLimitDays:   pastLimitDays,
		futureLimitDays: futureLimitDays,
		location:        location,
		clock:           clock,
	}, nil
}

// Window snapshots the current window.
func (p *Policy) Window() Window {
	return Window{
		Today:           p.Today(),
		PastLimitDays:   p.pastLimitDays,
		FutureLimitDays: p.futureLimitDays,
	}
}

// Today is the start of the current day in the policy's location.
func (p *Policy) Today() time.Time {
	return StartOfDay(p.clock.Now().In(p.location))
}

// Now is the current instant in the policy's location.
func (p *Policy) Now() time.Time {
	return p.clock.Now().In(p.location)
}

// Location is the time zone dates are interpreted in.
func (p *Policy) Location() *time.Location {
	return p.location
}

// Describe is the user-facing explanation shown when a date is rejected.
func (p *Policy) Describe() string {
	return fmt.Sprintf("Please select a date within %d days in the past and %d days in the future.",
		p.pastLimitDays, p.futureLimitDays)
}

// ParseDate reads a YYYY-MM-DD date in the policy's location.
func (p *Policy) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, p.location)
}
