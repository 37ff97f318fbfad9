package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDateOutOfRange is returned when a candidate date falls outside the selectable window.
	ErrDateOutOfRange = errors.New("date out of range")

	// ErrInvalidLimit is returned when a window limit is negative.
	ErrInvalidLimit = errors.New("window limits must not be negative")
)

// Clock abstracts the current time so the window can be anchored in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Window is the inclusive range of selectable calendar dates anchored to Today.
// A Window is a snapshot: build a new one whenever "now" may have moved.
type Window struct {
	Today           time.Time
	PastLimitDays   int
	FutureLimitDays int
}

// NewWindow builds a Window, rejecting negative limits.
func NewWindow(today time.Time, pastLimitDays, futureLimitDays int) (Window, error) {
	if pastLimitDays < 0 || futureLimitDays < 0 {
		return Window{}, fmt.Errorf("%w: past=%d future=%d", ErrInvalidLimit, pastLimitDays, futureLimitDays)
	}
	return Window{
		Today:           today,
		PastLimitDays:   pastLimitDays,
		FutureLimitDays: futureLimitDays,
	}, nil
}

// MinDate is the first selectable day, at start of day.
func (w Window) MinDate() time.Time {
	return StartOfDay(w.Today).AddDate(0, 0, -w.PastLimitDays)
}

// MaxDate is the last selectable day, at start of day.
func (w Window) MaxDate() time.Time {
	return StartOfDay(w.Today).AddDate(0, 0, w.FutureLimitDays)
}

// Contains reports whether the candidate's calendar date lies inside the window.
func (w Window) Contains(candidate time.Time) bool {
	return !IsDateDisabled(candidate, w)
}

// IsDateDisabled reports whether candidate's calendar date is outside the window.
// Time of day never affects the result. The candidate's year, month and day are
// read in its own location and compared as a midnight in the window's location.
func IsDateDisabled(candidate time.Time, w Window) bool {
	day := dayIn(candidate, w.Today.Location())
	return day.Before(w.MinDate()) || day.After(w.MaxDate())
}

// ClampOrReject returns the start of candidate's day when it is selectable and
// ErrDateOutOfRange otherwise. Callers keep their previous selection on error.
func ClampOrReject(candidate time.Time, w Window) (time.Time, error) {
	if IsDateDisabled(candidate, w) {
		return time.Time{}, ErrDateOutOfRange
	}
	return dayIn(candidate, w.Today.Location()), nil
}

// PreviousDay returns the start of the calendar day before current.
// It does not check the window.
func PreviousDay(current time.Time) time.Time {
	return StartOfDay(current).AddDate(0, 0, -1)
}

// NextDay returns the start of the calendar day after current.
// It does not check the window.
func NextDay(current time.Time) time.Time {
	return StartOfDay(current).AddDate(0, 0, 1)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
