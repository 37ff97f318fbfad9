package calendar

import (
	"errors"
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func july14Window(t *testing.T) Window {
	t.Helper()
	w, err := NewWindow(date(2024, time.July, 14), 7, 7)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func TestIsDateDisabledBoundaries(t *testing.T) {
	w := july14Window(t)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "min_boundary", day: date(2024, time.July, 7), want: false},
		{name: "before_min", day: date(2024, time.July, 6), want: true},
		{name: "max_boundary", day: date(2024, time.July, 21), want: false},
		{name: "after_max", day: date(2024, time.July, 22), want: true},
		{name: "today", day: date(2024, time.July, 14), want: false},
		{name: "far_past", day: date(1900, time.January, 1), want: true},
		{name: "far_future", day: date(9999, time.December, 31), want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsDateDisabled(test.day, w); got != test.want {
				t.Fatalf("IsDateDisabled(%s) = %t, want %t", test.day.Format(time.DateOnly), got, test.want)
			}
			if got := w.Contains(test.day); got == test.want {
				t.Fatalf("Contains(%s) = %t, want %t", test.day.Format(time.DateOnly), got, !test.want)
			}
		})
	}
}

func TestIsDateDisabledIgnoresTimeOfDay(t *testing.T) {
	w := july14Window(t)

	for _, day := range []int{6, 7, 14, 21, 22} {
		base := date(2024, time.July, day)
		want := IsDateDisabled(base, w)
		for _, offset := range []time.Duration{time.Nanosecond, time.Hour, 12 * time.Hour, 24*time.Hour - time.Nanosecond} {
			if got := IsDateDisabled(base.Add(offset), w); got != want {
				t.Fatalf("day %d offset %s: got %t, want %t", day, offset, got, want)
			}
		}
	}
}

func TestIsDateDisabledUsesCandidateCalendarDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	w := july14Window(t)

	// 2024-07-22 01:00 in Tokyo is still July 21 in UTC, but its calendar date is the 22nd.
	candidate := time.Date(2024, time.July, 22, 1, 0, 0, 0, tokyo)
	if !IsDateDisabled(candidate, w) {
		t.Fatalf("expected %s to be disabled", candidate)
	}
}

func TestClampOrReject(t *testing.T) {
	w := july14Window(t)

	got, err := ClampOrReject(time.Date(2024, time.July, 10, 18, 30, 0, 0, time.UTC), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := date(2024, time.July, 10); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}

	if _, err := ClampOrReject(date(2024, time.July, 30), w); !errors.Is(err, ErrDateOutOfRange) {
		t.Fatalf("expected ErrDateOutOfRange, got %v", err)
	}
}

func TestDayNavigationRoundTrip(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	days := []time.Time{
		time.Date(2024, time.July, 14, 15, 4, 5, 0, time.UTC),
		time.Date(2024, time.March, 10, 12, 0, 0, 0, nyc), // DST starts
		time.Date(2024, time.November, 3, 23, 59, 0, 0, nyc),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 31, 8, 0, 0, 0, time.UTC),
	}

	for _, d := range days {
		start := StartOfDay(d)
		if got := PreviousDay(NextDay(d)); !got.Equal(start) {
			t.Fatalf("PreviousDay(NextDay(%s)) = %s, want %s", d, got, start)
		}
		if got := NextDay(PreviousDay(d)); !got.Equal(start) {
			t.Fatalf("NextDay(PreviousDay(%s)) = %s, want %s", d, got, start)
		}
		if got := NextDay(d); got.Hour() != 0 || got.Day() == d.Day() {
			t.Fatalf("NextDay(%s) = %s", d, got)
		}
	}
}

func TestNewWindowRejectsNegativeLimits(t *testing.T) {
	if _, err := NewWindow(date(2024, time.July, 14), -1, 7); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := NewPolicy(7, -2, time.UTC, nil); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestPolicyWindowFollowsClock(t *testing.T) {
	clock := &fixedClock{now: time.Date(2024, time.July, 14, 23, 0, 0, 0, time.UTC)}
	p, err := NewPolicy(7, 7, time.UTC, clock)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	if !IsDateDisabled(date(2024, time.July, 22), p.Window()) {
		t.Fatal("July 22 should be disabled on July 14")
	}

	clock.now = clock.now.Add(2 * time.Hour)
	if IsDateDisabled(date(2024, time.July, 22), p.Window()) {
		t.Fatal("July 22 should be selectable on July 15")
	}
	if !IsDateDisabled(date(2024, time.July, 7), p.Window()) {
		t.Fatal("July 7 should be disabled on July 15")
	}
}

func TestPolicyDescribe(t *testing.T) {
	p, err := NewPolicy(3, 5, time.UTC, nil)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	want := "Please select a date within 3 days in the past and 5 days in the future."
	if got := p.Describe(); got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}
