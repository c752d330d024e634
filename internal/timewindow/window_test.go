package timewindow

import (
	"testing"
	"time"
)

func TestDayBoundariesAnchoredToOffsetMidnight(t *testing.T) {
	r := NewResolver(3)

	// Noon UTC on March 14 is mid-afternoon in UTC+3; the business day
	// started at 21:00 UTC the previous evening.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	todayStart, yesterdayStart := r.DayBoundaries(now)

	wantToday := time.Date(2026, 3, 13, 21, 0, 0, 0, time.UTC)
	if !todayStart.Equal(wantToday) {
		t.Fatalf("expected today start %v, got %v", wantToday, todayStart)
	}
	if got := todayStart.Sub(yesterdayStart); got != 24*time.Hour {
		t.Fatalf("yesterday start must be exactly 24h earlier, got %v", got)
	}
}

func TestDayBoundariesStableWithinBusinessDay(t *testing.T) {
	r := NewResolver(3)
	base := time.Date(2026, 3, 13, 21, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{0, time.Minute, 6 * time.Hour, 23*time.Hour + 59*time.Minute} {
		todayStart, _ := r.DayBoundaries(base.Add(offset))
		if !todayStart.Equal(base) {
			t.Fatalf("instant %v resolved to %v, want %v", base.Add(offset), todayStart, base)
		}
	}
}

func TestDayBoundariesRollOverAtOffsetMidnight(t *testing.T) {
	r := NewResolver(3)
	boundary := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

	before, _ := r.DayBoundaries(boundary.Add(-time.Millisecond))
	after, _ := r.DayBoundaries(boundary)
	if before.Equal(after) {
		t.Fatal("crossing offset midnight must advance the boundary")
	}
	if !after.Equal(boundary) {
		t.Fatalf("expected new day start %v, got %v", boundary, after)
	}
}

func TestDayBoundariesZeroOffset(t *testing.T) {
	r := NewResolver(0)
	now := time.Date(2026, 3, 14, 1, 30, 0, 0, time.UTC)
	todayStart, _ := r.DayBoundaries(now)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !todayStart.Equal(want) {
		t.Fatalf("expected UTC midnight %v, got %v", want, todayStart)
	}
}

func TestDayBoundariesPreEpoch(t *testing.T) {
	r := NewResolver(3)
	now := time.Date(1969, 12, 30, 12, 0, 0, 0, time.UTC)
	todayStart, yesterdayStart := r.DayBoundaries(now)
	if todayStart.After(now) {
		t.Fatalf("today start %v must not be after the instant %v", todayStart, now)
	}
	if got := todayStart.Sub(yesterdayStart); got != 24*time.Hour {
		t.Fatalf("pre-epoch boundaries must stay 24h apart, got %v", got)
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	if got := Cutoff(now, WindowWeek); !got.Equal(now.Add(-7*24*time.Hour)) {
		t.Fatalf("unexpected week cutoff %v", got)
	}
}
