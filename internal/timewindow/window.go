// Package timewindow computes business-day boundaries and relative cutoffs.
// The business day is anchored to midnight in a fixed UTC offset (UTC+3 for
// the Addis Ababa shop), independent of the server's local timezone.
package timewindow

import "time"

const dayMillis = 86_400_000

// Relative cutoff widths used across the metrics engine.
const (
	CutoffWaiting      = 15 * time.Minute
	CutoffAlertWaiting = 30 * time.Minute
	CutoffFollowUp     = 12 * time.Hour
	CutoffStaleQuote   = 48 * time.Hour
	WindowWeek         = 7 * 24 * time.Hour
	WindowMonth        = 30 * 24 * time.Hour
)

// Resolver performs window arithmetic for a fixed UTC offset.
type Resolver struct {
	offsetMillis int64
}

// NewResolver builds a resolver for the given UTC offset in hours.
func NewResolver(utcOffsetHours int) Resolver {
	return Resolver{offsetMillis: int64(utcOffsetHours) * 3_600_000}
}

// DayBoundaries returns the epoch-millisecond start of the current and
// previous business day for the given instant: shift into business time,
// truncate to the 24h boundary, shift back.
func (r Resolver) DayBoundaries(now time.Time) (todayStart, yesterdayStart time.Time) {
	shifted := now.UnixMilli() + r.offsetMillis
	midnight := shifted - mod(shifted, dayMillis)
	today := midnight - r.offsetMillis
	return time.UnixMilli(today).UTC(), time.UnixMilli(today - dayMillis).UTC()
}

// TodayStart returns only the current business-day boundary.
func (r Resolver) TodayStart(now time.Time) time.Time {
	today, _ := r.DayBoundaries(now)
	return today
}

// Cutoff returns the instant d before now.
func Cutoff(now time.Time, d time.Duration) time.Time {
	return now.Add(-d)
}

// mod is a floored modulo so pre-epoch instants still truncate downward.
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
