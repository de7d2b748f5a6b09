package domain

import "time"

// DefaultGrossDurationCap is the gap above which breaks are no longer subtracted.
const DefaultGrossDurationCap = 12 * time.Hour

// DurationCalculator computes idle time between picks net of scheduled breaks.
type DurationCalculator struct {
	breaks   BreakCalendar
	grossCap time.Duration
}

func NewDurationCalculator(breaks BreakCalendar, grossCap time.Duration) *DurationCalculator {
	return &DurationCalculator{breaks: breaks, grossCap: grossCap}
}

// GrossSeconds returns end-start in seconds, or 0 for a missing or reversed pair.
func (c *DurationCalculator) GrossSeconds(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	return end.Sub(start).Seconds()
}

// NetSeconds returns the gross duration minus every break overlapping [start, end].
//
// Break windows are anchored to the calendar date of start only, so breaks on
// the following day of a pair that crosses midnight are not subtracted. Pairs
// longer than the gross cap are returned gross: they span shifts or days and
// are reported at full size.
func (c *DurationCalculator) NetSeconds(start, end time.Time) float64 {
	gross := c.GrossSeconds(start, end)
	if gross == 0 {
		return 0
	}
	if end.Sub(start) > c.grossCap {
		return gross
	}

	var paused float64
	for _, b := range c.breaks {
		paused += OverlapSeconds(start, end, b.Start.on(start), b.End.on(start))
	}

	net := gross - paused
	if net < 0 {
		return 0
	}
	return net
}

// OverlapSeconds returns the length of the intersection of [aStart, aEnd] and [bStart, bEnd].
func OverlapSeconds(aStart, aEnd, bStart, bEnd time.Time) float64 {
	lo := aStart
	if bStart.After(lo) {
		lo = bStart
	}
	hi := aEnd
	if bEnd.Before(hi) {
		hi = bEnd
	}

	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo).Seconds()
}
