package domain

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestNetSecondsSubtractsBreak(t *testing.T) {
	calc := NewDurationCalculator(
		BreakCalendar{{Start: TimeOfDay{8, 15}, End: TimeOfDay{8, 30}}},
		DefaultGrossDurationCap,
	)

	start, end := at(8, 0), at(8, 45)
	if got := calc.GrossSeconds(start, end); got != 2700 {
		t.Fatalf("gross = %v, want 2700", got)
	}
	if got := calc.NetSeconds(start, end); got != 1800 {
		t.Fatalf("net = %v, want 1800", got)
	}
}

func TestNetSecondsReversedOrMissing(t *testing.T) {
	calc := NewDurationCalculator(DefaultBreakCalendar(), DefaultGrossDurationCap)

	if got := calc.NetSeconds(at(9, 0), at(8, 0)); got != 0 {
		t.Fatalf("reversed pair net = %v, want 0", got)
	}
	if got := calc.NetSeconds(time.Time{}, at(8, 0)); got != 0 {
		t.Fatalf("missing start net = %v, want 0", got)
	}
	if got := calc.NetSeconds(at(8, 0), time.Time{}); got != 0 {
		t.Fatalf("missing end net = %v, want 0", got)
	}
}

func TestNetSecondsAboveCapIsGross(t *testing.T) {
	calc := NewDurationCalculator(DefaultBreakCalendar(), DefaultGrossDurationCap)

	start := at(6, 0)
	end := start.Add(13 * time.Hour)
	if got, want := calc.NetSeconds(start, end), (13 * time.Hour).Seconds(); got != want {
		t.Fatalf("net = %v, want %v", got, want)
	}
}

func TestNetSecondsWholeBreakIsZero(t *testing.T) {
	calc := NewDurationCalculator(DefaultBreakCalendar(), DefaultGrossDurationCap)

	if got := calc.NetSeconds(at(11, 5), at(11, 25)); got != 0 {
		t.Fatalf("net inside break = %v, want 0", got)
	}
}

func TestNetSecondsSeveralBreaks(t *testing.T) {
	calc := NewDurationCalculator(DefaultBreakCalendar(), DefaultGrossDurationCap)

	// 08:00-12:00 contains 08:15-08:30 and 11:00-11:30.
	if got, want := calc.NetSeconds(at(8, 0), at(12, 0)), float64(4*3600-45*60); got != want {
		t.Fatalf("net = %v, want %v", got, want)
	}
}

func TestNetSecondsAcrossMidnightUsesStartDate(t *testing.T) {
	cal := BreakCalendar{{Start: TimeOfDay{0, 15}, End: TimeOfDay{0, 45}}}
	calc := NewDurationCalculator(cal, DefaultGrossDurationCap)

	start := time.Date(2024, 1, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	if got, want := calc.NetSeconds(start, end), end.Sub(start).Seconds(); got != want {
		t.Fatalf("net = %v, want %v (next-day breaks are not subtracted)", got, want)
	}
}

func TestOverlapSeconds(t *testing.T) {
	if got := OverlapSeconds(at(8, 0), at(9, 0), at(8, 30), at(10, 0)); got != 1800 {
		t.Fatalf("partial overlap = %v, want 1800", got)
	}
	if got := OverlapSeconds(at(8, 0), at(9, 0), at(9, 0), at(10, 0)); got != 0 {
		t.Fatalf("touching overlap = %v, want 0", got)
	}
	if got := OverlapSeconds(at(8, 0), at(9, 0), at(6, 0), at(7, 0)); got != 0 {
		t.Fatalf("disjoint overlap = %v, want 0", got)
	}
}

func TestParseBreakCalendar(t *testing.T) {
	cal, err := ParseBreakCalendar("08:15-08:30, 11:00-11:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cal) != 2 {
		t.Fatalf("len = %d, want 2", len(cal))
	}
	if cal.String() != "08:15-08:30,11:00-11:30" {
		t.Fatalf("String() = %q", cal.String())
	}

	for _, bad := range []string{"08:15", "8-9", "25:00-26:00", "09:00-08:00"} {
		if _, err := ParseBreakCalendar(bad); err == nil {
			t.Fatalf("ParseBreakCalendar(%q) expected error", bad)
		}
	}

	if got := len(DefaultBreakCalendar()); got != 6 {
		t.Fatalf("default calendar entries = %d, want 6", got)
	}
}
