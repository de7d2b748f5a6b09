package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date layouts seen in WMS exports: ISO, SAP German/Czech dotted, US slashed.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
	"1/2/2006",
	"1/2/06",
	"2006/01/02",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"15:04:05.000000",
}

// parseConfirmation combines the confirmation date and time cells into one
// timestamp, read as UTC. Spreadsheet serial numbers (days since 1899-12-30,
// fractional days for the time) are accepted for either cell.
func parseConfirmation(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}

	day, ok := parseDate(date)
	if !ok {
		return time.Time{}, false
	}
	offset, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}

	return day.Add(offset), true
}

func parseDate(s string) (time.Time, bool) {
	// Date cells exported with a time part ("2024-01-01 00:00:00") keep only the date.
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(math.Floor(serial), false)
		if err != nil {
			return time.Time{}, false
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseClock returns the offset from midnight.
func parseClock(s string) (time.Duration, bool) {
	if frac, err := strconv.ParseFloat(s, 64); err == nil {
		if frac < 0 || frac >= 1 {
			return 0, false
		}
		secs := math.Round(frac * 24 * 60 * 60)
		return time.Duration(secs) * time.Second, true
	}

	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second +
			time.Duration(t.Nanosecond()), true
	}
	return 0, false
}
