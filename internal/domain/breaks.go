package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// on anchors the time of day to the calendar date of ref, in ref's location.
func (t TimeOfDay) on(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, ref.Location())
}

// Represents a daily scheduled pause in which no picking is expected.
type BreakInterval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (b BreakInterval) String() string {
	return b.Start.String() + "-" + b.End.String()
}

// BreakCalendar is the ordered set of daily breaks. It is configuration:
// build it once and share it read-only.
type BreakCalendar []BreakInterval

func (c BreakCalendar) String() string {
	parts := make([]string, 0, len(c))
	for _, b := range c {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ",")
}

// DefaultBreakCalendar returns the two-shift pause schedule of the reference deployment.
func DefaultBreakCalendar() BreakCalendar {
	return BreakCalendar{
		{Start: TimeOfDay{8, 15}, End: TimeOfDay{8, 30}},
		{Start: TimeOfDay{11, 0}, End: TimeOfDay{11, 30}},
		{Start: TimeOfDay{13, 45}, End: TimeOfDay{14, 0}},
		{Start: TimeOfDay{16, 15}, End: TimeOfDay{16, 30}},
		{Start: TimeOfDay{19, 0}, End: TimeOfDay{19, 30}},
		{Start: TimeOfDay{21, 45}, End: TimeOfDay{22, 0}},
	}
}

// ParseBreakCalendar reads a comma-separated list of "HH:MM-HH:MM" intervals.
func ParseBreakCalendar(s string) (BreakCalendar, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BreakCalendar{}, nil
	}

	var cal BreakCalendar
	for i, item := range strings.Split(s, ",") {
		bounds := strings.Split(strings.TrimSpace(item), "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("parse break calendar: entry #%d %q: want HH:MM-HH:MM", i+1, item)
		}

		start, err := parseTimeOfDay(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("parse break calendar: entry #%d start: %w", i+1, err)
		}
		end, err := parseTimeOfDay(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("parse break calendar: entry #%d end: %w", i+1, err)
		}

		if end.Hour*60+end.Minute <= start.Hour*60+start.Minute {
			return nil, fmt.Errorf("parse break calendar: entry #%d %q ends before it starts", i+1, item)
		}
		cal = append(cal, BreakInterval{Start: start, End: end})
	}

	return cal, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("time of day %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: invalid minute", s)
	}

	return TimeOfDay{Hour: h, Minute: m}, nil
}
