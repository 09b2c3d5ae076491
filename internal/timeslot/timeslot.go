// Package timeslot converts between the grid's 12-hour display labels,
// 24-hour form values and the absolute timestamps stored for periods.
//
// Stored timestamps are ambiguous: the edit path builds them from local
// wall-clock fields, while other write paths have historically produced
// UTC wall-clock values. The resolver therefore exposes both
// interpretations and lets placement match either one.
package timeslot

import (
	"fmt"
	"time"
)

// NoMatch is returned by the minute parsers for input that does not parse.
// The slot list is static configuration, so a failed parse is a caller bug
// caught by tests rather than a runtime fault to propagate.
const NoMatch = -1

// Periods are stored against this fixed date; only the time-of-day is
// meaningful. Start and end must share the constant so an end time can
// never roll into a different day than its start.
var referenceDate = time.Date(2000, time.January, 2, 0, 0, 0, 0, time.Local)

// ParseSlotLabel parses a 12-hour label of the fixed form "HH:MM AM|PM"
// into minutes since midnight, or NoMatch if the label has any other shape.
func ParseSlotLabel(label string) int {
	if len(label) != 8 || label[2] != ':' || label[5] != ' ' {
		return NoMatch
	}
	hour, ok := twoDigits(label[0], label[1])
	if !ok || hour < 1 || hour > 12 {
		return NoMatch
	}
	minute, ok := twoDigits(label[3], label[4])
	if !ok || minute > 59 {
		return NoMatch
	}
	switch label[6:] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return NoMatch
	}
	return hour*60 + minute
}

// MinutesOfDay parses a 24-hour "HH:MM" string into minutes since midnight,
// or NoMatch.
func MinutesOfDay(value string) int {
	if len(value) != 5 || value[2] != ':' {
		return NoMatch
	}
	hour, ok := twoDigits(value[0], value[1])
	if !ok || hour > 23 {
		return NoMatch
	}
	minute, ok := twoDigits(value[3], value[4])
	if !ok || minute > 59 {
		return NoMatch
	}
	return hour*60 + minute
}

// ResolveSlotMinutes returns the minutes-since-midnight of a stored
// timestamp under both the viewer-local and the UTC interpretation.
// Callers must not assume which one the write path used.
func ResolveSlotMinutes(t time.Time) (local, utc int) {
	lt := t.Local()
	ut := t.UTC()
	return lt.Hour()*60 + lt.Minute(), ut.Hour()*60 + ut.Minute()
}

// To24Hour converts a grid slot label to the "HH:MM" form used to seed the
// edit form when an empty cell is clicked. Returns "" for labels that do
// not parse.
func To24Hour(label string) string {
	mins := ParseSlotLabel(label)
	if mins == NoMatch {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatLocal renders a stored timestamp as a local "HH:MM" string for the
// edit form. The edit form is always local-time authoritative, so only the
// local interpretation is used here.
func FormatLocal(t time.Time) string {
	return t.Local().Format("15:04")
}

// Combine builds the wire timestamp for a local "HH:MM" value on the fixed
// reference date.
func Combine(value string) (time.Time, error) {
	mins := MinutesOfDay(value)
	if mins == NoMatch {
		return time.Time{}, fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	return referenceDate.Add(time.Duration(mins) * time.Minute), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
