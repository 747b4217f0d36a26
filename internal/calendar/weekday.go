package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinYear = 1
	MaxYear = 65535
)

// Weekday resolves the day of week of a proleptic Gregorian date.
// ok is false when the triple does not name a real calendar day.
func Weekday(year, month, day int) (time.Weekday, bool) {
	if year < MinYear || year > MaxYear || month < 1 || month > 12 || day < 1 {
		return 0, false
	}
	if day > DaysIn(year, time.Month(month)) {
		return 0, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday(), true
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfWeek is the weekday immediately preceding start.
func LastDayOfWeek(start time.Weekday) time.Weekday {
	return (start + 6) % 7
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// SlotName is the short lowercase key used for a weekday slot.
func SlotName(wd time.Weekday) string {
	return strings.ToLower(wd.String()[:3])
}
