package settlement

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const millisPerDay = 24 * 60 * 60 * 1000

// ParseDate converts a yyyy-mm-dd formatted string into a midnight-normalized
// UTC time. Business dates carry no time-of-day component.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// FormatDate renders a time as a yyyy-mm-dd business date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Midnight normalizes a time to midnight UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the billable day count from start to end, the ceiling
// of the millisecond difference over one day so partial days round up.
// A non-positive difference yields 0, never a negative count.
func DaysBetween(start, end time.Time) int {
	ms := Midnight(end).Sub(Midnight(start)).Milliseconds()
	if ms <= 0 {
		return 0
	}
	days := ms / millisPerDay
	if ms%millisPerDay != 0 {
		days++
	}
	return int(days)
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
