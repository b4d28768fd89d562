package schema

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders a latency in seconds the way the duration axis labels it:
// "45s" below a minute, "12m 5s" below an hour, "2h 30m" otherwise.
// Negative values are clamped to zero.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds))
	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	default:
		return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
	}
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DayStart truncates t to midnight of its calendar day in UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekEnding returns midnight UTC of the day closing the week that contains t,
// where weeks end on the given weekday.
func WeekEnding(t time.Time, weekEnd time.Weekday) time.Time {
	day := DayStart(t)
	offset := (int(weekEnd) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}
