package utils

import (
	"fmt"
	"time"
)

// Weekdays in scheduling order, Monday first.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayName returns the Monday-first weekday name for the given date.
func WeekdayName(t time.Time) string {
	// time.Weekday is Sunday-first.
	return Weekdays[(int(t.Weekday())+6)%7]
}

// UTCDate truncates t to its UTC calendar date at midnight.
func UTCDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateAndTime builds the UTC instant for the given calendar date and a
// "HH:MM:SS" time of day interpreted in loc.
func CombineDateAndTime(date time.Time, timeOfDay string, loc *time.Location) (time.Time, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d:%d", &h, &m, &s); err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, loc)
	return local.UTC(), nil
}

// ToFixedOffset projects a UTC instant into a caller timezone expressed as an
// offset in minutes from UTC.
func ToFixedOffset(t time.Time, offsetMinutes int) time.Time {
	zone := time.FixedZone("", offsetMinutes*60)
	return t.In(zone)
}

// DayBoundsUTC returns the [00:00:00, 23:59:59] UTC bounds for a calendar date.
func DayBoundsUTC(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}
