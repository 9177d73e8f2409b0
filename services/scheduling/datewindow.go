package scheduling

import (
	"time"

	"slotwise/models"
	"slotwise/utils"
)

// ValidateDateWindow checks a requested calendar date against the notice and
// availability-window rules. All dates are compared at UTC-midnight
// granularity. noticeDays pushes the first bookable date forward from today;
// windowDays bounds how far ahead bookings may go (0 or negative means
// unbounded).
func ValidateDateWindow(date, today time.Time, noticeDays, windowDays int) models.DateValidation {
	date = utils.UTCDate(date)
	today = utils.UTCDate(today)

	validStart := today.AddDate(0, 0, noticeDays)
	var validEnd time.Time
	if windowDays > 0 {
		validEnd = validStart.AddDate(0, 0, windowDays-1)
	}

	v := models.DateValidation{
		ValidStartDate: validStart,
		ValidEndDate:   validEnd,
	}

	switch {
	case date.Before(validStart):
		v.NextValidDate = validStart
		v.PrevValidDate = validStart
	case windowDays > 0 && date.After(validEnd):
		v.NextValidDate = validEnd
		v.PrevValidDate = validStart
	default:
		v.IsValid = true
		v.NextValidDate = date
		v.PrevValidDate = date
	}
	return v
}

// clampDate bounds a date to [validStart, validEnd]. A zero validEnd means no
// upper bound.
func clampDate(date, validStart, validEnd time.Time) time.Time {
	if date.Before(validStart) {
		return validStart
	}
	if !validEnd.IsZero() && date.After(validEnd) {
		return validEnd
	}
	return date
}
