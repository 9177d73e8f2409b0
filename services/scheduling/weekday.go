package scheduling

import (
	"time"

	"slotwise/models"
	"slotwise/utils"
)

// Seeds for the fold over member hours. End uses "24" so any real "HH:MM:SS"
// value compares smaller.
const (
	dayStartSeed = "00:00:00"
	dayEndSeed   = "24:00:00"
)

// DayWindow is the joint bookable window of all mandatory members on one
// weekday, still in "HH:MM:SS" reference-timezone form.
type DayWindow struct {
	StartTime string
	EndTime   string
}

// IntersectAvailableDays returns the weekday names on which every member has a
// weekly rule, in Monday-first order.
func IntersectAvailableDays(avails []*models.UserAvailability) []string {
	var out []string
	for _, day := range utils.Weekdays {
		staffed := true
		for _, a := range avails {
			if !a.AvailableDays()[day] {
				staffed = false
				break
			}
		}
		if staffed && len(avails) > 0 {
			out = append(out, day)
		}
	}
	return out
}

// ResolveDayWindow folds the members' rules for one weekday into the latest
// start and earliest end. Returns false when the day is not staffed by all
// members or the fold leaves no positive window.
func ResolveDayWindow(avails []*models.UserAvailability, day string) (DayWindow, bool) {
	w := DayWindow{StartTime: dayStartSeed, EndTime: dayEndSeed}
	for _, a := range avails {
		rule, ok := a.RuleFor(day)
		if !ok {
			return DayWindow{}, false
		}
		if rule.StartTime > w.StartTime {
			w.StartTime = rule.StartTime
		}
		if rule.EndTime < w.EndTime {
			w.EndTime = rule.EndTime
		}
	}
	if len(avails) == 0 || w.StartTime >= w.EndTime {
		return DayWindow{}, false
	}
	return w, true
}

// ToInterval converts the window for a concrete calendar date into UTC
// instants, interpreting the times of day in loc.
func (w DayWindow) ToInterval(date time.Time, loc *time.Location) (models.TimeInterval, error) {
	start, err := utils.CombineDateAndTime(date, w.StartTime, loc)
	if err != nil {
		return models.TimeInterval{}, err
	}
	end, err := utils.CombineDateAndTime(date, w.EndTime, loc)
	if err != nil {
		return models.TimeInterval{}, err
	}
	return models.TimeInterval{Start: start, End: end}, nil
}

// staffedDaySet builds a lookup for the intersected weekday names.
func staffedDaySet(days []string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// nearestStaffedOffsets scans outward from the date's weekday, cyclically, and
// returns how many days forward and backward the closest staffed weekdays lie.
// Both are 0 when the date's own weekday is staffed; ok is false when no
// weekday is staffed at all.
func nearestStaffedOffsets(date time.Time, staffed map[string]bool) (next, prev int, ok bool) {
	if len(staffed) == 0 {
		return 0, 0, false
	}
	if staffed[utils.WeekdayName(date)] {
		return 0, 0, true
	}
	for k := 1; k <= 6; k++ {
		if next == 0 && staffed[utils.WeekdayName(date.AddDate(0, 0, k))] {
			next = k
		}
		if prev == 0 && staffed[utils.WeekdayName(date.AddDate(0, 0, -k))] {
			prev = k
		}
	}
	return next, prev, true
}
