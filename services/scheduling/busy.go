package scheduling

import (
	"sort"

	"slotwise/models"
)

// FilterToWindow keeps only the busy intervals that overlap the day window.
// Touching endpoints count as overlap so a meeting ending exactly at the
// window open still blocks nothing but survives the filter intact.
func FilterToWindow(intervals []models.TimeInterval, window models.TimeInterval) []models.TimeInterval {
	var out []models.TimeInterval
	for _, iv := range intervals {
		if models.Overlaps(iv, window) {
			out = append(out, iv)
		}
	}
	return out
}

// NormalizeBusy orders the merged busy list the way the sweep consumes it,
// by end time then start time, and collapses exact duplicates (the same
// meeting appearing on several members' calendars).
func NormalizeBusy(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]models.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].End.Equal(sorted[j].End) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := sorted[:1]
	for _, iv := range sorted[1:] {
		last := out[len(out)-1]
		if iv.Start.Equal(last.Start) && iv.End.Equal(last.End) {
			continue
		}
		out = append(out, iv)
	}
	return out
}
