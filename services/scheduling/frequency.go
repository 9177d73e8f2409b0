package scheduling

import (
	"context"
	"time"

	eventRepo "slotwise/database/repository/event"
	"slotwise/models"
	"slotwise/utils"
)

// FrequencyResult carries the day's already-booked events along with the
// verdict, so the caller can fold the events into the busy list.
type FrequencyResult struct {
	Events    []models.Event
	Available bool
}

// CheckBookingFrequency loads the events booked under the scope on the given
// UTC date and decides whether another booking is allowed. Only events that
// both start and end inside the date count. A negative limit means unlimited.
// excludeID drops one event from consideration, used when that event itself
// is being rescheduled.
func CheckBookingFrequency(ctx context.Context, events eventRepo.EventRepository, scope string, date time.Time, limit int, excludeID string) (FrequencyResult, error) {
	dayStart := utils.UTCDate(date)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := events.ListEvents(ctx, scope, dayStart, dayEnd)
	if err != nil {
		return FrequencyResult{}, err
	}
	if excludeID != "" {
		kept := booked[:0]
		for _, ev := range booked {
			if ev.ID != excludeID {
				kept = append(kept, ev)
			}
		}
		booked = kept
	}
	return FrequencyResult{
		Events:    booked,
		Available: limit < 0 || len(booked) < limit,
	}, nil
}
