package calendar

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

// ErrQueryFailed signals that the provider could not be queried at all
// (auth failure, network error, malformed response). The whole day's slot
// computation must abort on it: a schedule the engine cannot verify must not
// be offered as open.
var ErrQueryFailed = errors.New("calendar query failed")

// BusyPeriodProvider fetches the busy intervals of one calendar for one day.
// Implementations return intervals normalized to UTC; ordering is not
// guaranteed.
type BusyPeriodProvider interface {
	// Enabled reports whether the provider is configured for reads.
	Enabled() bool
	// GetBusyIntervals returns all busy intervals of the calendar between
	// dayStart and dayEnd. When ignoreAllDay is set, date-only (all-day)
	// entries are dropped; otherwise their presence is a query failure since
	// the engine cannot place them on the timeline.
	GetBusyIntervals(ctx context.Context, calendarID string, dayStart, dayEnd time.Time, ignoreAllDay bool) ([]models.TimeInterval, error)
}
