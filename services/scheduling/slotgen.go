package scheduling

import (
	"time"

	"slotwise/models"
)

// GenerateSlots sweeps the day window and emits every bookable slot of the
// given duration around the busy list. The busy list must already be
// normalized (ordered, duplicates collapsed).
//
// The cursor starts at the window open with no leading buffer. A slot is
// emitted before the current busy interval only when it ends by the interval's
// start and, if a buffer is set, leaves at least that much room before it.
// Otherwise the cursor jumps past the busy interval plus the buffer. Once the
// busy list is exhausted the remaining window fills back to back.
func GenerateSlots(window models.TimeInterval, busy []models.TimeInterval, duration, buffer time.Duration) []models.BookableSlot {
	if duration <= 0 {
		return nil
	}
	// A negative buffer would drag the cursor back inside the busy interval it
	// just cleared; treat it as unset.
	if buffer < 0 {
		buffer = 0
	}

	var slots []models.BookableSlot
	cursor := window.Start
	i := 0

	for !cursor.Add(duration).After(window.End) {
		slotEnd := cursor.Add(duration)
		if i < len(busy) {
			b := busy[i]
			fits := !slotEnd.After(b.Start)
			buffered := buffer <= 0 || b.Start.Sub(slotEnd) >= buffer
			if fits && buffered {
				slots = append(slots, models.BookableSlot{StartTime: cursor, EndTime: slotEnd})
				cursor = slotEnd
			} else {
				cursor = b.End.Add(buffer)
				i++
			}
			continue
		}
		slots = append(slots, models.BookableSlot{StartTime: cursor, EndTime: slotEnd})
		cursor = slotEnd
	}
	return slots
}
