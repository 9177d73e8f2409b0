package scheduling

import (
	"testing"
	"time"

	"slotwise/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 1, 7, h, m, 0, 0, time.UTC)
}

func iv(startH, startM, endH, endM int) models.TimeInterval {
	return models.TimeInterval{Start: at(startH, startM), End: at(endH, endM)}
}

func assertSlots(t *testing.T, got []models.BookableSlot, want []models.TimeInterval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d slots, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if !got[i].StartTime.Equal(w.Start) || !got[i].EndTime.Equal(w.End) {
			t.Fatalf("slot %d = %v-%v, want %v-%v", i, got[i].StartTime, got[i].EndTime, w.Start, w.End)
		}
	}
}

func TestGenerateSlotsFreeWindow(t *testing.T) {
	window := iv(9, 0, 11, 0)
	got := GenerateSlots(window, nil, 30*time.Minute, 0)
	assertSlots(t, got, []models.TimeInterval{
		iv(9, 0, 9, 30), iv(9, 30, 10, 0), iv(10, 0, 10, 30), iv(10, 30, 11, 0),
	})
}

func TestGenerateSlotsAroundBusyInterval(t *testing.T) {
	window := iv(9, 0, 11, 0)
	busy := []models.TimeInterval{iv(9, 45, 10, 15)}

	got := GenerateSlots(window, busy, 30*time.Minute, 0)
	assertSlots(t, got, []models.TimeInterval{
		iv(9, 0, 9, 30), iv(10, 15, 10, 45),
	})
}

func TestGenerateSlotsBufferBeforeBusy(t *testing.T) {
	window := iv(9, 0, 12, 0)
	busy := []models.TimeInterval{iv(10, 0, 10, 30)}
	buffer := 15 * time.Minute

	// A 45-minute slot ends at 09:45, exactly the buffer before the busy
	// interval, so it survives.
	got := GenerateSlots(window, busy, 45*time.Minute, buffer)
	if len(got) == 0 || !got[0].EndTime.Equal(at(9, 45)) {
		t.Fatalf("expected first slot ending 09:45, got %v", got)
	}

	// A 50-minute slot ends at 09:50, inside the buffer, so the cursor skips
	// past the busy interval plus the buffer.
	got = GenerateSlots(window, busy, 50*time.Minute, buffer)
	assertSlots(t, got, []models.TimeInterval{
		iv(10, 45, 11, 35),
	})
}

func TestGenerateSlotsBackToBackAfterBusy(t *testing.T) {
	window := iv(9, 0, 11, 0)
	busy := []models.TimeInterval{iv(9, 0, 9, 20)}

	got := GenerateSlots(window, busy, 30*time.Minute, 0)
	assertSlots(t, got, []models.TimeInterval{
		iv(9, 20, 9, 50), iv(9, 50, 10, 20), iv(10, 20, 10, 50),
	})
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	window := iv(9, 0, 11, 0)

	if got := GenerateSlots(window, nil, 0, 0); got != nil {
		t.Fatalf("zero duration must yield no slots, got %v", got)
	}
	if got := GenerateSlots(window, nil, -30*time.Minute, 0); got != nil {
		t.Fatalf("negative duration must yield no slots, got %v", got)
	}
}

func TestGenerateSlotsNegativeBufferTreatedAsUnset(t *testing.T) {
	window := iv(9, 0, 11, 0)
	busy := []models.TimeInterval{iv(9, 30, 10, 0)}

	// A negative buffer must not pull the cursor back inside the busy
	// interval it just skipped.
	got := GenerateSlots(window, busy, 30*time.Minute, -15*time.Minute)
	assertSlots(t, got, []models.TimeInterval{
		iv(9, 0, 9, 30), iv(10, 0, 10, 30), iv(10, 30, 11, 0),
	})
}

func TestGenerateSlotsProperties(t *testing.T) {
	window := iv(8, 0, 18, 0)
	duration := 25 * time.Minute
	buffer := 10 * time.Minute

	cases := [][]models.TimeInterval{
		nil,
		{iv(9, 0, 9, 30)},
		{iv(8, 10, 8, 40), iv(12, 0, 12, 5), iv(15, 55, 17, 0)},
		{iv(8, 0, 18, 0)},
		{iv(9, 0, 10, 0), iv(9, 30, 10, 30)},
	}

	for ci, busy := range cases {
		busy = NormalizeBusy(busy)
		slots := GenerateSlots(window, busy, duration, buffer)

		for i, s := range slots {
			if s.EndTime.Sub(s.StartTime) != duration {
				t.Fatalf("case %d: slot %d has length %v", ci, i, s.EndTime.Sub(s.StartTime))
			}
			if s.StartTime.Before(window.Start) || s.EndTime.After(window.End) {
				t.Fatalf("case %d: slot %d escapes the window: %v-%v", ci, i, s.StartTime, s.EndTime)
			}
			if i > 0 && slots[i-1].EndTime.After(s.StartTime) {
				t.Fatalf("case %d: slots %d and %d overlap", ci, i-1, i)
			}
		}
	}
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	window := iv(9, 0, 13, 0)
	busy := NormalizeBusy([]models.TimeInterval{iv(10, 0, 10, 40), iv(11, 30, 11, 45)})

	first := GenerateSlots(window, busy, 30*time.Minute, 5*time.Minute)
	second := GenerateSlots(window, busy, 30*time.Minute, 5*time.Minute)
	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].StartTime.Equal(second[i].StartTime) || !first[i].EndTime.Equal(second[i].EndTime) {
			t.Fatalf("slot %d differs between runs", i)
		}
	}
}
