package scheduling

import (
	"testing"

	"slotwise/models"
)

func TestFilterToWindow(t *testing.T) {
	window := iv(9, 0, 17, 0)
	in := []models.TimeInterval{
		iv(7, 0, 8, 0),    // fully before
		iv(8, 30, 9, 0),   // touching the open
		iv(12, 0, 13, 0),  // inside
		iv(16, 30, 18, 0), // spilling out
		iv(18, 0, 19, 0),  // fully after
	}

	got := FilterToWindow(in, window)
	if len(got) != 3 {
		t.Fatalf("kept %d intervals, want 3: %v", len(got), got)
	}
	if !got[0].End.Equal(at(9, 0)) {
		t.Fatalf("touching interval should survive the filter, got %v", got[0])
	}
}

func TestNormalizeBusyOrdersAndDeduplicates(t *testing.T) {
	in := []models.TimeInterval{
		iv(14, 0, 15, 0),
		iv(9, 0, 10, 0),
		iv(9, 0, 10, 0), // same meeting seen on a second calendar
		iv(9, 30, 10, 0),
		iv(11, 0, 11, 30),
	}

	got := NormalizeBusy(in)
	if len(got) != 4 {
		t.Fatalf("got %d intervals, want 4: %v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].End.Before(got[i-1].End) {
			t.Fatalf("intervals not ordered by end: %v", got)
		}
	}
	// Equal ends order by start.
	if !got[0].Start.Equal(at(9, 0)) || !got[1].Start.Equal(at(9, 30)) {
		t.Fatalf("equal-end intervals not ordered by start: %v", got)
	}
}

func TestNormalizeBusyEmpty(t *testing.T) {
	if got := NormalizeBusy(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
