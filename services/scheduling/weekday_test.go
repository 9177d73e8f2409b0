package scheduling

import (
	"testing"
	"time"

	"slotwise/models"
)

func availWithDays(rules map[string][2]string) *models.UserAvailability {
	a := &models.UserAvailability{User: "u"}
	for day, times := range rules {
		a.WeeklyHours = append(a.WeeklyHours, models.WeeklyHourRule{
			Day: day, StartTime: times[0], EndTime: times[1],
		})
	}
	return a
}

func TestIntersectAvailableDays(t *testing.T) {
	a := availWithDays(map[string][2]string{
		"Monday":    {"09:00:00", "17:00:00"},
		"Wednesday": {"09:00:00", "17:00:00"},
		"Friday":    {"09:00:00", "17:00:00"},
	})
	b := availWithDays(map[string][2]string{
		"Wednesday": {"10:00:00", "16:00:00"},
		"Friday":    {"08:00:00", "12:00:00"},
		"Saturday":  {"09:00:00", "12:00:00"},
	})

	days := IntersectAvailableDays([]*models.UserAvailability{a, b})
	if len(days) != 2 || days[0] != "Wednesday" || days[1] != "Friday" {
		t.Fatalf("intersection = %v, want [Wednesday Friday]", days)
	}

	// Subset of each member, and dropping a member never shrinks the set.
	solo := IntersectAvailableDays([]*models.UserAvailability{a})
	if len(solo) < len(days) {
		t.Fatalf("removing a member shrank availability: %v -> %v", days, solo)
	}
	for _, d := range days {
		if !a.AvailableDays()[d] || !b.AvailableDays()[d] {
			t.Fatalf("day %s is not available to every member", d)
		}
	}
}

func TestResolveDayWindowFoldsToTightest(t *testing.T) {
	a := availWithDays(map[string][2]string{"Monday": {"09:00:00", "17:00:00"}})
	b := availWithDays(map[string][2]string{"Monday": {"10:30:00", "15:00:00"}})

	w, ok := ResolveDayWindow([]*models.UserAvailability{a, b}, "Monday")
	if !ok {
		t.Fatal("expected a window for Monday")
	}
	if w.StartTime != "10:30:00" || w.EndTime != "15:00:00" {
		t.Fatalf("window = %+v, want 10:30:00-15:00:00", w)
	}
}

func TestResolveDayWindowEmptyOnMissingRule(t *testing.T) {
	a := availWithDays(map[string][2]string{"Monday": {"09:00:00", "17:00:00"}})
	b := availWithDays(map[string][2]string{"Tuesday": {"09:00:00", "17:00:00"}})

	if _, ok := ResolveDayWindow([]*models.UserAvailability{a, b}, "Monday"); ok {
		t.Fatal("Monday should have no joint window when a member lacks a rule")
	}
}

func TestResolveDayWindowEmptyOnDisjointHours(t *testing.T) {
	a := availWithDays(map[string][2]string{"Monday": {"09:00:00", "12:00:00"}})
	b := availWithDays(map[string][2]string{"Monday": {"13:00:00", "17:00:00"}})

	if w, ok := ResolveDayWindow([]*models.UserAvailability{a, b}, "Monday"); ok {
		t.Fatalf("disjoint member hours should yield no window, got %+v", w)
	}
}

func TestNearestStaffedOffsets(t *testing.T) {
	staffed := map[string]bool{"Wednesday": true}

	// 2026-01-10 is a Saturday.
	sat := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	next, prev, ok := nearestStaffedOffsets(sat, staffed)
	if !ok {
		t.Fatal("expected some staffed weekday")
	}
	if next != 4 || prev != 3 {
		t.Fatalf("offsets = (+%d, -%d), want (+4, -3)", next, prev)
	}

	// A staffed weekday needs no adjustment.
	wed := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	next, prev, ok = nearestStaffedOffsets(wed, staffed)
	if !ok || next != 0 || prev != 0 {
		t.Fatalf("staffed weekday should report zero offsets, got (+%d, -%d)", next, prev)
	}

	if _, _, ok := nearestStaffedOffsets(sat, map[string]bool{}); ok {
		t.Fatal("no staffed weekday should report ok=false")
	}
}

func TestDayWindowToInterval(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	w := DayWindow{StartTime: "09:00:00", EndTime: "17:00:00"}
	iv, err := w.ToInterval(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), loc)
	if err != nil {
		t.Fatalf("to interval: %v", err)
	}
	// IST is UTC+05:30.
	if !iv.Start.Equal(time.Date(2026, 1, 7, 3, 30, 0, 0, time.UTC)) {
		t.Fatalf("start = %v, want 03:30 UTC", iv.Start)
	}
	if !iv.End.Equal(time.Date(2026, 1, 7, 11, 30, 0, 0, time.UTC)) {
		t.Fatalf("end = %v, want 11:30 UTC", iv.End)
	}
}
