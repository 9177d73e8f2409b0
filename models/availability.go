package models

import "fmt"

// WeeklyHourRule is one weekday's bookable hours for a user, expressed as
// "HH:MM:SS" times of day in the scheduler's reference timezone.
type WeeklyHourRule struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`
}

// SlotDuration is a personal-meeting shorthand: a fixed event length plus the
// date-window rules that apply when it is booked.
type SlotDuration struct {
	ID                     string `bson:"id" json:"id"`
	Title                  string `bson:"title" json:"title"`
	DurationSeconds        int    `bson:"duration" json:"duration"`
	MinimumBufferSeconds   int    `bson:"minimum_buffer_time,omitempty" json:"minimumBufferTime,omitempty"`
	MinimumNoticeDays      int    `bson:"minimum_notice_before_event" json:"minimumNoticeBeforeEvent"`
	AvailabilityWindowDays int    `bson:"availability_window" json:"availabilityWindow"`
}

// UserAvailability is the stored availability document for one user: weekly
// recurring hours, the external calendar to check busy time against, and the
// personal-meeting durations offered.
type UserAvailability struct {
	ID               string `bson:"id" json:"id"`
	User             string `bson:"user" json:"user"`
	Slug             string `bson:"slug" json:"slug"`
	EnableScheduling bool   `bson:"enable_scheduling" json:"enableScheduling"`

	// GoogleCalendarID is empty when the user has no calendar configured, in
	// which case they are assumed free.
	GoogleCalendarID   string `bson:"google_calendar_id,omitempty" json:"googleCalendarId,omitempty"`
	IgnoreAllDayEvents bool   `bson:"ignore_all_day_events" json:"ignoreAllDayEvents"`

	WeeklyHours []WeeklyHourRule `bson:"weekly_hours" json:"weeklyHours"`
	Durations   []SlotDuration   `bson:"durations,omitempty" json:"durations,omitempty"`

	MeetingProvider string `bson:"meeting_provider,omitempty" json:"meetingProvider,omitempty"`
	MeetingLink     string `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
}

// RuleFor returns the weekly rule for the given weekday name, if any.
func (a *UserAvailability) RuleFor(day string) (WeeklyHourRule, bool) {
	for _, rule := range a.WeeklyHours {
		if rule.Day == day {
			return rule, true
		}
	}
	return WeeklyHourRule{}, false
}

// AvailableDays returns the set of weekday names the user has rules for.
func (a *UserAvailability) AvailableDays() map[string]bool {
	days := make(map[string]bool, len(a.WeeklyHours))
	for _, rule := range a.WeeklyHours {
		days[rule.Day] = true
	}
	return days
}

// DurationByID finds a personal-meeting duration shorthand.
func (a *UserAvailability) DurationByID(id string) (*SlotDuration, bool) {
	for i := range a.Durations {
		if a.Durations[i].ID == id {
			return &a.Durations[i], true
		}
	}
	return nil, false
}

// Validate enforces the stored-document invariants: at most one weekly rule
// per weekday, start strictly before end, and duration shorthands with a
// positive length and a non-negative buffer.
func (a *UserAvailability) Validate() error {
	seen := make(map[string]bool, len(a.WeeklyHours))
	for _, rule := range a.WeeklyHours {
		if seen[rule.Day] {
			return fmt.Errorf("availability %s: duplicate weekly rule for %s", a.ID, rule.Day)
		}
		seen[rule.Day] = true
		if rule.StartTime >= rule.EndTime {
			return fmt.Errorf("availability %s: %s start %s is not before end %s", a.ID, rule.Day, rule.StartTime, rule.EndTime)
		}
	}
	for _, d := range a.Durations {
		if d.DurationSeconds <= 0 {
			return fmt.Errorf("availability %s: duration %s must have a positive length", a.ID, d.ID)
		}
		if d.MinimumBufferSeconds < 0 {
			return fmt.Errorf("availability %s: duration %s has a negative buffer", a.ID, d.ID)
		}
	}
	return nil
}
