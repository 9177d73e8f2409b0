package models

import (
	"fmt"
	"time"
)

// Meeting-link provider kinds a policy can be configured with.
const (
	MeetProviderGoogleMeet = "Google Meet"
	MeetProviderZoom       = "Zoom"
	MeetProviderCustom     = "Custom"
)

// Member is one participant of an appointment group. Only mandatory members
// constrain slot computation; optional members are informational.
type Member struct {
	User        string `bson:"user" json:"user"`
	IsMandatory bool   `bson:"is_mandatory" json:"isMandatory"`
	Timezone    string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// AppointmentPolicy is the full set of scheduling rules for one bookable
// meeting kind. It is either loaded from a stored appointment group or
// synthesized on the fly for a personal (1:1) duration.
type AppointmentPolicy struct {
	ID        string   `bson:"id" json:"id"`
	GroupName string   `bson:"group_name" json:"groupName"`
	Members   []Member `bson:"members" json:"members"`

	Duration                 time.Duration `bson:"duration" json:"duration"`
	MinimumBufferTime        time.Duration `bson:"minimum_buffer_time,omitempty" json:"minimumBufferTime,omitempty"`
	MinimumNoticeBeforeEvent int           `bson:"minimum_notice_before_event" json:"minimumNoticeBeforeEvent"`
	// AvailabilityWindow is in days; <= 0 means unbounded.
	AvailabilityWindow int `bson:"availability_window" json:"availabilityWindow"`
	// LimitBookingFrequency is the max bookings per day; negative means unlimited.
	LimitBookingFrequency int  `bson:"limit_booking_frequency" json:"limitBookingFrequency"`
	IgnoreAllDayEvents    bool `bson:"ignore_all_day_events" json:"ignoreAllDayEvents"`

	MeetProvider string `bson:"meet_provider,omitempty" json:"meetProvider,omitempty"`
	MeetLink     string `bson:"meet_link,omitempty" json:"meetLink,omitempty"`
	Webhook      string `bson:"webhook,omitempty" json:"webhook,omitempty"`

	// Personal scheduling: when set, booked events are scoped by the duration
	// shorthand instead of the group identity.
	IsPersonal bool   `bson:"is_personal,omitempty" json:"isPersonal,omitempty"`
	DurationID string `bson:"duration_id,omitempty" json:"durationId,omitempty"`
}

// MandatoryMembers returns the members whose availability constrains slots.
func (p *AppointmentPolicy) MandatoryMembers() []Member {
	var out []Member
	for _, m := range p.Members {
		if m.IsMandatory {
			out = append(out, m)
		}
	}
	return out
}

// EventScope identifies the entity booked events are counted against.
func (p *AppointmentPolicy) EventScope() string {
	if p.IsPersonal {
		return "duration:" + p.DurationID
	}
	return "group:" + p.ID
}

// Validate checks the policy invariants shared by stored and synthesized
// policies.
func (p *AppointmentPolicy) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("policy %s: duration must be positive", p.ID)
	}
	if p.MinimumBufferTime < 0 {
		return fmt.Errorf("policy %s: buffer time cannot be negative", p.ID)
	}
	for _, m := range p.Members {
		if m.IsMandatory {
			return nil
		}
	}
	return fmt.Errorf("policy %s: at least one mandatory member is required", p.ID)
}

// SynthesizePersonalPolicy builds an ad hoc policy for a 1:1 booking from a
// user's stored duration shorthand, mirroring the stored-group shape so the
// same slot pipeline serves both.
func SynthesizePersonalPolicy(availability *UserAvailability, duration *SlotDuration) *AppointmentPolicy {
	return &AppointmentPolicy{
		ID:        availability.ID,
		GroupName: "Personal Meeting",
		Members: []Member{
			{User: availability.User, IsMandatory: true},
		},
		Duration:                 time.Duration(duration.DurationSeconds) * time.Second,
		MinimumBufferTime:        time.Duration(duration.MinimumBufferSeconds) * time.Second,
		MinimumNoticeBeforeEvent: duration.MinimumNoticeDays,
		AvailabilityWindow:       duration.AvailabilityWindowDays,
		LimitBookingFrequency:    -1,
		IgnoreAllDayEvents:       availability.IgnoreAllDayEvents,
		MeetProvider:             availability.MeetingProvider,
		MeetLink:                 availability.MeetingLink,
		IsPersonal:               true,
		DurationID:               duration.ID,
	}
}
