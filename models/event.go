package models

import "time"

// EventParticipant is one attendee of a booked event.
type EventParticipant struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
}

// Event is a committed booking. StartsOn/EndsOn are UTC.
type Event struct {
	ID          string    `bson:"id" json:"id"`
	Subject     string    `bson:"subject" json:"subject"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	StartsOn    time.Time `bson:"starts_on" json:"startsOn"`
	EndsOn      time.Time `bson:"ends_on" json:"endsOn"`

	// Scope ties the event to the policy (group) or personal duration it was
	// booked under, for frequency counting.
	Scope string `bson:"scope" json:"scope"`

	Participants []EventParticipant `bson:"participants,omitempty" json:"participants,omitempty"`

	MeetProvider string `bson:"meet_provider,omitempty" json:"meetProvider,omitempty"`
	MeetLink     string `bson:"meet_link,omitempty" json:"meetLink,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Interval returns the event's occupied time range.
func (e *Event) Interval() TimeInterval {
	return TimeInterval{Start: e.StartsOn, End: e.EndsOn}
}

// LeaveRecord marks a user unavailable for whole calendar days (approved leave
// or a holiday).
type LeaveRecord struct {
	ID       string    `bson:"id" json:"id"`
	User     string    `bson:"user" json:"user"`
	FromDate time.Time `bson:"from_date" json:"fromDate"`
	ToDate   time.Time `bson:"to_date" json:"toDate"`
	Reason   string    `bson:"reason,omitempty" json:"reason,omitempty"`
}
