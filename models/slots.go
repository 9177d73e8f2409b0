package models

import "time"

// BookableSlot is one offerable meeting window, exactly the policy duration
// long. Times are UTC unless projected for a caller.
type BookableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// DateValidation is the outcome of checking a requested date against the
// policy's notice and availability-window rules.
type DateValidation struct {
	IsValid        bool      `json:"isValid"`
	ValidStartDate time.Time `json:"validStartDate"`
	// ValidEndDate is zero when the availability window is unbounded.
	ValidEndDate  time.Time `json:"validEndDate,omitzero"`
	NextValidDate time.Time `json:"nextValidDate"`
	PrevValidDate time.Time `json:"prevValidDate"`
}

// DaySlotResult is the listing response for one policy/date pair.
type DaySlotResult struct {
	Date             string         `json:"date"`
	Duration         time.Duration  `json:"duration"`
	Slots            []BookableSlot `json:"allAvailableSlotsForDay"`
	TotalSlotsForDay int            `json:"totalSlotsForDay"`
	IsInvalidDate    bool           `json:"isInvalidDate"`
	ValidStartDate   time.Time      `json:"validStartDate,omitzero"`
	ValidEndDate     time.Time      `json:"validEndDate,omitzero"`
	NextValidDate    time.Time      `json:"nextValidDate,omitzero"`
	PrevValidDate    time.Time      `json:"prevValidDate,omitzero"`
	AvailableDays    []string       `json:"availableDays"`
}
