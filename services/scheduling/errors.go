package scheduling

import "errors"

var (
	// ErrInvalidInput covers malformed request parameters such as an
	// unparseable date or a slot whose end is not after its start.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPolicyNotFound is returned when no appointment group or personal
	// duration matches the request.
	ErrPolicyNotFound = errors.New("appointment policy not found")

	// ErrMemberNotFound is returned when a mandatory member has no stored
	// availability document. Slots cannot be computed without it.
	ErrMemberNotFound = errors.New("member availability not found")

	// ErrSlotNoLongerAvailable is returned when a booking's slot fails
	// revalidation against a fresh computation.
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	// ErrBookingFrequencyExceeded is returned when the day's booking limit
	// has been reached between listing and booking.
	ErrBookingFrequencyExceeded = errors.New("booking frequency limit exceeded for this day")
)
