package eventRepo

import (
	"context"
	"time"

	"slotwise/models"
)

// EventRepository is the booking event store: it counts and lists booked
// events for frequency limiting and commits new bookings.
type EventRepository interface {
	CountEvents(ctx context.Context, scope string, dayStart, dayEnd time.Time) (int, error)
	ListEvents(ctx context.Context, scope string, dayStart, dayEnd time.Time) ([]models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// RescheduleEvent moves an existing booking to a new window.
	RescheduleEvent(ctx context.Context, id string, startsOn, endsOn time.Time) error
}
