package availabilityRepo

import (
	"context"

	"slotwise/models"
)

// AvailabilityRepository loads user availability documents.
type AvailabilityRepository interface {
	GetByUser(ctx context.Context, user string) (*models.UserAvailability, error)
	GetBySlug(ctx context.Context, slug string) (*models.UserAvailability, error)
	Upsert(ctx context.Context, availability *models.UserAvailability) error
	// ListWithCalendars returns every availability that has an external
	// calendar wired, for the periodic credential sweep.
	ListWithCalendars(ctx context.Context) ([]models.UserAvailability, error)
}
