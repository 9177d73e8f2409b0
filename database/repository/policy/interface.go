package policyRepo

import (
	"context"

	"slotwise/models"
)

// PolicyRepository loads stored appointment groups.
type PolicyRepository interface {
	GetByID(ctx context.Context, id string) (*models.AppointmentPolicy, error)
	Create(ctx context.Context, policy *models.AppointmentPolicy) error
}
