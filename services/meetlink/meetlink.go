package meetlink

import (
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// Resolver decides the conference provider and link attached to a booking.
type Resolver interface {
	Resolve(policy *models.AppointmentPolicy) (provider string, link string)
}

// StaticResolver serves the link configured on the policy or availability.
// Zoom and custom providers always carry an explicit link; Google Meet may be
// configured with a reusable meeting link, and a booking without one is
// committed link-less and announced via the confirmation instead.
type StaticResolver struct{}

func NewStaticResolver() StaticResolver {
	return StaticResolver{}
}

func (StaticResolver) Resolve(policy *models.AppointmentPolicy) (string, string) {
	switch policy.MeetProvider {
	case models.MeetProviderZoom, models.MeetProviderCustom:
		return policy.MeetProvider, policy.MeetLink
	case models.MeetProviderGoogleMeet:
		if policy.MeetLink == "" {
			utils.GetLogger().Warn("google meet selected without a configured link",
				zap.String("policyId", policy.ID))
		}
		return policy.MeetProvider, policy.MeetLink
	default:
		return "", ""
	}
}
