package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	availabilityRepo "slotwise/database/repository/availability"
	policyRepo "slotwise/database/repository/policy"
	"slotwise/models"
	"slotwise/utils"
)

// ManageHandler serves the configuration endpoints: availability documents and
// appointment groups.
type ManageHandler struct {
	Availability availabilityRepo.AvailabilityRepository
	Policies     policyRepo.PolicyRepository
	Logger       *zap.Logger
}

func NewManageHandler(availability availabilityRepo.AvailabilityRepository, policies policyRepo.PolicyRepository) *ManageHandler {
	return &ManageHandler{
		Availability: availability,
		Policies:     policies,
		Logger:       utils.GetLogger(),
	}
}

// UpsertAvailabilityHandler creates or replaces a user's availability document.
func (h *ManageHandler) UpsertAvailabilityHandler(c *gin.Context) {
	var doc models.UserAvailability
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if doc.User == "" || doc.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and slug are required"})
		return
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	for i := range doc.Durations {
		if doc.Durations[i].ID == "" {
			doc.Durations[i].ID = uuid.New().String()
		}
	}

	if err := h.Availability.Upsert(c.Request.Context(), &doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": doc})
}

// CreateGroupHandler stores a new appointment group.
func (h *ManageHandler) CreateGroupHandler(c *gin.Context) {
	var policy models.AppointmentPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}
	if err := policy.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Policies.Create(c.Request.Context(), &policy); err != nil {
		h.Logger.Error("failed to create appointment group", zap.String("groupId", policy.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": policy})
}
