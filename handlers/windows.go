package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	availabilityRepo "slotwise/database/repository/availability"
	"slotwise/models"
	"slotwise/utils"
)

const windowsCacheTTL = 5 * time.Minute

// WindowsHandler serves the public scheduling page data for a user: which
// weekdays they take meetings on and the durations they offer. The payload is
// read-mostly, so it is cached briefly in Redis.
type WindowsHandler struct {
	Availability availabilityRepo.AvailabilityRepository
	Cache        *redis.Client
	Logger       *zap.Logger
}

func NewWindowsHandler(availability availabilityRepo.AvailabilityRepository, cache *redis.Client) *WindowsHandler {
	return &WindowsHandler{
		Availability: availability,
		Cache:        cache,
		Logger:       utils.GetLogger(),
	}
}

type meetingWindows struct {
	User          string                  `json:"user"`
	Slug          string                  `json:"slug"`
	AvailableDays []string                `json:"availableDays"`
	WeeklyHours   []models.WeeklyHourRule `json:"weeklyHours"`
	Durations     []models.SlotDuration   `json:"durations"`
}

// GetMeetingWindowsHandler returns the meeting windows for a public slug.
func (h *WindowsHandler) GetMeetingWindowsHandler(c *gin.Context) {
	slug := c.Param("slug")
	cacheKey := "windows:" + slug

	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var payload meetingWindows
			if err := json.Unmarshal([]byte(cached), &payload); err == nil {
				c.JSON(http.StatusOK, payload)
				return
			}
		}
	}

	avail, err := h.Availability.GetBySlug(c.Request.Context(), slug)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such scheduling page"})
		return
	}
	if err != nil {
		h.Logger.Error("failed to load meeting windows", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var days []string
	for _, d := range utils.Weekdays {
		if avail.AvailableDays()[d] {
			days = append(days, d)
		}
	}
	payload := meetingWindows{
		User:          avail.User,
		Slug:          avail.Slug,
		AvailableDays: days,
		WeeklyHours:   avail.WeeklyHours,
		Durations:     avail.Durations,
	}

	if h.Cache != nil {
		if data, err := json.Marshal(payload); err == nil {
			if err := h.Cache.Set(context.Background(), cacheKey, data, windowsCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache meeting windows", zap.String("slug", slug), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
