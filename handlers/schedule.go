package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/calendar"
	"slotwise/services/scheduling"
	"slotwise/utils"
)

// ScheduleHandler serves slot listing and booking endpoints.
type ScheduleHandler struct {
	Engine *scheduling.Engine
	Logger *zap.Logger
}

func NewScheduleHandler(engine *scheduling.Engine) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine, Logger: utils.GetLogger()}
}

// slotQuery pulls the shared listing parameters: the requested date and the
// caller's UTC offset in minutes.
func slotQuery(c *gin.Context) (date string, tzOffset int, ok bool) {
	date = c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return "", 0, false
	}
	offsetStr := c.DefaultQuery("tz_offset", "0")
	tzOffset, err := strconv.Atoi(offsetStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "tz_offset must be an integer number of minutes")
		return "", 0, false
	}
	return date, tzOffset, true
}

// GetGroupSlotsHandler lists the open slots of an appointment group for a date.
func (h *ScheduleHandler) GetGroupSlotsHandler(c *gin.Context) {
	date, tzOffset, ok := slotQuery(c)
	if !ok {
		return
	}

	res, err := h.Engine.GetGroupSlots(c.Request.Context(), c.Param("id"), date, tzOffset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// BookGroupSlotHandler books one listed slot of an appointment group.
func (h *ScheduleHandler) BookGroupSlotHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	event, err := h.Engine.BookGroupSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// RescheduleGroupEventHandler moves a booked group event onto another open slot.
func (h *ScheduleHandler) RescheduleGroupEventHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	event, err := h.Engine.RescheduleGroupEvent(c.Request.Context(), c.Param("id"), c.Param("eventId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// GetPersonalSlotsHandler lists the open slots of a personal duration.
func (h *ScheduleHandler) GetPersonalSlotsHandler(c *gin.Context) {
	date, tzOffset, ok := slotQuery(c)
	if !ok {
		return
	}

	res, err := h.Engine.GetPersonalSlots(c.Request.Context(), c.Param("slug"), c.Param("durationId"), date, tzOffset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// BookPersonalSlotHandler books one listed slot of a personal duration.
func (h *ScheduleHandler) BookPersonalSlotHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	event, err := h.Engine.BookPersonalSlot(c.Request.Context(), c.Param("slug"), c.Param("durationId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// ReschedulePersonalEventHandler moves a booked personal event.
func (h *ScheduleHandler) ReschedulePersonalEventHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	event, err := h.Engine.ReschedulePersonalEvent(c.Request.Context(), c.Param("slug"), c.Param("durationId"), c.Param("eventId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *ScheduleHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, scheduling.ErrPolicyNotFound), errors.Is(err, scheduling.ErrMemberNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, scheduling.ErrSlotNoLongerAvailable), errors.Is(err, scheduling.ErrBookingFrequencyExceeded):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", err.Error())
	case errors.Is(err, calendar.ErrQueryFailed):
		h.Logger.Error("calendar query failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: "could not verify calendar availability"})
	default:
		h.Logger.Error("schedule request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "internal error"})
	}
}
