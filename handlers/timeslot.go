package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/timeslot"

	"github.com/gin-gonic/gin"
)

type TimeSlotHandler struct {
	Service timeslot.TimeSlotService
}

func NewTimeSlotHandler(service timeslot.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{Service: service}
}

// CreateTimeSlotsHandler defines the slots of time_slot_date.
func (h *TimeSlotHandler) CreateTimeSlotsHandler(c *gin.Context) {
	if err := requireJSON(c); err != nil {
		abortWithError(c, err)
		return
	}

	var req models.CreateTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindingError(err))
		return
	}
	day, err := parseDateParam("time_slot_date", req.TimeSlotDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	event, err := h.Service.CreateTimeSlots(c.Request.Context(), day)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event.ToTimeSlotsDTO())
}

// ListFreeTimeSlotsHandler lists the free slot times of date.
func (h *TimeSlotHandler) ListFreeTimeSlotsHandler(c *gin.Context) {
	var query models.FreeSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, bindingError(err))
		return
	}
	day, err := parseDateParam("date", query.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}

	free, err := h.Service.ListFreeTimeSlots(c.Request.Context(), day)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondList(c, free)
}
