package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/event"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	Service event.EventService
}

func NewEventHandler(service event.EventService) *EventHandler {
	return &EventHandler{Service: service}
}

// CreateEventHandler claims the slot named by date_time.
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	if err := requireJSON(c); err != nil {
		abortWithError(c, err)
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindingError(err))
		return
	}
	dateTime, err := parseDateTimeParam("date_time", req.DateTime)
	if err != nil {
		abortWithError(c, err)
		return
	}

	slot, err := h.Service.CreateEvent(c.Request.Context(), dateTime)
	if err != nil {
		abortWithError(c, err)
		return
	}

	getLogger(c).Debug("Event created", zap.Time("time", slot.Time))
	c.JSON(http.StatusCreated, slot)
}

// ListEventsHandler lists day documents between start_date and end_date.
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	var query models.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, bindingError(err))
		return
	}
	start, err := parseDateParam("start_date", query.StartDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	end, err := parseDateParam("end_date", query.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	events, err := h.Service.ListEvents(c.Request.Context(), start, end)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respondList(c, events)
}
