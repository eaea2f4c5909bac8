// File: slotbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Event endpoints
	CreateEventHandler gin.HandlerFunc
	ListEventsHandler  gin.HandlerFunc

	// Time slot endpoints
	CreateTimeSlotsHandler   gin.HandlerFunc
	ListFreeTimeSlotsHandler gin.HandlerFunc

	// Status endpoints
	GetSystemStatusHandler gin.HandlerFunc
	HealthHandler          gin.HandlerFunc

	// Metrics endpoint, nil when metrics are disabled
	MetricsHandler gin.HandlerFunc
	MetricsPath    string
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(events *EventHandler, timeslots *TimeSlotHandler, status *StatusHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateEventHandler:       events.CreateEventHandler,
		ListEventsHandler:        events.ListEventsHandler,
		CreateTimeSlotsHandler:   timeslots.CreateTimeSlotsHandler,
		ListFreeTimeSlotsHandler: timeslots.ListFreeTimeSlotsHandler,
		GetSystemStatusHandler:   status.GetSystemStatusHandler,
		HealthHandler:            status.HealthHandler,
	}
}
