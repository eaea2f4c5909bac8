package routes

import (
	"net/http"
	"time"

	"slotbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers calendar event endpoints.
//
//	POST /api/v1/events                      {date_time}          -> 201 {status, time}
//	GET  /api/v1/events?start_date&end_date                       -> 200 [{date, slots}] | 204
func RegisterEventRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	events := api.Group("/events")
	{
		events.POST("", hb.CreateEventHandler)
		events.GET("", hb.ListEventsHandler)
	}
}

// RegisterTimeSlotRoutes registers time slot endpoints.
//
//	POST /api/v1/time-slots         {time_slot_date}  -> 201 day document
//	GET  /api/v1/time-slots/free?date                 -> 200 [time] | 204
func RegisterTimeSlotRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	slots := api.Group("/time-slots")
	{
		slots.POST("", hb.CreateTimeSlotsHandler)
		slots.GET("/free", hb.ListFreeTimeSlotsHandler)
	}
}

// RegisterStatusRoutes registers uptime, health and metrics endpoints.
func RegisterStatusRoutes(r *gin.Engine, api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/status", hb.GetSystemStatusHandler)
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET(hb.MetricsPath, hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	RegisterEventRoutes(api, hb)
	RegisterTimeSlotRoutes(api, hb)
	RegisterStatusRoutes(r, api, hb)
	RegisterDocsRoutes(r)
}
