package models

// CreateEventRequest claims the slot starting at DateTime (RFC 3339).
type CreateEventRequest struct {
	DateTime string `json:"date_time" binding:"required"`
}

// CreateTimeSlotsRequest defines the slots of one calendar day.
type CreateTimeSlotsRequest struct {
	TimeSlotDate string `json:"time_slot_date" binding:"required"` // "YYYY-MM-DD"
}

// ListEventsQuery bounds an event listing, both dates inclusive.
type ListEventsQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// FreeSlotsQuery selects the day whose free slots are listed.
type FreeSlotsQuery struct {
	Date string `form:"date" binding:"required"`
}

// StatusResponse reports process uptime in whole seconds.
type StatusResponse struct {
	UpTime int64 `json:"up_time"`
}
