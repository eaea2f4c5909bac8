package event

import (
	"time"

	"slotbook/utils"
)

const (
	msgCreateEventsFailed = "Validation error occurred while creating events"
	msgListEventsFailed   = "Validation error occurred while listing events"
	msgPastEventDate      = "You cannot create event for past date"
	msgInvalidDateRange   = "The start date must be less than end date"
	msgNoEventsAllowed    = "The event cannot be created as there are no events allowed for this date"
	msgSlotDoesNotExist   = "The event cannot be created as the requested time slot does not exist"
	msgEventAlreadyExists = "The event cannot be created as the event already exist for this date time"
)

func (s *DefaultEventService) validateEventDate(day time.Time) error {
	if utils.IsPastDate(day, s.Now(), s.Location) {
		return utils.NewValidationError(msgCreateEventsFailed, utils.ErrorDetail{
			Code:    "INVALID_DATE_TIME",
			Message: msgPastEventDate,
			Path:    []string{"date_time"},
		})
	}
	return nil
}

func validateDateRange(start, end time.Time) error {
	if !end.After(start) {
		return utils.NewValidationError(msgListEventsFailed, utils.ErrorDetail{
			Code:    "INVALID_START_END_DATE",
			Message: msgInvalidDateRange,
			Path:    []string{},
		})
	}
	return nil
}
