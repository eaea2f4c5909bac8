package timeslot

import (
	"context"
	"fmt"
	"time"

	"slotbook/utils"
)

const (
	msgCreateTimeSlotsFailed = "Validation error occurred while creating time slots"
	msgTimeSlotDateInPast    = "The time slot date cannot be in past"
	msgDayAlreadyCreated     = "The time slots cannot be created as it is already created for the given date"
)

// validateTimeSlotDate rejects past dates and dates that already have slots.
func (s *DefaultTimeSlotService) validateTimeSlotDate(ctx context.Context, day time.Time) error {
	if utils.IsPastDate(day, s.Now(), s.Location) {
		return utils.NewValidationError(msgCreateTimeSlotsFailed, utils.ErrorDetail{
			Code:    "INVALID_TIME_SLOT_DATE",
			Message: msgTimeSlotDateInPast,
			Path:    []string{"time_slot_date"},
		})
	}

	exists, err := s.Repo.ExistsForDate(ctx, day)
	if err != nil {
		return utils.NewServerError(fmt.Errorf("failed to check existing time slots: %w", err))
	}
	if exists {
		return utils.NewConflictError(msgDayAlreadyCreated)
	}
	return nil
}
