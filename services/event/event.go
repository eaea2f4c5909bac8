// File: services/event/event.go
package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventRepo "slotbook/database/repository/event"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// CreateEvent claims the slot starting at dateTime. Fractional seconds are
// dropped before the slot lookup.
func (s *DefaultEventService) CreateEvent(ctx context.Context, dateTime time.Time) (*models.AllocatedSlot, error) {
	requested := dateTime.Truncate(time.Second)
	day := utils.DateKey(requested, s.Location)

	if err := s.validateEventDate(day); err != nil {
		s.Metrics.ObserveAllocation("rejected")
		return nil, err
	}

	// 1. Load the day document
	event, err := s.Repo.GetByDate(ctx, day)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.Metrics.ObserveAllocation("rejected")
			return nil, utils.NewValidationError(msgNoEventsAllowed)
		}
		return nil, utils.NewServerError(fmt.Errorf("failed to load events for date: %w", err))
	}

	// 2. Find the requested slot
	idx := event.FindSlot(requested)
	if idx < 0 {
		s.Metrics.ObserveAllocation("rejected")
		return nil, utils.NewValidationError(msgSlotDoesNotExist)
	}
	slot := event.Slots[idx]
	if !slot.IsAvailable() {
		s.Metrics.ObserveAllocation("conflict")
		return nil, utils.NewConflictError(msgEventAlreadyExists)
	}

	// 3. Flip it; the store only matches while the slot is still available
	if err := s.Repo.OccupySlot(ctx, day, slot.Time); err != nil {
		if errors.Is(err, eventRepo.ErrSlotNotAvailable) {
			s.Metrics.ObserveAllocation("conflict")
			return nil, utils.NewConflictError(msgEventAlreadyExists)
		}
		return nil, utils.NewServerError(fmt.Errorf("failed to allocate slot: %w", err))
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, day); err != nil {
			s.Logger.Warn("Free slots cache invalidation failed", zap.Error(err))
		}
	}
	s.Metrics.ObserveAllocation("occupied")
	s.Logger.Info("Slot allocated", zap.Time("time", slot.Time))

	return &models.AllocatedSlot{
		Status: models.SlotOccupied,
		Time:   slot.Time,
	}, nil
}

// ListEvents returns the day documents dated within [startDate, endDate].
// endDate must be after startDate.
func (s *DefaultEventService) ListEvents(ctx context.Context, startDate, endDate time.Time) ([]models.EventDTO, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	events, err := s.Repo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, utils.NewServerError(fmt.Errorf("failed to list events: %w", err))
	}

	out := make([]models.EventDTO, 0, len(events))
	for i := range events {
		out = append(out, events[i].ToDTO())
	}
	return out, nil
}
