// File: services/timeslot/timeslot.go
package timeslot

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

// CreateTimeSlots generates and stores the slots of day, a calendar date key.
func (s *DefaultTimeSlotService) CreateTimeSlots(ctx context.Context, day time.Time) (*models.Event, error) {
	if err := s.validateTimeSlotDate(ctx, day); err != nil {
		return nil, err
	}

	event, err := NewDayEvent(day, s.Config, s.Location)
	if err != nil {
		return nil, utils.NewServerError(fmt.Errorf("failed to generate time slots: %w", err))
	}

	// The existence check above and this insert are separate calls; the
	// unique date index catches a creator that slipped in between.
	if err := s.Repo.Create(ctx, event); err != nil {
		if errors.Is(err, eventRepo.ErrDuplicateDate) {
			return nil, utils.NewConflictError(msgDayAlreadyCreated)
		}
		return nil, utils.NewServerError(fmt.Errorf("failed to create time slots: %w", err))
	}

	s.Metrics.ObserveDayCreated()
	s.invalidate(ctx, day)
	s.Logger.Info("Time slots created",
		zap.String("date", utils.FormatDate(day)),
		zap.Int("slots", len(event.Slots)))
	return event, nil
}

// ListFreeTimeSlots returns the start times of the available slots of day.
// A day without a document has no free slots.
func (s *DefaultTimeSlotService) ListFreeTimeSlots(ctx context.Context, day time.Time) ([]time.Time, error) {
	// The version is read before the store so an allocation landing in
	// between makes the cache write below a no-op.
	cacheable := false
	var version int64
	if s.Cache != nil {
		times, hit, err := s.Cache.Get(ctx, day)
		switch {
		case err != nil:
			s.Logger.Warn("Free slots cache read failed", zap.Error(err))
		case hit:
			return times, nil
		default:
			if version, err = s.Cache.Version(ctx, day); err != nil {
				s.Logger.Warn("Free slots cache version read failed", zap.Error(err))
			} else {
				cacheable = true
			}
		}
	}

	event, err := s.Repo.GetByDate(ctx, day)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return []time.Time{}, nil
		}
		return nil, utils.NewServerError(fmt.Errorf("failed to fetch free time slots: %w", err))
	}

	free := event.FreeSlotTimes()
	if cacheable {
		if err := s.Cache.Set(ctx, day, version, free); err != nil {
			s.Logger.Warn("Free slots cache write failed", zap.Error(err))
		}
	}
	return free, nil
}

func (s *DefaultTimeSlotService) invalidate(ctx context.Context, day time.Time) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, day); err != nil {
		s.Logger.Warn("Free slots cache invalidation failed", zap.Error(err))
	}
}
