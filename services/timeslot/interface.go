package timeslot

import (
	"context"
	"fmt"
	"time"

	eventRepo "slotbook/database/repository/event"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// TimeSlotService defines the slot-day operations.
type TimeSlotService interface {
	CreateTimeSlots(ctx context.Context, date time.Time) (*models.Event, error)
	ListFreeTimeSlots(ctx context.Context, date time.Time) ([]time.Time, error)
}

// SlotCache caches the free slot times of a day. Set must drop the write when
// the day was invalidated after version was read.
type SlotCache interface {
	Get(ctx context.Context, date time.Time) ([]time.Time, bool, error)
	Version(ctx context.Context, date time.Time) (int64, error)
	Set(ctx context.Context, date time.Time, version int64, times []time.Time) error
	Invalidate(ctx context.Context, date time.Time) error
}

// DefaultTimeSlotService is the production implementation.
type DefaultTimeSlotService struct {
	Repo     eventRepo.EventRepository
	Config   EventConfig
	Location *time.Location
	Cache    SlotCache // optional
	Metrics  *utils.Metrics
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultTimeSlotService(
	repo eventRepo.EventRepository,
	cfg EventConfig,
	loc *time.Location,
	cache SlotCache,
	metrics *utils.Metrics,
	logger *zap.Logger,
) (*DefaultTimeSlotService, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("timeslot service initialization error: one or more dependencies are nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultTimeSlotService{
		Repo:     repo,
		Config:   cfg,
		Location: loc,
		Cache:    cache,
		Metrics:  metrics,
		Logger:   logger,
		Now:      time.Now,
	}, nil
}
