package event

import (
	"context"
	"fmt"
	"time"

	eventRepo "slotbook/database/repository/event"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// EventService defines the calendar event operations.
type EventService interface {
	CreateEvent(ctx context.Context, dateTime time.Time) (*models.AllocatedSlot, error)
	ListEvents(ctx context.Context, startDate, endDate time.Time) ([]models.EventDTO, error)
}

// CacheInvalidator drops cached free slots of a day.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo     eventRepo.EventRepository
	Location *time.Location
	Cache    CacheInvalidator // optional
	Metrics  *utils.Metrics
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultEventService(
	repo eventRepo.EventRepository,
	loc *time.Location,
	cache CacheInvalidator,
	metrics *utils.Metrics,
	logger *zap.Logger,
) (*DefaultEventService, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("event service initialization error: one or more dependencies are nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultEventService{
		Repo:     repo,
		Location: loc,
		Cache:    cache,
		Metrics:  metrics,
		Logger:   logger,
		Now:      time.Now,
	}, nil
}
