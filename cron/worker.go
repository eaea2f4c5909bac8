package cron

import (
	"context"
	"fmt"
	"time"

	"slotbook/models"
	"slotbook/utils"

	robfigcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SlotCreator creates the slots of one calendar day.
type SlotCreator interface {
	CreateTimeSlots(ctx context.Context, day time.Time) (*models.Event, error)
}

// PregenWorker creates day documents for today and the next DaysAhead days
// on a cron schedule. Days that already exist are skipped.
type PregenWorker struct {
	Creator   SlotCreator
	DaysAhead int
	Location  *time.Location
	Logger    *zap.Logger
	Now       func() time.Time

	cron *robfigcron.Cron
}

func NewPregenWorker(creator SlotCreator, daysAhead int, loc *time.Location, logger *zap.Logger) *PregenWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &PregenWorker{
		Creator:   creator,
		DaysAhead: daysAhead,
		Location:  loc,
		Logger:    logger,
		Now:       time.Now,
	}
}

// RunOnce creates every missing day in the window and returns how many were
// created. It keeps going past failures and returns the first one.
func (w *PregenWorker) RunOnce(ctx context.Context) (int, error) {
	today := utils.DateKey(w.Now(), w.Location)
	created := 0
	var firstErr error

	for i := 0; i <= w.DaysAhead; i++ {
		day := today.AddDate(0, 0, i)
		_, err := w.Creator.CreateTimeSlots(ctx, day)
		switch {
		case err == nil:
			created++
		case utils.IsKind(err, utils.KindConflict):
			// already generated
		default:
			w.Logger.Error("[PregenWorker] failed to create time slots",
				zap.String("date", utils.FormatDate(day)), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("pregen %s: %w", utils.FormatDate(day), err)
			}
		}
	}

	w.Logger.Info("[PregenWorker] run finished", zap.Int("created", created))
	return created, firstErr
}

// Start schedules RunOnce with a standard five-field cron expression.
func (w *PregenWorker) Start(schedule string) error {
	c := robfigcron.New(robfigcron.WithLocation(w.Location))
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = w.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid autogen schedule %q: %w", schedule, err)
	}
	w.cron = c
	c.Start()
	w.Logger.Info("[PregenWorker] started", zap.String("schedule", schedule), zap.Int("daysAhead", w.DaysAhead))
	return nil
}

// Stop halts scheduling and waits for a running job to finish.
func (w *PregenWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}
