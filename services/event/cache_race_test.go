package event

import (
	"context"
	"sync"
	"testing"
	"time"

	eventRepo "slotbook/database/repository/event"
	"slotbook/models"
	"slotbook/services/timeslot"
	"slotbook/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pausingRepo holds the first GetByDate after the day is loaded until release
// is closed.
type pausingRepo struct {
	eventRepo.EventRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingRepo) GetByDate(ctx context.Context, date time.Time) (*models.Event, error) {
	event, err := r.EventRepository.GetByDate(ctx, date)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return event, err
}

func TestListFreeTimeSlots_AllocationDuringLoadIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := utils.NewFreeSlotCache(client, time.Minute)

	repo := eventRepo.NewMemoryEventRepo()
	paused := &pausingRepo{
		EventRepository: repo,
		loaded:          make(chan struct{}),
		release:         make(chan struct{}),
	}

	slots, err := timeslot.NewDefaultTimeSlotService(paused, timeslot.EventConfig{
		StartHour: "09:00",
		EndHour:   "10:00",
		Duration:  30,
	}, time.UTC, cache, nil, zap.NewNop())
	require.NoError(t, err)
	slots.Now = func() time.Time { return fixedNow }

	events, err := NewDefaultEventService(repo, time.UTC, cache, nil, zap.NewNop())
	require.NoError(t, err)
	events.Now = func() time.Time { return fixedNow }

	ctx := context.Background()
	_, err = slots.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)

	readerDone := make(chan error, 1)
	go func() {
		_, err := slots.ListFreeTimeSlots(ctx, tomorrow)
		readerDone <- err
	}()

	<-paused.loaded
	_, err = events.CreateEvent(ctx, nine)
	require.NoError(t, err)
	close(paused.release)
	require.NoError(t, <-readerDone)

	free, err := slots.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.NotContains(t, free, nine)
	assert.Equal(t, []time.Time{nine.Add(30 * time.Minute)}, free)
}
