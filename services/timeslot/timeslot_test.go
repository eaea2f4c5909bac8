package timeslot

import (
	"context"
	"errors"
	"testing"
	"time"

	eventRepo "slotbook/database/repository/event"
	"slotbook/models"
	"slotbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC)

type fakeCache struct {
	entries  map[time.Time][]time.Time
	versions map[time.Time]int64
	gets     int
	sets     int
	dropped  []time.Time
	failGet  bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:  make(map[time.Time][]time.Time),
		versions: make(map[time.Time]int64),
	}
}

func (c *fakeCache) Get(_ context.Context, date time.Time) ([]time.Time, bool, error) {
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	times, ok := c.entries[date]
	return times, ok, nil
}

func (c *fakeCache) Version(_ context.Context, date time.Time) (int64, error) {
	return c.versions[date], nil
}

func (c *fakeCache) Set(_ context.Context, date time.Time, version int64, times []time.Time) error {
	if c.versions[date] != version {
		return nil
	}
	c.sets++
	c.entries[date] = times
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, date time.Time) error {
	c.dropped = append(c.dropped, date)
	c.versions[date]++
	delete(c.entries, date)
	return nil
}

// invalidatingRepo bumps the cache version right after the day is loaded,
// as an allocation finishing mid-read would.
type invalidatingRepo struct {
	eventRepo.EventRepository
	cache *fakeCache
}

func (r invalidatingRepo) GetByDate(ctx context.Context, date time.Time) (*models.Event, error) {
	event, err := r.EventRepository.GetByDate(ctx, date)
	_ = r.cache.Invalidate(ctx, date)
	return event, err
}

func newTestService(t *testing.T, cache SlotCache) (*DefaultTimeSlotService, eventRepo.EventRepository) {
	t.Helper()
	repo := eventRepo.NewMemoryEventRepo()
	svc, err := NewDefaultTimeSlotService(repo, EventConfig{"09:00", "10:00", 30}, time.UTC, cache, nil, zap.NewNop())
	require.NoError(t, err)
	svc.Now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestNewDefaultTimeSlotService_Validation(t *testing.T) {
	_, err := NewDefaultTimeSlotService(nil, EventConfig{"09:00", "10:00", 30}, time.UTC, nil, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewDefaultTimeSlotService(eventRepo.NewMemoryEventRepo(), EventConfig{"09:00", "10:00", 0}, time.UTC, nil, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestCreateTimeSlots(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	event, err := svc.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	require.Len(t, event.Slots, 2)
	assert.Equal(t, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC), event.Slots[0].Time)
	assert.Equal(t, time.Date(2030, 1, 16, 9, 30, 0, 0, time.UTC), event.Slots[1].Time)
	for _, s := range event.Slots {
		assert.Equal(t, models.SlotAvailable, s.Status)
	}

	stored, err := repo.GetByDate(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, event.Slots, stored.Slots)
}

func TestCreateTimeSlots_TodayIsAllowed(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.CreateTimeSlots(context.Background(), utils.DateKey(fixedNow, time.UTC))
	assert.NoError(t, err)
}

func TestCreateTimeSlots_PastDate(t *testing.T) {
	svc, repo := newTestService(t, nil)
	yesterday := time.Date(2030, 1, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(context.Background(), yesterday)
	require.Error(t, err)

	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.KindValidation, appErr.Kind)
	assert.Equal(t, msgCreateTimeSlotsFailed, appErr.Message)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "INVALID_TIME_SLOT_DATE", appErr.Details[0].Code)
	assert.Equal(t, msgTimeSlotDateInPast, appErr.Details[0].Message)
	assert.Equal(t, []string{"time_slot_date"}, appErr.Details[0].Path)

	exists, err := repo.ExistsForDate(context.Background(), yesterday)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateTimeSlots_AlreadyCreated(t *testing.T) {
	svc, _ := newTestService(t, nil)
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(context.Background(), tomorrow)
	require.NoError(t, err)

	_, err = svc.CreateTimeSlots(context.Background(), tomorrow)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	appErr, _ := utils.AsAppError(err)
	assert.Equal(t, msgDayAlreadyCreated, appErr.Message)
}

func TestListFreeTimeSlots(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	require.NoError(t, repo.OccupySlot(ctx, tomorrow, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC)))

	free, err := svc.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{time.Date(2030, 1, 16, 9, 30, 0, 0, time.UTC)}, free)
}

func TestListFreeTimeSlots_NoDocument(t *testing.T) {
	svc, _ := newTestService(t, nil)

	free, err := svc.ListFreeTimeSlots(context.Background(), time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, free)
	assert.Empty(t, free)
}

func TestListFreeTimeSlots_PastDateIsNotRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)

	free, err := svc.ListFreeTimeSlots(context.Background(), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestListFreeTimeSlots_Cache(t *testing.T) {
	cache := newFakeCache()
	svc, _ := newTestService(t, cache)
	ctx := context.Background()
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{tomorrow}, cache.dropped)

	first, err := svc.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, cache.sets)

	cache.entries[tomorrow] = []time.Time{first[1]}
	second, err := svc.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{first[1]}, second, "served from cache")
	assert.Equal(t, 1, cache.sets)
}

func TestListFreeTimeSlots_CacheFailureFallsThrough(t *testing.T) {
	cache := newFakeCache()
	cache.failGet = true
	svc, _ := newTestService(t, cache)
	ctx := context.Background()
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)

	free, err := svc.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestListFreeTimeSlots_InvalidatedWhileLoadingIsNotCached(t *testing.T) {
	cache := newFakeCache()
	svc, repo := newTestService(t, cache)
	ctx := context.Background()
	tomorrow := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateTimeSlots(ctx, tomorrow)
	require.NoError(t, err)

	svc.Repo = invalidatingRepo{EventRepository: repo, cache: cache}
	free, err := svc.ListFreeTimeSlots(ctx, tomorrow)
	require.NoError(t, err)
	assert.Len(t, free, 2)

	assert.Zero(t, cache.sets)
	assert.NotContains(t, cache.entries, tomorrow)
}
