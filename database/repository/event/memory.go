// File: database/repository/event/memory.go
package eventRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"slotbook/models"
)

// memoryEventRepo keeps day documents in process memory. Each call holds the
// lock for its whole read-modify-write, giving the same per-document
// atomicity as MongoDB. Backs the "memory" database driver and the tests.
type memoryEventRepo struct {
	mu     sync.Mutex
	events map[time.Time]models.Event
}

// NewMemoryEventRepo constructs an empty in-memory EventRepository.
func NewMemoryEventRepo() EventRepository {
	return &memoryEventRepo{events: make(map[time.Time]models.Event)}
}

func cloneEvent(e models.Event) models.Event {
	out := e
	out.Slots = make([]models.Slot, len(e.Slots))
	copy(out.Slots, e.Slots)
	return out
}

func (r *memoryEventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := event.Date.UTC()
	if _, exists := r.events[key]; exists {
		return ErrDuplicateDate
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	r.events[key] = cloneEvent(*event)
	return nil
}

func (r *memoryEventRepo) GetByDate(_ context.Context, date time.Time) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[date.UTC()]
	if !ok {
		return nil, ErrEventNotFound
	}
	out := cloneEvent(event)
	return &out, nil
}

func (r *memoryEventRepo) ExistsForDate(_ context.Context, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.events[date.UTC()]
	return ok, nil
}

func (r *memoryEventRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []models.Event
	for date, event := range r.events {
		if date.Before(start) || date.After(end) {
			continue
		}
		events = append(events, cloneEvent(event))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (r *memoryEventRepo) OccupySlot(_ context.Context, date, slotTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[date.UTC()]
	if !ok {
		return ErrSlotNotAvailable
	}
	for i, s := range event.Slots {
		if s.Time.Equal(slotTime) && s.IsAvailable() {
			event.Slots[i].Status = models.SlotOccupied
			return nil
		}
	}
	return ErrSlotNotAvailable
}

func (r *memoryEventRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memoryEventRepo) Ping(context.Context) error { return nil }
