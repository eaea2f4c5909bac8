package timeslot

import (
	"math"
	"testing"
	"time"

	"slotbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots_Count(t *testing.T) {
	day := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		cfg   EventConfig
		start time.Time
	}{
		{"one hour by 30", EventConfig{"09:00", "10:00", 30}, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC)},
		{"uneven tail", EventConfig{"09:00", "10:00", 25}, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC)},
		{"working day", EventConfig{"08:30", "17:00", 45}, time.Date(2030, 1, 16, 8, 30, 0, 0, time.UTC)},
		{"duration longer than window", EventConfig{"09:00", "09:10", 60}, time.Date(2030, 1, 16, 9, 0, 0, 0, time.UTC)},
		{"single minute slots", EventConfig{"23:00", "23:59", 1}, time.Date(2030, 1, 16, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(day, tt.cfg, time.UTC)
			require.NoError(t, err)

			start, _ := atClock(day, tt.cfg.StartHour, time.UTC)
			end, _ := atClock(day, tt.cfg.EndHour, time.UTC)
			want := int(math.Ceil(end.Sub(start).Minutes() / float64(tt.cfg.Duration)))

			assert.Len(t, slots, want)
			assert.True(t, slots[0].Time.Equal(tt.start), "first slot %v, want %v", slots[0].Time, tt.start)
			for i, s := range slots {
				assert.Equal(t, models.SlotAvailable, s.Status)
				assert.True(t, s.Time.Before(end))
				if i > 0 {
					assert.Equal(t, time.Duration(tt.cfg.Duration)*time.Minute, s.Time.Sub(slots[i-1].Time))
				}
			}
		})
	}
}

func TestGenerateSlots_StartNotBeforeEndYieldsOneSlot(t *testing.T) {
	day := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	for _, cfg := range []EventConfig{
		{"10:00", "10:00", 30},
		{"17:00", "09:00", 30},
	} {
		slots, err := GenerateSlots(day, cfg, time.UTC)
		require.NoError(t, err)
		require.Len(t, slots, 1, "config %+v", cfg)

		start, _ := atClock(day, cfg.StartHour, time.UTC)
		assert.True(t, slots[0].Time.Equal(start))
		assert.Equal(t, models.SlotAvailable, slots[0].Status)
	}
}

func TestGenerateSlots_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	day := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(day, EventConfig{"09:00", "10:00", 30}, loc)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, time.Date(2030, 1, 16, 7, 0, 0, 0, time.UTC), slots[0].Time)
	assert.Equal(t, time.UTC, slots[0].Time.Location())
	assert.Equal(t, 9, slots[0].Time.In(loc).Hour())
}

func TestGenerateSlots_InvalidConfig(t *testing.T) {
	day := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	for _, cfg := range []EventConfig{
		{"9am", "10:00", 30},
		{"09:00", "", 30},
		{"09:00", "10:00", 0},
		{"09:00", "10:00", -15},
	} {
		_, err := GenerateSlots(day, cfg, time.UTC)
		assert.Error(t, err, "config %+v", cfg)
	}
}

func TestNewDayEvent(t *testing.T) {
	day := time.Date(2030, 1, 16, 0, 0, 0, 0, time.UTC)

	event, err := NewDayEvent(day, EventConfig{"09:00", "10:00", 30}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, day, event.Date)
	assert.Equal(t, "09:00", event.StartTime)
	assert.Equal(t, "10:00", event.EndTime)
	assert.Len(t, event.Slots, 2)
}
