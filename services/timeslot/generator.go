package timeslot

import (
	"fmt"
	"time"

	"slotbook/models"
)

const clockFormat = "15:04"

// EventConfig is the business-hour window and slot length of a generated day.
type EventConfig struct {
	StartHour string // "HH:MM"
	EndHour   string // "HH:MM"
	Duration  int    // minutes
}

func (c EventConfig) Validate() error {
	if _, err := time.Parse(clockFormat, c.StartHour); err != nil {
		return fmt.Errorf("invalid start hour %q: %w", c.StartHour, err)
	}
	if _, err := time.Parse(clockFormat, c.EndHour); err != nil {
		return fmt.Errorf("invalid end hour %q: %w", c.EndHour, err)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("slot duration must be positive, got %d", c.Duration)
	}
	return nil
}

// atClock returns the instant of the "HH:MM" clock on day in loc.
func atClock(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	hm, err := time.Parse(clockFormat, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

// GenerateSlots lays out the slots of day: the first starts at StartHour and
// each next one Duration minutes later, while the start is before EndHour.
// The first slot is always emitted, even when StartHour is not before EndHour.
// Slot times are returned in UTC.
func GenerateSlots(day time.Time, cfg EventConfig, loc *time.Location) ([]models.Slot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	start, err := atClock(day, cfg.StartHour, loc)
	if err != nil {
		return nil, err
	}
	end, err := atClock(day, cfg.EndHour, loc)
	if err != nil {
		return nil, err
	}
	step := time.Duration(cfg.Duration) * time.Minute

	var slots []models.Slot
	t := start
	for {
		slots = append(slots, models.Slot{Time: t.UTC(), Status: models.SlotAvailable})
		t = t.Add(step)
		if !t.Before(end) {
			break
		}
	}
	return slots, nil
}

// NewDayEvent builds the unsaved document for day with all slots available.
func NewDayEvent(day time.Time, cfg EventConfig, loc *time.Location) (*models.Event, error) {
	slots, err := GenerateSlots(day, cfg, loc)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Date:      day,
		StartTime: cfg.StartHour,
		EndTime:   cfg.EndHour,
		Slots:     slots,
	}, nil
}
