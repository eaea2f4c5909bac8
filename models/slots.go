package models

import "time"

// SlotStatus is the booking state of a single slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

// Slot is a fixed-duration bookable unit embedded in a day's Event document.
type Slot struct {
	Time   time.Time  `bson:"time" json:"time"`     // exact start of the slot
	Status SlotStatus `bson:"status" json:"status"` // "available" or "occupied"
}

// IsAvailable reports whether the slot can still be allocated.
func (s Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// AllocatedSlot is returned when a slot is claimed for an event.
type AllocatedSlot struct {
	Status SlotStatus `json:"status"`
	Time   time.Time  `json:"time"`
}
