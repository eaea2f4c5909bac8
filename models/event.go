package models

import "time"

// DateFormat is the wire format of calendar dates.
const DateFormat = "2006-01-02"

// Event is the per-day document holding every slot defined for that date.
// Exactly one exists per date.
type Event struct {
	ID        string    `bson:"id" json:"-"`
	Date      time.Time `bson:"date" json:"date"`             // UTC midnight of the calendar day
	StartTime string    `bson:"start_time" json:"start_time"` // business-hour start used at creation, e.g. "09:00"
	EndTime   string    `bson:"end_time" json:"end_time"`     // business-hour end used at creation, e.g. "17:00"
	Slots     []Slot    `bson:"slots" json:"slots"`           // chronological
	CreatedAt time.Time `bson:"created_at" json:"-"`
}

// FindSlot returns the index of the slot starting at t, compared at whole
// second precision, or -1.
func (e *Event) FindSlot(t time.Time) int {
	want := t.Truncate(time.Second)
	for i, s := range e.Slots {
		if s.Time.Truncate(time.Second).Equal(want) {
			return i
		}
	}
	return -1
}

// FreeSlotTimes lists the start times of the slots still available, in order.
func (e *Event) FreeSlotTimes() []time.Time {
	free := make([]time.Time, 0, len(e.Slots))
	for _, s := range e.Slots {
		if s.IsAvailable() {
			free = append(free, s.Time)
		}
	}
	return free
}

// EventDTO is the public view of a day document returned by listings.
type EventDTO struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// TimeSlotsDTO is returned after creating a day's slots.
type TimeSlotsDTO struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Slots     []Slot `json:"slots"`
}

// ToDTO renders the listing view of the document.
func (e *Event) ToDTO() EventDTO {
	slots := make([]Slot, len(e.Slots))
	copy(slots, e.Slots)
	return EventDTO{Date: e.Date.UTC().Format(DateFormat), Slots: slots}
}

// ToTimeSlotsDTO renders the creation view of the document.
func (e *Event) ToTimeSlotsDTO() TimeSlotsDTO {
	slots := make([]Slot, len(e.Slots))
	copy(slots, e.Slots)
	return TimeSlotsDTO{
		Date:      e.Date.UTC().Format(DateFormat),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Slots:     slots,
	}
}
