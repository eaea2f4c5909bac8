// File: database/repository/event/crud.go
package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/models"
)

// Create inserts a new day document. The unique index on date turns a
// concurrent second insert for the same day into ErrDuplicateDate.
func (r *mongoEventRepo) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateDate
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *mongoEventRepo) GetByDate(ctx context.Context, date time.Time) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var event models.Event
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

// OccupySlot flips the slot starting at slotTime from available to occupied
// with a single positional update, so two allocations on the same day never
// overwrite each other.
func (r *mongoEventRepo) OccupySlot(ctx context.Context, date, slotTime time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"date": date,
		"slots": bson.M{"$elemMatch": bson.M{
			"time":   slotTime,
			"status": models.SlotAvailable,
		}},
	}
	update := bson.M{"$set": bson.M{"slots.$.status": models.SlotOccupied}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to occupy slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotAvailable
	}
	return nil
}
