// File: database/repository/event/interface.go
package eventRepo

import (
	"context"
	"errors"
	"time"

	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrEventNotFound is returned when no day document exists for a date.
	ErrEventNotFound = errors.New("event not found for date")
	// ErrDuplicateDate is returned when a day document already exists for a date.
	ErrDuplicateDate = errors.New("event already exists for date")
	// ErrSlotNotAvailable is returned when the conditional slot update matched
	// no available slot.
	ErrSlotNotAvailable = errors.New("slot not available")
)

// EventRepository stores one Event document per calendar day. Dates passed
// in are day keys (UTC midnight).
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByDate(ctx context.Context, date time.Time) (*models.Event, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Event, error)
	OccupySlot(ctx context.Context, date, slotTime time.Time) error
	EnsureIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// queryTimeout bounds every store call.
const queryTimeout = 5 * time.Second

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a MongoDB EventRepository over the named collection.
func NewMongoEventRepo(client *mongo.Client, dbName, collection string) EventRepository {
	return &mongoEventRepo{
		coll: client.Database(dbName).Collection(collection),
	}
}

func (r *mongoEventRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, nil)
}
