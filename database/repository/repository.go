package repository

import (
	"fmt"

	eventRepo "slotbook/database/repository/event"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the EventRepository interface, its errors and constructors.
type EventRepository = eventRepo.EventRepository

var (
	ErrEventNotFound    = eventRepo.ErrEventNotFound
	ErrDuplicateDate    = eventRepo.ErrDuplicateDate
	ErrSlotNotAvailable = eventRepo.ErrSlotNotAvailable
)

var (
	NewMongoEventRepo  = eventRepo.NewMongoEventRepo
	NewMemoryEventRepo = eventRepo.NewMemoryEventRepo
)

// NewEventRepository picks the store for driver. client is only used by the
// "mongo" driver.
func NewEventRepository(driver string, client *mongo.Client, dbName, collection string) (EventRepository, error) {
	switch driver {
	case "memory":
		return NewMemoryEventRepo(), nil
	case "mongo":
		if client == nil {
			return nil, fmt.Errorf("mongo event repository requires a connected client")
		}
		return NewMongoEventRepo(client, dbName, collection), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
