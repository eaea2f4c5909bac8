// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slotbook/config"

	"github.com/go-redis/redis/v8"
)

// FreeSlotsCachePrefix is the prefix of Redis keys holding a day's free slots.
const FreeSlotsCachePrefix = "freeslots:"

// freeSlotsVersionTTL must be far longer than one request.
const freeSlotsVersionTTL = 48 * time.Hour

// CacheClient is the Redis client backing the free-slot cache.
var CacheClient *redis.Client

// InitCache connects the Redis cache client using AppConfig.
func InitCache() error {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.Redis.Addr,
		Password: config.AppConfig.Redis.Password,
		DB:       config.AppConfig.Redis.CacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return nil
}

// GetCacheClient returns the cache client, or nil when caching is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// FreeSlotCache keeps the free slot times of a day in Redis as JSON. Each day
// also has a version counter that Invalidate bumps; a reader only stores what
// it loaded if the version it saw before loading is still current.
type FreeSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFreeSlotCache(client *redis.Client, ttl time.Duration) *FreeSlotCache {
	return &FreeSlotCache{client: client, ttl: ttl}
}

func freeSlotsKey(date time.Time) string {
	return FreeSlotsCachePrefix + date.UTC().Format("2006-01-02")
}

func freeSlotsVersionKey(date time.Time) string {
	return FreeSlotsCachePrefix + "ver:" + date.UTC().Format("2006-01-02")
}

// Get returns the cached free slots of date. The bool is false on a miss.
func (c *FreeSlotCache) Get(ctx context.Context, date time.Time) ([]time.Time, bool, error) {
	data, err := c.client.Get(ctx, freeSlotsKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read free slots cache: %w", err)
	}
	var times []time.Time
	if err := json.Unmarshal(data, &times); err != nil {
		return nil, false, fmt.Errorf("failed to decode free slots cache: %w", err)
	}
	return times, true, nil
}

// Version returns the current invalidation counter of date, 0 if never bumped.
func (c *FreeSlotCache) Version(ctx context.Context, date time.Time) (int64, error) {
	v, err := c.client.Get(ctx, freeSlotsVersionKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read free slots cache version: %w", err)
	}
	return v, nil
}

// Set stores times for date unless the day was invalidated after version was
// read. A stale write is dropped silently.
func (c *FreeSlotCache) Set(ctx context.Context, date time.Time, version int64, times []time.Time) error {
	data, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("failed to encode free slots: %w", err)
	}

	verKey := freeSlotsVersionKey(date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFreeSlots
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, freeSlotsKey(date), data, c.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil, errors.Is(err, errStaleFreeSlots), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("failed to write free slots cache: %w", err)
	}
}

// Invalidate bumps the version of date and drops its cached entry.
func (c *FreeSlotCache) Invalidate(ctx context.Context, date time.Time) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, freeSlotsVersionKey(date))
		pipe.Expire(ctx, freeSlotsVersionKey(date), freeSlotsVersionTTL)
		pipe.Del(ctx, freeSlotsKey(date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate free slots cache: %w", err)
	}
	return nil
}

var errStaleFreeSlots = errors.New("free slots changed while loading")
