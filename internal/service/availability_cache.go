package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vetclinic-booking/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	availabilityKeyPrefix = "availability:"

	// Cached day views go stale the moment a booking lands, so the TTL is
	// only a backstop; explicit invalidation does the real work.
	availabilityTTL = 5 * time.Minute
)

// AvailabilityCache keeps computed day availability views in Redis so that
// repeated browsing of the same branch/day does not recompute the grid for
// every doctor. Entries are invalidated whenever a booking is created or
// cancelled and whenever a doctor's schedule changes.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
	}
}

func availabilityKey(branchID int, date string, durationMinutes int) string {
	return fmt.Sprintf("%s%d:%s:%d", availabilityKeyPrefix, branchID, date, durationMinutes)
}

// Get returns the cached day view, or nil on a miss. Cache errors are
// logged and treated as misses so Redis outages never break browsing.
func (c *AvailabilityCache) Get(ctx context.Context, branchID int, date string, durationMinutes int) *dto.DayAvailabilityResponse {
	raw, err := c.redisClient.Get(ctx, availabilityKey(branchID, date, durationMinutes)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read availability cache: %+v", err)
		}
		return nil
	}

	var cached dto.DayAvailabilityResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.log.Warnf("Failed to decode cached availability: %+v", err)
		return nil
	}
	return &cached
}

// Set stores a computed day view. Failures are logged and ignored.
func (c *AvailabilityCache) Set(ctx context.Context, view *dto.DayAvailabilityResponse) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.log.Warnf("Failed to encode availability for cache: %+v", err)
		return
	}

	key := availabilityKey(view.BranchID, view.Date, view.DurationMinutes)
	if err := c.redisClient.Set(ctx, key, raw, availabilityTTL).Err(); err != nil {
		c.log.Warnf("Failed to write availability cache: %+v", err)
	}
}

// InvalidateDay drops every cached view of the branch/day, regardless of
// visit duration.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, branchID int, date string) {
	c.invalidatePattern(ctx, fmt.Sprintf("%s%d:%s:*", availabilityKeyPrefix, branchID, date))
}

// InvalidateBranch drops every cached view of the branch. Used when a
// doctor's weekly schedule changes, which affects all future days.
func (c *AvailabilityCache) InvalidateBranch(ctx context.Context, branchID int) {
	c.invalidatePattern(ctx, fmt.Sprintf("%s%d:*", availabilityKeyPrefix, branchID))
}

// invalidatePattern walks matching keys with SCAN, so invalidation never
// blocks the Redis server the way KEYS would on a large keyspace.
func (c *AvailabilityCache) invalidatePattern(ctx context.Context, pattern string) {
	iter := c.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warnf("Failed to invalidate availability cache: %+v", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan availability cache keys: %+v", err)
	}
}
