package service

import (
	"context"
	"io"
	"testing"

	"vetclinic-booking/internal/delivery/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheUnderTest(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewAvailabilityCache(client, log), mr
}

func dayView(branchID int, date string, durationMinutes int) *dto.DayAvailabilityResponse {
	return &dto.DayAvailabilityResponse{
		BranchID:        branchID,
		Date:            date,
		DurationMinutes: durationMinutes,
		Slots: []dto.SlotResponse{
			{Time: "08:00", StartMinute: 480, Available: true},
			{Time: "08:20", StartMinute: 500, Available: false},
		},
	}
}

func TestAvailabilityCache_RoundTrip(t *testing.T) {
	cache, _ := newCacheUnderTest(t)
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 20), "cold cache misses")

	view := dayView(1, "2026-01-05", 20)
	cache.Set(ctx, view)

	cached := cache.Get(ctx, 1, "2026-01-05", 20)
	require.NotNil(t, cached)
	assert.Equal(t, view, cached)

	// Different duration means a different grid walk, so a separate entry.
	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 30))
}

func TestAvailabilityCache_InvalidateDay(t *testing.T) {
	cache, _ := newCacheUnderTest(t)
	ctx := context.Background()

	cache.Set(ctx, dayView(1, "2026-01-05", 20))
	cache.Set(ctx, dayView(1, "2026-01-05", 120))
	cache.Set(ctx, dayView(1, "2026-01-06", 20))
	cache.Set(ctx, dayView(2, "2026-01-05", 20))

	cache.InvalidateDay(ctx, 1, "2026-01-05")

	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 20), "every duration of the day is dropped")
	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 120))
	assert.NotNil(t, cache.Get(ctx, 1, "2026-01-06", 20), "other days survive")
	assert.NotNil(t, cache.Get(ctx, 2, "2026-01-05", 20), "other branches survive")
}

func TestAvailabilityCache_InvalidateBranch(t *testing.T) {
	cache, _ := newCacheUnderTest(t)
	ctx := context.Background()

	cache.Set(ctx, dayView(1, "2026-01-05", 20))
	cache.Set(ctx, dayView(1, "2026-01-06", 20))
	cache.Set(ctx, dayView(2, "2026-01-05", 20))

	cache.InvalidateBranch(ctx, 1)

	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 20))
	assert.Nil(t, cache.Get(ctx, 1, "2026-01-06", 20))
	assert.NotNil(t, cache.Get(ctx, 2, "2026-01-05", 20))
}

func TestAvailabilityCache_EntriesExpire(t *testing.T) {
	cache, mr := newCacheUnderTest(t)
	ctx := context.Background()

	cache.Set(ctx, dayView(1, "2026-01-05", 20))
	require.NotNil(t, cache.Get(ctx, 1, "2026-01-05", 20))

	mr.FastForward(availabilityTTL)

	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 20), "the TTL backstop kicks in")
}

func TestAvailabilityCache_RedisDownIsAMiss(t *testing.T) {
	cache, mr := newCacheUnderTest(t)
	ctx := context.Background()

	cache.Set(ctx, dayView(1, "2026-01-05", 20))
	mr.Close()

	assert.Nil(t, cache.Get(ctx, 1, "2026-01-05", 20), "outage degrades to recomputation")
	cache.Set(ctx, dayView(1, "2026-01-06", 20))
	cache.InvalidateDay(ctx, 1, "2026-01-05")
}
