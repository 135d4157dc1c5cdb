package storage

import (
	"context"
	"testing"
	"time"

	"star-burger/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, time.Hour), server
}

func TestRedisCache_SetGetRoundTrip(t *testing.T) {
	cache, _ := newRedisCache(t)
	ctx := context.Background()

	key := cache.LocationKey("Moscow, Tverskaya 1")
	stored := domain.Coordinates{Lat: 55.755819, Lon: 37.617664}

	assert.NoError(t, cache.Set(ctx, key, stored))

	coords, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	if assert.NotNil(t, coords) {
		assert.Equal(t, stored, *coords)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := newRedisCache(t)

	coords, err := cache.Get(context.Background(), cache.LocationKey("never stored"))

	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	cache, server := newRedisCache(t)
	ctx := context.Background()

	key := cache.LocationKey("Moscow, Arbat 10")
	assert.NoError(t, cache.Set(ctx, key, domain.Coordinates{Lat: 55.749, Lon: 37.591}))

	server.FastForward(2 * time.Hour)

	coords, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestRedisCache_MalformedValue(t *testing.T) {
	cache, server := newRedisCache(t)

	key := cache.LocationKey("corrupted")
	server.Set(key, "not coordinates")

	coords, err := cache.Get(context.Background(), key)
	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestRedisCache_LocationKey(t *testing.T) {
	cache, _ := newRedisCache(t)
	assert.Equal(t, "location:Moscow, Tverskaya 1", cache.LocationKey("Moscow, Tverskaya 1"))
}
