package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"star-burger/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the hot layer in front of the locations table. Values hold
// "lat lon" and expire so stale entries eventually re-read the table.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) LocationKey(address string) string {
	return "location:" + address
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.Coordinates, error) {
	value, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parts := strings.Fields(value)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cached location %q", value)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, coords domain.Coordinates) error {
	value := strconv.FormatFloat(coords.Lat, 'f', -1, 64) + " " + strconv.FormatFloat(coords.Lon, 'f', -1, 64)
	return c.Client.Set(ctx, key, value, c.TTL).Err()
}
