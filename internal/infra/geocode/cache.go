package geocode

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"partage/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geocode:"

// Cache is the bounded address-lookup store behind CachedGeocoder. The redis
// implementation bounds entries by TTL, the in-memory one by capacity.
type Cache interface {
	Get(ctx context.Context, address string) (shared.Coordinates, bool)
	Set(ctx context.Context, address string, coords shared.Coordinates)
}

// CachedGeocoder fronts a geocoder with a cache. Addresses repeat heavily
// across eligibility checks and the upstream API is rate-limited. Cache
// failures degrade to a direct lookup, never to a request failure.
type CachedGeocoder struct {
	inner shared.Geocoder
	cache Cache
}

func NewCachedGeocoder(inner shared.Geocoder, cache Cache) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache}
}

var _ shared.Geocoder = (*CachedGeocoder)(nil)

func (c *CachedGeocoder) Resolve(ctx context.Context, address string) (shared.Coordinates, error) {
	if coords, ok := c.cache.Get(ctx, address); ok {
		return coords, nil
	}

	coords, err := c.inner.Resolve(ctx, address)
	if err != nil {
		return shared.Coordinates{}, err
	}

	c.cache.Set(ctx, address, coords)
	return coords, nil
}

// RedisCache stores resolved coordinates in redis with a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

var _ Cache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, address string) (shared.Coordinates, bool) {
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+address).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("geocode cache read failed", "error", err.Error())
		}
		return shared.Coordinates{}, false
	}

	var coords shared.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return shared.Coordinates{}, false
	}
	return coords, true
}

func (c *RedisCache) Set(ctx context.Context, address string, coords shared.Coordinates) {
	raw, err := json.Marshal(coords)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+address, raw, c.ttl).Err(); err != nil {
		slog.Warn("geocode cache write failed", "error", err.Error())
	}
}
