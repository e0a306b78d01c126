package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/zoobzio/clockz"

	"fieldroute/internal/model"
)

// RouteCache stores computed routes keyed by request fingerprint. Entries
// are a cache, not a source of truth: last writer wins, expiry is silent.
type RouteCache interface {
	Get(ctx context.Context, key string) (model.Route, bool)
	Put(ctx context.Context, key string, route model.Route)
}

// Fingerprint canonicalizes a request into a cache key: the sorted location
// id set plus the constraint signature (mode, avoid-traffic, max duration).
// Ids are quoted so separator characters inside an id cannot collide two
// different requests onto one key.
func Fingerprint(locations []model.Location, c model.Constraints) string {
	ids := make([]string, len(locations))
	for i, loc := range locations {
		ids[i] = strconv.Quote(loc.ID)
	}
	sort.Strings(ids)
	maxDur := int64(0)
	if c.MaxDuration != nil {
		maxDur = int64(c.MaxDuration.Seconds())
	}
	return fmt.Sprintf("%s|%s|%t|%d", strings.Join(ids, ","), c.Mode, c.AvoidTraffic, maxDur)
}

type cacheEntry struct {
	route model.Route
	at    time.Time
}

// MemoryCache is a mutex-guarded in-process cache with a TTL clock that can
// be faked in tests. Used when no REDIS_URL is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   clockz.Clock
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: map[string]cacheEntry{}, ttl: ttl}
}

// WithClock swaps the time source; returns the cache for chaining.
func (c *MemoryCache) WithClock(clock clockz.Clock) *MemoryCache {
	c.clock = clock
	return c
}

func (c *MemoryCache) now() time.Time {
	if c.clock != nil {
		return c.clock.Now()
	}
	return clockz.RealClock.Now()
}

func (c *MemoryCache) Get(_ context.Context, key string) (model.Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return model.Route{}, false
	}
	if c.now().Sub(e.at) > c.ttl {
		delete(c.entries, key)
		return model.Route{}, false
	}
	return e.route, true
}

func (c *MemoryCache) Put(_ context.Context, key string, route model.Route) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{route: route, at: c.now()}
	c.mu.Unlock()
}

// RedisCache shares computed routes across processes, leaning on server-side
// expiry for the TTL invariant.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{rdb: redis.NewClient(opt), ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (model.Route, bool) {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return model.Route{}, false
	}
	var route model.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return model.Route{}, false
	}
	return route, true
}

func (c *RedisCache) Put(ctx context.Context, key string, route model.Route) {
	data, err := json.Marshal(route)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *RedisCache) key(fingerprint string) string { return "route:" + fingerprint }
