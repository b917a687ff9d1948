package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NutriLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NutriLens/pkg/errors"
)

var (
	// ErrCacheMiss is returned by Get when the key is absent.
	ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

	// ErrNegativeEntry is returned when the key holds the negative sentinel,
	// meaning an earlier load established that the value does not exist.
	ErrNegativeEntry = errors.New(errors.ErrCodeNotFound, "negative cache entry")

	// ErrSerializationFailed is returned when a value cannot be encoded.
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "cache serialization failed")
)

// nullSentinel marks keys whose upstream load returned not-found, so repeated
// lookups of a nonexistent barcode do not hammer the upstream.
const nullSentinel = "__null__"

// Cache is the response-cache contract used by the product lookup path.
// Values are JSON-serialized; keys are namespaced with a configurable prefix.
type Cache interface {
	// Get unmarshals the value stored at key into dest.  Returns ErrCacheMiss
	// when absent and ErrNegativeEntry when the key is negatively cached.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value at key.  A ttl of 0 applies the cache's default; the
	// effective TTL is jittered to avoid synchronized expiry storms.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.  Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Exists reports whether key is present (including negative entries).
	Exists(ctx context.Context, key string) (bool, error)

	// GetOrSet returns the cached value at key, or invokes loader to produce
	// it, stores the result, and collapses concurrent loads of the same key.
	// Not-found loader errors are negatively cached.  Cache transport failures
	// degrade to a direct loader call and are never returned to the caller.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error

	// Ping checks cache connectivity.
	Ping(ctx context.Context) error
}

// Serializer encodes cached values.  JSON is the default; an alternative can
// be injected for tests or denser encodings.
type Serializer interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonSerializer struct{}

func (jsonSerializer) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonSerializer) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

type redisCache struct {
	client       *Client
	logger       logging.Logger
	metrics      *prometheus.AppMetrics
	metricsName  string
	prefix       string
	defaultTTL   time.Duration
	nullCacheTTL time.Duration
	serializer   Serializer
	jitter       func(time.Duration) time.Duration
	group        singleflight.Group
}

// CacheOption customizes a Cache built by NewRedisCache.
type CacheOption func(*redisCache)

// WithPrefix sets the key namespace prepended to every key.
func WithPrefix(prefix string) CacheOption {
	return func(c *redisCache) { c.prefix = prefix }
}

// WithDefaultTTL sets the TTL applied when Set or GetOrSet receive ttl == 0.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *redisCache) { c.defaultTTL = ttl }
}

// WithNullCacheTTL sets the retention of negative entries.  Kept short so a
// product that appears upstream becomes visible quickly.
func WithNullCacheTTL(ttl time.Duration) CacheOption {
	return func(c *redisCache) { c.nullCacheTTL = ttl }
}

// WithSerializer replaces the JSON serializer.
func WithSerializer(s Serializer) CacheOption {
	return func(c *redisCache) { c.serializer = s }
}

// WithMetrics enables hit/miss counters under the given cache name.
func WithMetrics(m *prometheus.AppMetrics, name string) CacheOption {
	return func(c *redisCache) {
		c.metrics = m
		c.metricsName = name
	}
}

// NewRedisCache builds a Cache on top of an established Client.
func NewRedisCache(client *Client, log logging.Logger, opts ...CacheOption) Cache {
	c := &redisCache{
		client:       client,
		logger:       log,
		prefix:       "nutrilens:",
		defaultTTL:   15 * time.Minute,
		nullCacheTTL: time.Hour,
		serializer:   jsonSerializer{},
		jitter:       jitterTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expiry by ±10% so entries written together do not all
// expire in the same instant.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) recordAccess(hit bool) {
	if c.metrics != nil {
		prometheus.RecordCacheAccess(c.metrics, c.metricsName, hit)
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		c.recordAccess(false)
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache get failed")
	}
	if string(data) == nullSentinel {
		c.recordAccess(true)
		return ErrNegativeEntry
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err).WithDetail("key=" + key)
	}
	c.recordAccess(true)
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return ErrSerializationFailed.WithCause(err).WithDetail("key=" + key)
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.jitter(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache set failed")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, fullKeys...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache delete failed")
	}
	return nil
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.fullKey(key)).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCacheError, "cache exists failed")
	}
	return n > 0, nil
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	switch {
	case err == nil:
		return nil
	case err == ErrNegativeEntry:
		// The upstream said not-found recently; don't ask again yet.
		return err
	case err != ErrCacheMiss:
		// Transport or serialization trouble.  The cache is an accelerator,
		// not a dependency, so fall through to a direct load.
		c.logger.Warn("cache read failed, loading directly",
			logging.String("key", key),
			logging.Err(err),
		)
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return loadErr
		}
		return c.assign(v, dest)
	}

	// Single flight collapses a stampede of identical lookups into one
	// upstream call; every waiter shares the result.
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			if errors.IsNotFound(loadErr) {
				if setErr := c.client.Set(ctx, c.fullKey(key), nullSentinel, c.jitter(c.nullCacheTTL)).Err(); setErr != nil {
					c.logger.Warn("negative cache write failed",
						logging.String("key", key),
						logging.Err(setErr),
					)
				}
			}
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache write failed",
				logging.String("key", key),
				logging.Err(setErr),
			)
		}
		return v, nil
	})
	if err != nil {
		return err
	}
	return c.assign(val, dest)
}

// assign copies a loader result into the caller's destination via the
// serializer, mirroring how a cache hit would arrive.
func (c *redisCache) assign(val, dest interface{}) error {
	data, err := c.serializer.Marshal(val)
	if err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed.WithCause(err)
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}
