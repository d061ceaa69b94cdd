// Package viewcache holds cached view fragments in Redis, keyed by a
// logical view path plus a version counter. Invalidation bumps the version
// so stale fragments simply stop being addressed; nothing is recomputed
// until the next read.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ProfilePath is the logical path for the profile view. Category
	// mutations invalidate this path.
	ProfilePath = "/profile"

	versionKeyPrefix  = "viewcache:version:"
	fragmentKeyPrefix = "viewcache:fragment:"
	// InvalidationChannel carries version bump notifications.
	InvalidationChannel = "viewcache.invalidate"
)

// Cache wraps Redis based view caching with per-path versioning.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New instantiates the cache helper.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current version for a view path, initialising when missing.
func (c *Cache) Version(ctx context.Context, path string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	key := versionKeyPrefix + path
	ver, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, key, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Fetch loads a cached fragment for the path or populates it using the
// loader. The key is versioned, so a bumped path never serves old data.
func (c *Cache) Fetch(ctx context.Context, path, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("viewcache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	ver, err := c.Version(ctx, path)
	if err != nil {
		return err
	}
	fullKey := fmt.Sprintf("%s%s:%d:%s", fragmentKeyPrefix, path, ver, key)
	payload, err := c.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, fullKey, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate bumps the path version and publishes a notification. Callers
// treat this as fire-and-forget: the returned error is for logging only and
// must never fail the mutation that triggered it.
func (c *Cache) Invalidate(ctx context.Context, path string) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKeyPrefix+path).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, InvalidationChannel, path+":"+strconv.FormatInt(ver, 10)).Err()
}
