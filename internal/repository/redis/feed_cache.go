package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FeedKey      = "feed:posts"
	FeedLockKey  = "lock:feed:posts"
	FeedLockTTL  = 300 * time.Millisecond
	DefaultDelay = 500 * time.Millisecond
)

// FeedCache stores the rendered post feed as one JSON blob.
type FeedCache struct {
	RDB *redis.Client
	TTL time.Duration
}

// Get returns the cached feed and whether it was present.
func (c *FeedCache) Get(ctx context.Context) ([]byte, bool, error) {
	b, err := c.RDB.Get(ctx, FeedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *FeedCache) Set(ctx context.Context, feed []byte) error {
	return c.RDB.Set(ctx, FeedKey, feed, c.TTL).Err()
}

// Invalidate drops the feed now and, when delay > 0, once more after delay
// so a rebuild that read stale rows before the write cannot stick.
func (c *FeedCache) Invalidate(ctx context.Context, delay time.Duration) error {
	if err := c.RDB.Del(ctx, FeedKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if delay > 0 {
		go func() {
			t := time.NewTimer(delay)
			defer t.Stop()
			<-t.C
			_ = c.RDB.Del(context.Background(), FeedKey).Err()
		}()
	}
	return nil
}

// Acquire takes the rebuild lock for token.
func (c *FeedCache) Acquire(ctx context.Context, token string) (bool, error) {
	return c.RDB.SetNX(ctx, FeedLockKey, token, FeedLockTTL).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// Release drops the lock only if token still owns it.
func (c *FeedCache) Release(ctx context.Context, token string) error {
	return releaseScript.Run(ctx, c.RDB, []string{FeedLockKey}, token).Err()
}
