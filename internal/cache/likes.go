package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/desertthunder/mixtape/internal/shared"
)

// likesKeyPrefix namespaces the per-user liked-song entries in Redis.
const likesKeyPrefix = "user_likes:"

// Commander is the subset of redis commands the likes cache uses.
// *redis.Client satisfies it; tests substitute a fake.
type Commander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// LikesCache is the distributed write-behind tier for users' liked-song ID
// lists. Entries are only ever populated asynchronously by the background
// refresh task after a suggestion request; the read path treats any cache
// failure as a miss and falls back to the persistent store.
type LikesCache struct {
	client Commander
	ttl    time.Duration
}

// NewLikesCache creates a LikesCache over the given client with the given
// entry time-to-live. A non-positive ttl defaults to one hour.
func NewLikesCache(client Commander, ttl time.Duration) *LikesCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LikesCache{client: client, ttl: ttl}
}

// NewRedisClient connects to the Redis instance at addr and verifies the
// connection with a ping.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}
	return client, nil
}

// Key returns the cache key for a user's liked-song list.
func Key(userIdentifier string) string {
	return likesKeyPrefix + userIdentifier
}

// StoreLikedIDs serializes the user's liked video IDs into the cache with
// the configured TTL. Later writes for the same user overwrite earlier ones;
// last write wins.
func (c *LikesCache) StoreLikedIDs(ctx context.Context, userIdentifier string, videoIDs []string) error {
	if videoIDs == nil {
		videoIDs = []string{}
	}

	payload, err := json.Marshal(videoIDs)
	if err != nil {
		return fmt.Errorf("failed to serialize liked IDs: %w", err)
	}

	if err := c.client.Set(ctx, Key(userIdentifier), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}

	return nil
}

// FetchLikedIDs reads the user's cached liked video IDs.
//
// The boolean reports a cache hit. An absent entry is (nil, false, nil);
// transport failures and corrupt payloads also read as misses but return the
// error for logging. Callers must fall back to the persistent store on any
// miss.
func (c *LikesCache) FetchLikedIDs(ctx context.Context, userIdentifier string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, Key(userIdentifier)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", shared.ErrCacheUnavailable, err)
	}

	var videoIDs []string
	if err := json.Unmarshal([]byte(raw), &videoIDs); err != nil {
		return nil, false, fmt.Errorf("%w: corrupt entry: %v", shared.ErrCacheUnavailable, err)
	}

	return videoIDs, true, nil
}
