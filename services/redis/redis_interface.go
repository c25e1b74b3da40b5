package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis_utils "Squadup/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client instance. addr is either a
// redis:// URL or a plain host:port.
func NewRedisClient(addr string, db int) (*RedisClient, error) {
	var opt *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: addr, DB: db}
	}
	return &RedisClient{client: redis.NewClient(opt)}, nil
}

// Fixed window counter. The expiry is set by the call that creates the key,
// inside the same script, so a counter never outlives its window.
var matchSearchScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// AllowMatchSearch counts one search for userID and reports whether it fits in
// limit searches per window.
// Key format: "match_search:{user_id}"
func (rc *RedisClient) AllowMatchSearch(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	key := redis_utils.FormatMatchSearchKey(userID)
	n, err := matchSearchScript.Run(ctx, rc.client, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("error counting match searches: %w", err)
	}
	return n <= int64(limit), nil
}

// ResetMatchSearch clears the search counter of userID.
func (rc *RedisClient) ResetMatchSearch(ctx context.Context, userID int64) error {
	return rc.CleanupKeys(ctx, []string{redis_utils.FormatMatchSearchKey(userID)})
}
