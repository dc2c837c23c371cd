package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	defaultTTL     = 10 * time.Second
	defaultMaxWait = 5 * time.Second
	retryEvery     = 50 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is an advisory lock shared by every instance.
type RedisLocker struct {
	rdb     redis.UniversalClient
	prefix  string
	ttl     time.Duration
	maxWait time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		rdb:     rdb,
		prefix:  "lock:",
		ttl:     defaultTTL,
		maxWait: defaultMaxWait,
	}
}

// Dial parses a redis:// URL and checks the connection.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	ticker := time.NewTicker(retryEvery)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("acquire %s: %w", fullKey, err)
		}
		if ok {
			return func() {
				rctx, rcancel := context.WithTimeout(context.Background(), time.Second)
				defer rcancel()
				if err := releaseScript.Run(rctx, l.rdb, []string{fullKey}, token).Err(); err != nil {
					slog.Warn("lock release failed", "key", fullKey, "error", err)
				}
			}, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ErrLockTimeout
		}
	}
}

var _ Locker = (*RedisLocker)(nil)
