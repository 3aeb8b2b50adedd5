package lock

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still carries our token, so an
// expired lock that was re-acquired by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every process talking to the same Redis server.
// Locks expire after ttl if the holder never releases them.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultRedisLockTTL
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// ConnectRedis dials addr and verifies the connection with PING.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (locker *Redis) TryLock(ctx context.Context, key string) (func(), error) {
	fullKey := locker.prefix + key
	token := uuid.NewString()

	acquired, err := locker.client.SetNX(ctx, fullKey, token, locker.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", fullKey, err)
	}
	if !acquired {
		return nil, ErrNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, locker.client, []string{fullKey}, token).Err(); err != nil {
				log.Printf("lock: release %s failed: %v", fullKey, err)
			}
		})
	}, nil
}
