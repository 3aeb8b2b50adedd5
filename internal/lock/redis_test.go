package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisTryLockReportsBackendFailure(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	locker := NewRedis(client, "finora-test:", 0)
	if locker.ttl != defaultRedisLockTTL {
		t.Fatalf("expected default ttl %s, got %s", defaultRedisLockTTL, locker.ttl)
	}

	release, err := locker.TryLock(context.Background(), "reconcile:user:1")
	if err == nil {
		release()
		t.Fatal("expected unreachable redis to fail")
	}
	if errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestConnectRedisFailsWhenUnreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := ConnectRedis(ctx, "127.0.0.1:1"); err == nil {
		t.Fatal("expected ConnectRedis to fail for unreachable address")
	}
}
