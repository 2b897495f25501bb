package celebration

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOnce uses SET NX so concurrent API instances agree on the first caller.
type RedisOnce struct {
	client *redis.Client
}

func NewRedisOnce(client *redis.Client) *RedisOnce {
	return &RedisOnce{client: client}
}

func (o *RedisOnce) Once(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return o.client.SetNX(ctx, key, 1, ttl).Result()
}

const memorySweepEvery = time.Minute

// MemoryOnce is the single-instance OnceStore. Expired keys are dropped at
// most once per memorySweepEvery.
type MemoryOnce struct {
	mu        sync.Mutex
	seen      map[string]time.Time
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryOnce() *MemoryOnce {
	return &MemoryOnce{seen: make(map[string]time.Time), now: time.Now}
}

func (o *MemoryOnce) Once(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.now()
	if !now.Before(o.nextSweep) {
		for k, exp := range o.seen {
			if !now.Before(exp) {
				delete(o.seen, k)
			}
		}
		o.nextSweep = now.Add(memorySweepEvery)
	}
	if exp, ok := o.seen[key]; ok && now.Before(exp) {
		return false, nil
	}
	o.seen[key] = now.Add(ttl)
	return true, nil
}
