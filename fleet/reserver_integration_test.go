//go:build integration

package fleet

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisReserver(t *testing.T) *RedisReserver {
	t.Helper()

	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, client.Ping(context.Background()).Err())

	prefix := "fleet-test:" + uuid.NewString()[:8]
	t.Cleanup(func() {
		ctx := context.Background()
		if keys, err := client.Keys(ctx, prefix+":*").Result(); err == nil && len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return NewRedisReserver(client, prefix, time.Minute)
}

func TestRedisReserverSingleWinner(t *testing.T) {
	r := redisReserver(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(reportID string) {
			defer wg.Done()
			ok, err := r.Reserve(ctx, "SP-WT-01", reportID)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				winners = append(winners, reportID)
				mu.Unlock()
			}
		}(uuid.NewString())
	}
	wg.Wait()

	require.Len(t, winners, 1)
	holder, err := r.Holder(ctx, "SP-WT-01")
	require.NoError(t, err)
	assert.Equal(t, winners[0], holder)

	ok, err := r.Reserve(ctx, "SP-WT-01", winners[0])
	require.NoError(t, err)
	assert.True(t, ok, "holder re-reserving is idempotent")

	require.NoError(t, r.Release(ctx, "SP-WT-01"))
	holder, err = r.Holder(ctx, "SP-WT-01")
	require.NoError(t, err)
	assert.Empty(t, holder)
}
