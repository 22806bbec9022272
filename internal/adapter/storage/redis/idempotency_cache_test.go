package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_GetMissing(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)

	val, err := cache.Get(context.Background(), "settle:cs_missing")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestIdempotencyCache_SetThenGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	payload := []byte(`{"transaction_id":"psp_txn_1","success":true}`)
	require.NoError(t, cache.Set(ctx, "settle:cs_1", payload, time.Hour))

	val, err := cache.Get(ctx, "settle:cs_1")
	require.NoError(t, err)
	assert.Equal(t, payload, val)
}

func TestIdempotencyCache_ExpiresWithTTL(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "settle:cs_2", []byte("x"), time.Second))
	s.FastForward(2 * time.Second)

	val, err := cache.Get(ctx, "settle:cs_2")
	require.NoError(t, err)
	assert.Nil(t, val)
}
