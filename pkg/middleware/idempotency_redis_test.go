package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStore(client, ttl), mr
}

func TestRedisIdempotencyStore_RoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	resp := &CachedResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"success":true}`),
	}
	require.NoError(t, store.Set(ctx, "POST /api/v1/berths/resolve k1", resp))

	got, found, err := store.Get(ctx, "POST /api/v1/berths/resolve k1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, `{"success":true}`, string(got.Body))
	assert.Equal(t, "application/json", got.Headers.Get("Content-Type"))
}

func TestRedisIdempotencyStore_FirstWriterWins(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", &CachedResponse{StatusCode: http.StatusOK, Body: []byte("first")}))
	require.NoError(t, store.Set(ctx, "k", &CachedResponse{StatusCode: http.StatusOK, Body: []byte("second")}))

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", string(got.Body))
}

func TestRedisIdempotencyStore_Expires(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", &CachedResponse{StatusCode: http.StatusOK}))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisIdempotencyStore_UnavailableServer(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	_, _, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
}
