package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := NewClient(mr.Addr(), "")
	t.Cleanup(func() { rdb.Close() })

	return NewService(rdb), mr
}

func TestService_SetGet(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	ok := svc.Set(ctx, "greeting", "hello", time.Minute)
	require.True(t, ok)

	val, found := svc.Get(ctx, "greeting")
	require.True(t, found)
	assert.Equal(t, "hello", val)
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := setupCache(t)

	_, found := svc.Get(context.Background(), "nope")
	assert.False(t, found)
}

func TestService_SetExpires(t *testing.T) {
	svc, mr := setupCache(t)
	ctx := context.Background()

	svc.Set(ctx, "short", "lived", time.Second)
	mr.FastForward(2 * time.Second)

	_, found := svc.Get(ctx, "short")
	assert.False(t, found)
}

func TestService_DeleteAndExists(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	svc.Set(ctx, "key", "value", time.Minute)
	assert.True(t, svc.Exists(ctx, "key"))

	require.True(t, svc.Delete(ctx, "key"))
	assert.False(t, svc.Exists(ctx, "key"))
}

func TestService_Incr(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), svc.Incr(ctx, "counter"))
	assert.Equal(t, int64(2), svc.Incr(ctx, "counter"))
	assert.Equal(t, int64(3), svc.Incr(ctx, "counter"))
}

func TestService_Expire(t *testing.T) {
	svc, mr := setupCache(t)
	ctx := context.Background()

	svc.Incr(ctx, "window")
	require.True(t, svc.Expire(ctx, "window", 10))

	mr.FastForward(11 * time.Second)
	assert.False(t, svc.Exists(ctx, "window"))
}

func TestService_DeletePattern(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	svc.Set(ctx, "user:1", "a", time.Minute)
	svc.Set(ctx, "user:2", "b", time.Minute)
	svc.Set(ctx, "draft:1", "c", time.Minute)

	require.True(t, svc.DeletePattern(ctx, "user:"))

	assert.False(t, svc.Exists(ctx, "user:1"))
	assert.False(t, svc.Exists(ctx, "user:2"))
	assert.True(t, svc.Exists(ctx, "draft:1"))
}

func TestService_FailSoftWhenBackendDown(t *testing.T) {
	svc, mr := setupCache(t)
	ctx := context.Background()

	svc.Set(ctx, "key", "value", time.Minute)
	mr.Close()

	// Readers report a miss, writers report failure, nothing panics or
	// returns an error.
	_, found := svc.Get(ctx, "key")
	assert.False(t, found)
	assert.False(t, svc.Exists(ctx, "key"))
	assert.False(t, svc.Set(ctx, "key", "value", time.Minute))
	assert.False(t, svc.Delete(ctx, "key"))
	assert.Equal(t, int64(0), svc.Incr(ctx, "counter"))
	assert.False(t, svc.Expire(ctx, "key", 10))
	assert.False(t, svc.DeletePattern(ctx, "key"))
}
