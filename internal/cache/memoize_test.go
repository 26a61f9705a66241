package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_StableForIdenticalArgs(t *testing.T) {
	a := Key("drafts", true, "user-1", 10, 20)
	b := Key("drafts", true, "user-1", 10, 20)
	assert.Equal(t, a, b)
}

func TestKey_DivergesForDifferentArgs(t *testing.T) {
	a := Key("drafts", true, "user-1", 10, 20)
	b := Key("drafts", true, "user-1", 10, 30)
	assert.NotEqual(t, a, b)
}

func TestKey_HashHidesArguments(t *testing.T) {
	hashed := Key("user", true, "alice@example.com")
	assert.NotContains(t, hashed, "alice")

	plain := Key("user", false, "alice@example.com")
	assert.Equal(t, "user:alice@example.com", plain)
}

func TestGetOrCompute_MissThenHit(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() (string, error) {
		calls++
		return "computed", nil
	}

	val, err := GetOrCompute(ctx, svc, "memo:1", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", val)
	assert.Equal(t, 1, calls)

	// Second call is served from the cache without invoking compute.
	val, err = GetOrCompute(ctx, svc, "memo:1", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", val)
	assert.Equal(t, 1, calls)
}

func TestGetOrCompute_StructRoundTrip(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	type result struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	first, err := GetOrCompute(ctx, svc, "memo:struct", time.Minute, func() (result, error) {
		return result{Name: "draft", Count: 3}, nil
	})
	require.NoError(t, err)

	second, err := GetOrCompute(ctx, svc, "memo:struct", time.Minute, func() (result, error) {
		t.Fatal("compute should not run on a hit")
		return result{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetOrCompute_SerializationFailureSurfaces(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	type uncacheable struct {
		F func() `json:"f"`
	}

	_, err := GetOrCompute(ctx, svc, "memo:bad", time.Minute, func() (uncacheable, error) {
		return uncacheable{F: func() {}}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize")
}

func TestGetOrCompute_ComputeErrorNotCached(t *testing.T) {
	svc, _ := setupCache(t)
	ctx := context.Background()

	calls := 0
	_, err := GetOrCompute(ctx, svc, "memo:err", time.Minute, func() (string, error) {
		calls++
		return "", assert.AnError
	})
	require.Error(t, err)

	_, err = GetOrCompute(ctx, svc, "memo:err", time.Minute, func() (string, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
