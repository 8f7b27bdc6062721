package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	fills := 0
	fill := func(dest *cachedThing) func() error {
		return func() error {
			fills++
			dest.ID = 42
			dest.Name = "ridge walk"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, ActivityKey(42), &first, ActivityTTL, fill(&first)))
	assert.Equal(t, 1, fills)
	assert.Equal(t, "ridge walk", first.Name)

	var second cachedThing
	require.NoError(t, Aside(ctx, ActivityKey(42), &second, ActivityTTL, fill(&second)))
	assert.Equal(t, 1, fills, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesRefill(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	fills := 0
	load := func(dest *cachedThing) error {
		fills++
		dest.ID = 7
		return nil
	}

	var v cachedThing
	require.NoError(t, Aside(ctx, ActivityKey(7), &v, ActivityTTL, func() error { return load(&v) }))
	InvalidateActivity(ctx, 7)
	require.NoError(t, Aside(ctx, ActivityKey(7), &v, ActivityTTL, func() error { return load(&v) }))
	assert.Equal(t, 2, fills)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)

	var v cachedThing
	err := Aside(context.Background(), "activity:1", &v, time.Minute, func() error {
		v.ID = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), v.ID)
}

func TestAside_CorruptEntryRecovers(t *testing.T) {
	mr := setupTestCache(t)
	require.NoError(t, mr.Set(ActivityKey(9), "{not json"))

	var v cachedThing
	err := Aside(context.Background(), ActivityKey(9), &v, time.Minute, func() error {
		v.ID = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), v.ID)
}
