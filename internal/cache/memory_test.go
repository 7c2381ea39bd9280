package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Roundtrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "recs:1", []string{"product_0", "product_1"}))

	var got []string
	hit, err := c.Get(ctx, "recs:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"product_0", "product_1"}, got)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	var got []string
	hit, err := c.Get(context.Background(), "recs:404", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "recs:1", []string{"product_0"}))
	require.NoError(t, c.Delete(ctx, "recs:1"))

	var got []string
	hit, err := c.Get(ctx, "recs:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "recs:1", []string{"product_0"}))
	require.NoError(t, c.Set(ctx, "recs:2", []string{"product_1"}))
	require.NoError(t, c.Clear(ctx))

	var got []string
	for _, key := range []string{"recs:1", "recs:2"} {
		hit, err := c.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.False(t, hit, "key %s should be gone", key)
	}
}

func TestMemoryCache_GetIntoMismatchedType(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "recs:1", "not-a-slice"))

	var got []string
	hit, err := c.Get(ctx, "recs:1", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}
