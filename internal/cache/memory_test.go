package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, AlertKey("a1"), []byte(`{"price":150}`), time.Minute))

	value, ok, err := c.Get(ctx, AlertKey("a1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"price":150}`, string(value))

	_, ok, err = c.Get(ctx, AlertKey("missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, AlertKey("a1"), []byte("x"), 5*time.Minute))

	now = now.Add(4 * time.Minute)
	_, ok, err := c.Get(ctx, AlertKey("a1"))
	require.NoError(t, err)
	assert.True(t, ok, "entry is live before its TTL elapses")

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, AlertKey("a1"))
	require.NoError(t, err)
	assert.False(t, ok, "entry is gone after its TTL elapses")
}

func TestMemory_SetRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, AlertKey("a1"), []byte("old"), 5*time.Minute))

	now = now.Add(4 * time.Minute)
	require.NoError(t, c.Set(ctx, AlertKey("a1"), []byte("new"), 5*time.Minute))

	now = now.Add(4 * time.Minute)
	value, ok, err := c.Get(ctx, AlertKey("a1"))
	require.NoError(t, err)
	require.True(t, ok, "overwrite restarts the TTL")
	assert.Equal(t, "new", string(value))
}

func TestMemory_KeysPattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, AlertKey("a1"), []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, AlertKey("a2"), []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, PriceKey("AAPL"), []byte("150"), time.Minute))

	keys, err := c.Keys(ctx, AlertPattern())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alert:a1", "alert:a2"}, keys)
}

func TestMemory_KeysSkipsExpired(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, AlertKey("live"), []byte("x"), 10*time.Minute))
	require.NoError(t, c.Set(ctx, AlertKey("stale"), []byte("x"), time.Minute))

	now = now.Add(5 * time.Minute)
	keys, err := c.Keys(ctx, AlertPattern())
	require.NoError(t, err)
	assert.Equal(t, []string{"alert:live"}, keys)
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "alert:a1", AlertKey("a1"))
	assert.Equal(t, "price:AAPL", PriceKey("AAPL"))
	assert.Equal(t, "alert:*", AlertPattern())
}
