package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Del(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", "v", 10*time.Millisecond))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenCacheSingleUse(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenCache(NewMemoryStore())

	token, err := tokens.CreateVerificationToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tokens.ConsumeVerificationToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = tokens.ConsumeVerificationToken(ctx, token)
	assert.Error(t, err)
}

func TestCartStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	carts := NewCartStore(NewMemoryStore())

	// Unknown tokens start as an empty cart, not an error.
	cart, err := carts.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, cart)

	cart[7] = CartItem{ProductID: 7, Quantity: 2, Size: "M"}
	require.NoError(t, carts.Save(ctx, "fresh", cart))

	loaded, err := carts.Get(ctx, "fresh")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[7].Quantity)
	assert.Equal(t, "M", loaded[7].Size)

	require.NoError(t, carts.Clear(ctx, "fresh"))
	cart, err = carts.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, cart)
}
