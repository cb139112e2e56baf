package suggestion_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/application/suggestion"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/memory"
)

func newTestCache(ttl time.Duration) *suggestion.Cache {
	return suggestion.NewCache(memory.NewCacheRepository(), ttl, zap.NewNop())
}

func sampleRecipes() []cart.RecipeSuggestion {
	return []cart.RecipeSuggestion{
		{ID: "r1", Title: "Garlic Pasta", Difficulty: cart.DifficultyEasy},
		{ID: "r2", Title: "Veggie Stir Fry", Difficulty: cart.DifficultyMedium},
	}
}

func TestCachePutGet(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(time.Hour)

	put, err := cache.Put(ctx, "user-1", sampleRecipes())
	require.NoError(t, err)
	require.NotNil(t, put)

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Recipes round-trip intact, IDs included
	require.Len(t, got.Recipes, 2)
	assert.Equal(t, "r1", got.Recipes[0].ID)
	assert.Equal(t, "r2", got.Recipes[1].ID)
	assert.Equal(t, "Garlic Pasta", got.Recipes[0].Title)
}

func TestCacheMissForUnknownUser(t *testing.T) {
	cache := newTestCache(time.Hour)

	got, err := cache.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheStaleEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(time.Millisecond)

	_, err := cache.Put(ctx, "user-1", sampleRecipes())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(time.Hour)

	_, err := cache.Put(ctx, "user-1", sampleRecipes())
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, "user-1"))

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Invalidating an absent entry is a no-op
	assert.NoError(t, cache.Invalidate(ctx, "user-1"))
}

func TestCacheUndecodableEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := memory.NewCacheRepository()
	cache := suggestion.NewCache(store, time.Hour, zap.NewNop())

	require.NoError(t, store.Set(ctx, "cart:suggestions:user-1", []byte("{not json"), time.Hour))

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
