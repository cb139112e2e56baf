// Package suggestion provides the AI recipe suggestion pipeline: a
// TTL-keyed cache of resolved suggestions per cart, catalog resolution of
// AI-proposed ingredients, and the analyze/check orchestration.
package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
)

// DefaultTTL is how long a suggestion entry stays fresh
const DefaultTTL = time.Hour

// Cache stores suggestion entries keyed by user over a CacheRepository.
// Entries carry their own expiry, so a read past ExpiresAt is a miss even
// when the backing store has not evicted the value yet.
type Cache struct {
	store  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache creates a suggestion cache
func NewCache(store outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: logger.Named("suggestion-cache"),
	}
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:suggestions:%s", userID)
}

// Get returns the cached entry for a user's cart, or nil on a miss.
// A stale entry is a miss; it is left for the store's TTL to reap.
func (c *Cache) Get(ctx context.Context, userID string) (*cart.SuggestionEntry, error) {
	data, err := c.store.Get(ctx, cacheKey(userID))
	if err != nil || data == nil {
		return nil, nil
	}

	var entry cart.SuggestionEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("Discarding undecodable suggestion entry",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, nil
	}

	if !entry.IsValid(time.Now()) {
		return nil, nil
	}
	return &entry, nil
}

// Put overwrites the entry for a user's cart with a fresh TTL
func (c *Cache) Put(ctx context.Context, userID string, recipes []cart.RecipeSuggestion) (*cart.SuggestionEntry, error) {
	now := time.Now()
	entry := &cart.SuggestionEntry{
		Recipes:    recipes,
		ComputedAt: now,
		ExpiresAt:  now.Add(c.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, cacheKey(userID), data, c.ttl); err != nil {
		return nil, err
	}
	return entry, nil
}

// Invalidate clears the entry immediately, independent of TTL
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, cacheKey(userID))
}
