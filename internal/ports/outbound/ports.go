// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the interfaces the application uses to reach external
// systems: the cart store, the product catalog, the cache, and the AI service.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
)

// CartRepository defines the interface for cart persistence.
// One document per user; FindByUserID returns (nil, nil) when no cart
// exists yet.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, userID string) error
}

// CatalogClient defines the read-only view of the product catalog consumed
// by the cart core. Lookup returns (nil, nil) for unknown products.
type CatalogClient interface {
	Lookup(ctx context.Context, productID uuid.UUID) (*catalog.Product, error)
	List(ctx context.Context) ([]catalog.Product, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AIService defines the interface for AI text generation. Generate takes a
// complete prompt and returns the model's raw free-text response, which may
// embed a JSON payload.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
