package memory

import (
	"context"
	"sync"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
)

// CartRepository implements an in-memory cart repository. Carts are deep
// copied on the way in and out so callers never share slices with the
// stored state.
type CartRepository struct {
	carts map[string]*cart.Cart
	mutex sync.RWMutex
}

// NewCartRepository creates a new in-memory cart repository
func NewCartRepository() outbound.CartRepository {
	return &CartRepository{
		carts: make(map[string]*cart.Cart),
	}
}

// FindByUserID loads a user's cart, or nil when none exists
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, exists := r.carts[userID]
	if !exists {
		return nil, nil
	}
	return c.Clone(), nil
}

// Save stores the cart keyed by user ID
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.carts[c.UserID] = c.Clone()
	return nil
}

// Delete removes a user's cart
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.carts, userID)
	return nil
}
