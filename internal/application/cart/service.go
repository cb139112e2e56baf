// Package cart provides the application layer for cart mutations.
// Every mutation is serialized per user, validated against live catalog
// stock, and invalidates the suggestion cache before persisting.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
	"github.com/marcusha429/my-ecommerce-project/pkg/errors"
)

// SuggestionInvalidator clears cached recipe suggestions for a user's cart.
// Implemented by the suggestion cache; declared here so the cart service
// does not depend on the suggestion package.
type SuggestionInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Service implements the cart use cases
type Service struct {
	cartRepo    outbound.CartRepository
	catalog     outbound.CatalogClient
	suggestions SuggestionInvalidator
	taxRate     float64
	logger      *zap.Logger

	// Per-user mutexes serialize the read-validate-write sequence so
	// concurrent mutations for one cart cannot lose writes.
	locks sync.Map
}

// NewService creates a new cart service
func NewService(
	cartRepo outbound.CartRepository,
	catalogClient outbound.CatalogClient,
	suggestions SuggestionInvalidator,
	taxRate float64,
	logger *zap.Logger,
) inbound.CartService {
	if taxRate <= 0 {
		taxRate = cart.DefaultTaxRate
	}
	return &Service{
		cartRepo:    cartRepo,
		catalog:     catalogClient,
		suggestions: suggestions,
		taxRate:     taxRate,
		logger:      logger.Named("cart-service"),
	}
}

// userLock returns the mutex guarding a single user's cart
func (s *Service) userLock(userID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetCart returns the user's cart with its summary. A user with no cart yet
// gets an empty cart shape; absence is never an error.
func (s *Service) GetCart(ctx context.Context, userID string) (*inbound.CartView, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil {
		c = cart.NewCart(userID)
	}
	return s.view(c), nil
}

// AddItem adds quantity of a product to the cart, merging with an existing
// line item when present. The operation is rejected in full when the merged
// quantity would exceed the product's current stock.
func (s *Service) AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity float64) (*inbound.CartView, error) {
	s.logger.Info("Adding item to cart",
		zap.String("user_id", userID),
		zap.String("product_id", productID.String()),
		zap.Float64("quantity", quantity),
	)

	if productID == uuid.Nil {
		return nil, errors.NewValidationError("product ID is required")
	}
	if quantity <= 0 {
		return nil, errors.NewValidationError("quantity must be positive")
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := validateGranularity(product.Unit, quantity); err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil {
		c = cart.NewCart(userID)
	}

	stock := float64(product.Stock)
	if existing := c.FindItem(productID); existing != nil {
		merged := existing.Quantity + quantity
		if merged > stock {
			available := stock - existing.Quantity
			s.logger.Warn("Insufficient stock for merge",
				zap.String("product_id", productID.String()),
				zap.Float64("requested", quantity),
				zap.Float64("available", available),
			)
			return nil, errors.NewInsufficientStockError(productID.String(), quantity, available)
		}
		c.SetQuantity(productID, merged)
	} else {
		if quantity > stock {
			s.logger.Warn("Insufficient stock for new item",
				zap.String("product_id", productID.String()),
				zap.Float64("requested", quantity),
				zap.Float64("available", stock),
			)
			return nil, errors.NewInsufficientStockError(productID.String(), quantity, stock)
		}
		c.AddItem(cart.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Unit:      string(product.Unit),
			Image:     product.Image,
			Organic:   product.Organic,
		})
	}

	if err := s.persistMutation(ctx, c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// UpdateItem sets the quantity of an existing line item, revalidating
// against the product's current stock. Quantity zero removes the item;
// price/name snapshots are never refreshed.
func (s *Service) UpdateItem(ctx context.Context, userID string, productID uuid.UUID, quantity float64) (*inbound.CartView, error) {
	s.logger.Info("Updating cart item",
		zap.String("user_id", userID),
		zap.String("product_id", productID.String()),
		zap.Float64("quantity", quantity),
	)

	if productID == uuid.Nil {
		return nil, errors.NewValidationError("product ID is required")
	}
	if quantity < 0 {
		return nil, errors.NewValidationError("quantity cannot be negative")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil {
		return nil, errors.NewCartNotFoundError(userID)
	}
	if c.FindItem(productID) == nil {
		return nil, errors.NewItemNotInCartError(productID.String())
	}

	if quantity == 0 {
		c.RemoveItem(productID)
	} else {
		product, err := s.lookupProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := validateGranularity(product.Unit, quantity); err != nil {
			return nil, err
		}
		if quantity > float64(product.Stock) {
			return nil, errors.NewInsufficientStockError(productID.String(), quantity, float64(product.Stock))
		}
		c.SetQuantity(productID, quantity)
	}

	if err := s.persistMutation(ctx, c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// RemoveItem filters the item out of the cart. Removing an absent item, or
// removing from a user with no cart, is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*inbound.CartView, error) {
	s.logger.Info("Removing item from cart",
		zap.String("user_id", userID),
		zap.String("product_id", productID.String()),
	)

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil {
		return s.view(cart.NewCart(userID)), nil
	}

	c.RemoveItem(productID)

	if err := s.persistMutation(ctx, c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// ClearCart empties the cart and clears the suggestion cache
// unconditionally. Idempotent on an already-empty cart.
func (s *Service) ClearCart(ctx context.Context, userID string) (*inbound.CartView, error) {
	s.logger.Info("Clearing cart", zap.String("user_id", userID))

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil {
		c = cart.NewCart(userID)
	}

	c.Clear()

	if err := s.persistMutation(ctx, c); err != nil {
		return nil, err
	}
	return s.view(c), nil
}

// lookupProduct fetches a product or returns a product-not-found error
func (s *Service) lookupProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.catalog.Lookup(ctx, productID)
	if err != nil {
		return nil, errors.NewDatabaseError("lookup product", err)
	}
	if product == nil {
		return nil, errors.NewProductNotFoundError(productID.String())
	}
	return product, nil
}

// persistMutation invalidates the suggestion cache, then saves the cart.
// Invalidation comes first: a cleared cache with a failed save only costs a
// recomputation, while the reverse order could serve stale suggestions.
func (s *Service) persistMutation(ctx context.Context, c *cart.Cart) error {
	if err := s.suggestions.Invalidate(ctx, c.UserID); err != nil {
		s.logger.Error("Failed to invalidate suggestion cache",
			zap.String("user_id", c.UserID),
			zap.Error(err),
		)
		return errors.Wrap(err, "invalidate suggestion cache")
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return errors.NewDatabaseError("save cart", err)
	}
	return nil
}

// view builds the caller-facing projection
func (s *Service) view(c *cart.Cart) *inbound.CartView {
	return &inbound.CartView{
		Cart:    c,
		Summary: cart.ComputeSummary(c, s.taxRate),
	}
}

// validateGranularity enforces the per-unit quantity policy
func validateGranularity(unit catalog.Unit, quantity float64) error {
	if catalog.ValidQuantity(unit, quantity) {
		return nil
	}
	policy := catalog.PolicyFor(unit)
	if policy.Discrete {
		return errors.NewValidationError(
			fmt.Sprintf("quantity for unit %q must be a whole number of at least %g", unit, policy.MinQuantity))
	}
	return errors.NewValidationError(
		fmt.Sprintf("quantity for unit %q must be at least %g in increments of 0.1", unit, policy.MinQuantity))
}
