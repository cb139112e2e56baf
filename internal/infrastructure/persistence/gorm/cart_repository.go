// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
)

// CartRepository implements the cart repository interface using GORM
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) outbound.CartRepository {
	return &CartRepository{db: db}
}

// FindByUserID loads a user's cart. A user with no cart yet returns nil
// without an error.
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var model CartModel

	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toDomainCart(&model), nil
}

// Save upserts the cart keyed by user ID
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	model := toCartModel(c)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(model)

	return result.Error
}

// Delete removes a user's cart. Deleting an absent cart is not an error.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&CartModel{}, "user_id = ?", userID)
	return result.Error
}
