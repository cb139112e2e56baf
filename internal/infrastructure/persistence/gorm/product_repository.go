package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
)

// ProductRepository implements the catalog client interface using GORM
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) outbound.CatalogClient {
	return &ProductRepository{db: db}
}

// Lookup fetches a product by ID. Unknown IDs return nil without an error.
func (r *ProductRepository) Lookup(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toDomainProduct(&model), nil
}

// List returns the full catalog in name order
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	var models []ProductModel

	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	products := make([]catalog.Product, len(models))
	for i := range models {
		products[i] = *toDomainProduct(&models[i])
	}
	return products, nil
}
