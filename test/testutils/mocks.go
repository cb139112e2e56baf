// Package testutils provides mock implementations and test data factories
package testutils

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
)

// MockCatalogClient provides a mock implementation of CatalogClient backed
// by an in-memory product set
type MockCatalogClient struct {
	mock.Mock
	products map[uuid.UUID]catalog.Product
	order    []uuid.UUID
	mu       sync.RWMutex
}

// NewMockCatalogClient creates a new mock catalog client
func NewMockCatalogClient(products ...catalog.Product) *MockCatalogClient {
	c := &MockCatalogClient{
		products: make(map[uuid.UUID]catalog.Product),
	}
	for _, p := range products {
		c.AddProduct(p)
	}
	return c
}

// AddProduct registers a product with the catalog
func (c *MockCatalogClient) AddProduct(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.products[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.products[p.ID] = p
}

// SetStock updates a registered product's stock
func (c *MockCatalogClient) SetStock(id uuid.UUID, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.products[id]
	p.Stock = stock
	c.products[id] = p
}

// Lookup fetches a product by ID, nil for unknown IDs
func (c *MockCatalogClient) Lookup(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, exists := c.products[id]; exists {
		return &p, nil
	}
	return nil, nil
}

// List returns all registered products in insertion order
func (c *MockCatalogClient) List(ctx context.Context) ([]catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]catalog.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, c.products[id])
	}
	return products, nil
}

// MockAIService provides a mock implementation of AIService
type MockAIService struct {
	mock.Mock
	mu    sync.Mutex
	calls int
}

// NewMockAIService creates a new mock AI service
func NewMockAIService() *MockAIService {
	return &MockAIService{}
}

// Generate returns the scripted response
func (m *MockAIService) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Calls reports how many times Generate ran
func (m *MockAIService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
