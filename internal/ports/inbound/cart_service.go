// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). The HTTP layer consumes these; it never touches domain
// entities or repositories directly.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
)

// CartView is the caller-facing projection of a cart plus its summary
type CartView struct {
	Cart    *cart.Cart   `json:"cart"`
	Summary cart.Summary `json:"summary"`
}

// CartService defines the cart mutation use cases. All mutations are
// serialized per user and fail fast with no partial writes.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*CartView, error)
	AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity float64) (*CartView, error)
	UpdateItem(ctx context.Context, userID string, productID uuid.UUID, quantity float64) (*CartView, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartView, error)
	ClearCart(ctx context.Context, userID string) (*CartView, error)
}

// AnalyzeResult is the outcome of a cart analysis: the suggestions, whether
// they came from cache, and when they were computed.
type AnalyzeResult struct {
	Recipes    []cart.RecipeSuggestion `json:"recipes"`
	Cached     bool                    `json:"cached"`
	AnalyzedAt time.Time               `json:"analyzedAt"`
}

// SuggestionService defines the AI suggestion use cases. Analysis results
// are cached per cart; ad-hoc recipe checks never are. External and parsing
// failures degrade to empty/failed results rather than blocking shopping.
type SuggestionService interface {
	AnalyzeCart(ctx context.Context, userID string) (*AnalyzeResult, error)
	CheckCustomRecipe(ctx context.Context, userID, recipeName string, itemsOverride []cart.CartItem) (*cart.RecipeCheckResult, error)
}
