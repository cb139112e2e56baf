package suggestion

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
	"github.com/marcusha429/my-ecommerce-project/pkg/errors"
)

// DefaultAITimeout bounds a single AI round-trip
const DefaultAITimeout = 30 * time.Second

// DefaultMaxSuggestions is how many recipes the model is asked for
const DefaultMaxSuggestions = 3

// Service implements the suggestion use cases: cached cart analysis and
// ad-hoc recipe checks, both driven by the AI adapter and resolved against
// the product catalog.
type Service struct {
	cartRepo outbound.CartRepository
	catalog  outbound.CatalogClient
	ai       outbound.AIService
	cache    *Cache
	logger   *zap.Logger

	// Coalesces concurrent analysis misses for the same cart into a
	// single AI call.
	group singleflight.Group

	aiTimeout      time.Duration
	maxSuggestions int
}

// NewService creates a new suggestion service
func NewService(
	cartRepo outbound.CartRepository,
	catalogClient outbound.CatalogClient,
	ai outbound.AIService,
	cache *Cache,
	aiTimeout time.Duration,
	maxSuggestions int,
	logger *zap.Logger,
) inbound.SuggestionService {
	if aiTimeout <= 0 {
		aiTimeout = DefaultAITimeout
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &Service{
		cartRepo:       cartRepo,
		catalog:        catalogClient,
		ai:             ai,
		cache:          cache,
		aiTimeout:      aiTimeout,
		maxSuggestions: maxSuggestions,
		logger:         logger.Named("suggestion-service"),
	}
}

// AnalyzeCart returns recipe suggestions for the user's cart, served from
// cache when a fresh entry exists. On a miss, concurrent requests for the
// same cart share one AI call.
func (s *Service) AnalyzeCart(ctx context.Context, userID string) (*inbound.AnalyzeResult, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find cart", err)
	}
	if c == nil || c.IsEmpty() {
		return nil, errors.NewValidationError("cart is empty")
	}

	if entry, err := s.cache.Get(ctx, userID); err == nil && entry != nil {
		s.logger.Info("Serving cached suggestions",
			zap.String("user_id", userID),
			zap.Int("recipes", len(entry.Recipes)),
		)
		return &inbound.AnalyzeResult{
			Recipes:    entry.Recipes,
			Cached:     true,
			AnalyzedAt: entry.ComputedAt,
		}, nil
	}

	result, err, shared := s.group.Do(userID, func() (interface{}, error) {
		// The winner may already have filled the cache while this
		// caller was queued behind the flight.
		if entry, err := s.cache.Get(ctx, userID); err == nil && entry != nil {
			return &inbound.AnalyzeResult{
				Recipes:    entry.Recipes,
				Cached:     true,
				AnalyzedAt: entry.ComputedAt,
			}, nil
		}
		return s.analyze(ctx, userID, c.Items)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Coalesced duplicate analysis request", zap.String("user_id", userID))
	}
	return result.(*inbound.AnalyzeResult), nil
}

// analyze runs the full miss path: prompt, AI call, parse, resolve, cache
func (s *Service) analyze(ctx context.Context, userID string, items []cart.CartItem) (*inbound.AnalyzeResult, error) {
	s.logger.Info("Analyzing cart with AI",
		zap.String("user_id", userID),
		zap.Int("items", len(items)),
	)

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list products", err)
	}

	raw, err := s.generate(ctx, buildAnalyzePrompt(items, products, s.maxSuggestions))
	if err != nil {
		return nil, err
	}

	parsed, perr := parseRecipes(raw)
	if perr != nil {
		// Fail-soft: an unparseable response means zero recipes,
		// never an error.
		s.logger.Warn("No parseable recipes in AI response",
			zap.String("user_id", userID),
			zap.Int("response_len", len(raw)),
			zap.Error(perr),
		)
	}

	recipes := make([]cart.RecipeSuggestion, len(parsed))
	for i, r := range parsed {
		recipes[i] = cart.RecipeSuggestion{
			ID:           uuid.New().String(),
			Title:        r.Title,
			Description:  r.Description,
			ImageURL:     placeholderImageURL(),
			ItemsInCart:  r.ItemsInCart,
			MissingItems: resolveMissingItems(r.MissingItems, products),
			Instructions: r.Instructions,
			CookTime:     r.CookTime,
			Servings:     r.Servings,
			Difficulty:   cart.NormalizeDifficulty(r.Difficulty),
		}
	}

	entry, err := s.cache.Put(ctx, userID, recipes)
	if err != nil {
		// A failed cache write costs a recomputation, not the result
		s.logger.Error("Failed to cache suggestions",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return &inbound.AnalyzeResult{Recipes: recipes, Cached: false, AnalyzedAt: time.Now()}, nil
	}

	s.logger.Info("Cart analysis complete",
		zap.String("user_id", userID),
		zap.Int("recipes", len(recipes)),
	)
	return &inbound.AnalyzeResult{
		Recipes:    recipes,
		Cached:     false,
		AnalyzedAt: entry.ComputedAt,
	}, nil
}

// CheckCustomRecipe asks the AI whether a named recipe is feasible with the
// cart's items. Results are never cached. Any AI or parsing failure
// degrades to a canMake:false result rather than an error.
func (s *Service) CheckCustomRecipe(ctx context.Context, userID, recipeName string, itemsOverride []cart.CartItem) (*cart.RecipeCheckResult, error) {
	if recipeName == "" {
		return nil, errors.NewValidationError("recipe name is required")
	}

	items := itemsOverride
	if len(items) == 0 {
		c, err := s.cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("find cart", err)
		}
		if c == nil || c.IsEmpty() {
			return nil, errors.NewValidationError("cart is empty")
		}
		items = c.Items
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list products", err)
	}

	s.logger.Info("Checking custom recipe",
		zap.String("user_id", userID),
		zap.String("recipe", recipeName),
	)

	raw, err := s.generate(ctx, buildCheckPrompt(recipeName, items, products))
	if err != nil {
		s.logger.Warn("Degrading recipe check after AI failure",
			zap.String("recipe", recipeName),
			zap.Error(err),
		)
		return degradedCheckResult(recipeName), nil
	}

	parsed, perr := parseCheckResult(raw)
	if perr != nil {
		s.logger.Warn("Degrading recipe check after parse failure",
			zap.String("recipe", recipeName),
			zap.Int("response_len", len(raw)),
			zap.Error(perr),
		)
		return degradedCheckResult(recipeName), nil
	}

	return &cart.RecipeCheckResult{
		RecipeName:         recipeName,
		CanMake:            parsed.CanMake,
		PercentageComplete: clampPercent(parsed.PercentageComplete),
		ItemsTheyHave:      parsed.ItemsTheyHave,
		MissingItems:       resolveMissingItems(parsed.MissingItems, products),
		Instructions:       parsed.Instructions,
		CookTime:           parsed.CookTime,
		Servings:           parsed.Servings,
	}, nil
}

// generate runs one AI round-trip under the configured timeout
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	raw, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("AI generation failed", zap.Error(err))
		return "", errors.NewExternalServiceError("AI service", err)
	}
	return raw, nil
}

func degradedCheckResult(recipeName string) *cart.RecipeCheckResult {
	return &cart.RecipeCheckResult{
		RecipeName:         recipeName,
		CanMake:            false,
		PercentageComplete: 0,
		Error:              "Unable to analyze recipe",
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// placeholderImageURL returns a cosmetic stand-in image reference, not
// derived from recipe content
func placeholderImageURL() string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%d?w=400", rand.Intn(1000000))
}
