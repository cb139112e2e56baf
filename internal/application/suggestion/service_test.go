package suggestion_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/application/suggestion"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/memory"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
	apperrors "github.com/marcusha429/my-ecommerce-project/pkg/errors"
	"github.com/marcusha429/my-ecommerce-project/test/testutils"
)

// SuggestionServiceTestSuite exercises the analyze and check use cases with
// a scripted AI and an in-memory cart
type SuggestionServiceTestSuite struct {
	suite.Suite
	service  inbound.SuggestionService
	cartRepo outbound.CartRepository
	ai       *testutils.MockAIService

	spaghetti catalog.Product
	bananas   catalog.Product
}

func (suite *SuggestionServiceTestSuite) SetupTest() {
	suite.spaghetti = testutils.NewTestProduct("Spaghetti", 1.49, 80, catalog.UnitPiece)
	suite.bananas = testutils.NewTestProduct("Organic Bananas", 1.99, 150, catalog.UnitLb)

	suite.cartRepo = memory.NewCartRepository()
	suite.ai = testutils.NewMockAIService()

	catalogClient := testutils.NewMockCatalogClient(suite.spaghetti, suite.bananas)
	cache := suggestion.NewCache(memory.NewCacheRepository(), time.Hour, zap.NewNop())
	suite.service = suggestion.NewService(suite.cartRepo, catalogClient, suite.ai, cache, time.Second, 3, zap.NewNop())
}

// seedCart stores a one-line cart for userID
func (suite *SuggestionServiceTestSuite) seedCart(userID string) {
	c := testutils.NewTestCart(userID, testutils.NewTestCartItem(suite.spaghetti, 2))
	require.NoError(suite.T(), suite.cartRepo.Save(context.Background(), c))
}

func (suite *SuggestionServiceTestSuite) TestAnalyzeCart() {
	ctx := context.Background()

	suite.Run("EmptyCart_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.AnalyzeCart(ctx, "nobody")
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("MissThenHit_SingleAICall", func() {
		suite.SetupTest()
		suite.seedCart("user-1")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return(testutils.AnalyzeResponse("Garlic Butter Pasta", "garlic", 0.79), nil)

		first, err := suite.service.AnalyzeCart(ctx, "user-1")
		require.NoError(suite.T(), err)
		assert.False(suite.T(), first.Cached)
		require.Len(suite.T(), first.Recipes, 1)
		assert.Equal(suite.T(), "Garlic Butter Pasta", first.Recipes[0].Title)
		assert.NotEmpty(suite.T(), first.Recipes[0].ID)
		assert.NotEmpty(suite.T(), first.Recipes[0].ImageURL)

		second, err := suite.service.AnalyzeCart(ctx, "user-1")
		require.NoError(suite.T(), err)
		assert.True(suite.T(), second.Cached)
		require.Len(suite.T(), second.Recipes, 1)

		// The cached copy is the same suggestion, ID included
		assert.Equal(suite.T(), first.Recipes[0].ID, second.Recipes[0].ID)
		assert.Equal(suite.T(), first.AnalyzedAt.Unix(), second.AnalyzedAt.Unix())
		assert.Equal(suite.T(), 1, suite.ai.Calls())
	})

	suite.Run("MissingItem_ResolvedAgainstCatalog", func() {
		suite.SetupTest()
		suite.seedCart("user-2")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return(testutils.AnalyzeResponse("Banana Bread", "banana", 0.50), nil)

		result, err := suite.service.AnalyzeCart(ctx, "user-2")
		require.NoError(suite.T(), err)
		require.Len(suite.T(), result.Recipes, 1)
		require.Len(suite.T(), result.Recipes[0].MissingItems, 1)

		// "banana" has no exact match but "Organic Bananas" contains it,
		// so the item carries the catalog price, not the AI estimate
		missing := result.Recipes[0].MissingItems[0]
		require.NotNil(suite.T(), missing.ProductID)
		assert.Equal(suite.T(), suite.bananas.ID, *missing.ProductID)
		assert.Equal(suite.T(), 1.99, missing.Price)
	})

	suite.Run("BracketFreeResponse_EmptyRecipes", func() {
		suite.SetupTest()
		suite.seedCart("user-3")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return("I'm sorry, I can't suggest recipes right now.", nil)

		result, err := suite.service.AnalyzeCart(ctx, "user-3")
		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.Cached)
		assert.Empty(suite.T(), result.Recipes)
	})

	suite.Run("AIFailure_ExternalServiceError", func() {
		suite.SetupTest()
		suite.seedCart("user-4")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return("", errors.New("connection refused"))

		_, err := suite.service.AnalyzeCart(ctx, "user-4")
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeExternalServiceError, apperrors.GetCode(err))
	})
}

func (suite *SuggestionServiceTestSuite) TestAnalyzeCartCoalescesConcurrentMisses() {
	ctx := context.Background()
	suite.seedCart("user-1")

	// A slow AI keeps the flight open while the other callers queue up
	suite.ai.On("Generate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(50 * time.Millisecond) }).
		Return(testutils.AnalyzeResponse("Garlic Butter Pasta", "garlic", 0.79), nil)

	const callers = 10
	var wg sync.WaitGroup
	results := make([]*inbound.AnalyzeResult, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = suite.service.AnalyzeCart(ctx, "user-1")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(suite.T(), errs[i])
		require.Len(suite.T(), results[i].Recipes, 1)
		assert.Equal(suite.T(), results[0].Recipes[0].ID, results[i].Recipes[0].ID)
	}
	assert.Equal(suite.T(), 1, suite.ai.Calls())
}

func (suite *SuggestionServiceTestSuite) TestCheckCustomRecipe() {
	ctx := context.Background()

	suite.Run("EmptyName_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.CheckCustomRecipe(ctx, "user-1", "", nil)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("NoCartAndNoOverride_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.CheckCustomRecipe(ctx, "nobody", "Carbonara", nil)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("Success", func() {
		suite.SetupTest()
		suite.seedCart("user-1")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return(testutils.CheckResponse("Carbonara", true, 85), nil)

		result, err := suite.service.CheckCustomRecipe(ctx, "user-1", "Carbonara", nil)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Carbonara", result.RecipeName)
		assert.True(suite.T(), result.CanMake)
		assert.Equal(suite.T(), 85, result.PercentageComplete)
		assert.Empty(suite.T(), result.Error)
	})

	suite.Run("ItemsOverride_SkipsCartLoad", func() {
		suite.SetupTest()
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return(testutils.CheckResponse("Fruit Salad", false, 40), nil)

		items := []cart.CartItem{testutils.NewTestCartItem(suite.bananas, 1)}
		result, err := suite.service.CheckCustomRecipe(ctx, "nobody", "Fruit Salad", items)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 40, result.PercentageComplete)
	})

	suite.Run("AIFailure_Degrades", func() {
		suite.SetupTest()
		suite.seedCart("user-1")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return("", errors.New("timeout"))

		result, err := suite.service.CheckCustomRecipe(ctx, "user-1", "Lasagna", nil)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Lasagna", result.RecipeName)
		assert.False(suite.T(), result.CanMake)
		assert.Zero(suite.T(), result.PercentageComplete)
		assert.Equal(suite.T(), "Unable to analyze recipe", result.Error)
	})

	suite.Run("UnparseableResponse_Degrades", func() {
		suite.SetupTest()
		suite.seedCart("user-1")
		suite.ai.On("Generate", mock.Anything, mock.Anything).
			Return("no json here", nil)

		result, err := suite.service.CheckCustomRecipe(ctx, "user-1", "Lasagna", nil)
		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.CanMake)
		assert.Equal(suite.T(), "Unable to analyze recipe", result.Error)
	})
}

func TestSuggestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionServiceTestSuite))
}
