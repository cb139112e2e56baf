package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	cartapp "github.com/marcusha429/my-ecommerce-project/internal/application/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/application/suggestion"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/persistence/memory"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
	"github.com/marcusha429/my-ecommerce-project/pkg/errors"
	"github.com/marcusha429/my-ecommerce-project/test/testutils"
)

const testUser = "user-1"

// CartServiceTestSuite exercises cart mutations against in-memory
// persistence and a scripted catalog
type CartServiceTestSuite struct {
	suite.Suite
	service  inbound.CartService
	cartRepo outbound.CartRepository
	catalog  *testutils.MockCatalogClient
	cache    *suggestion.Cache

	apples  catalog.Product
	bananas catalog.Product
}

// SetupTest rebuilds the world before every test
func (suite *CartServiceTestSuite) SetupTest() {
	suite.apples = testutils.NewTestProduct("Honeycrisp Apples", 3.49, 5, catalog.UnitPiece)
	suite.bananas = testutils.NewTestProduct("Organic Bananas", 1.99, 150, catalog.UnitLb)

	suite.cartRepo = memory.NewCartRepository()
	suite.catalog = testutils.NewMockCatalogClient(suite.apples, suite.bananas)
	suite.cache = suggestion.NewCache(memory.NewCacheRepository(), time.Hour, zap.NewNop())
	suite.service = cartapp.NewService(suite.cartRepo, suite.catalog, suite.cache, cart.DefaultTaxRate, zap.NewNop())
}

func (suite *CartServiceTestSuite) TestGetCart() {
	suite.Run("AbsentCart_ReturnsEmptyView", func() {
		suite.SetupTest()
		view, err := suite.service.GetCart(context.Background(), "nobody")

		require.NoError(suite.T(), err)
		assert.True(suite.T(), view.Cart.IsEmpty())
		assert.Zero(suite.T(), view.Summary.Total)
	})
}

func (suite *CartServiceTestSuite) TestAddItem() {
	ctx := context.Background()

	suite.Run("NewItem_SnapshotsProduct", func() {
		suite.SetupTest()
		view, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)

		require.NoError(suite.T(), err)
		require.Len(suite.T(), view.Cart.Items, 1)

		item := view.Cart.Items[0]
		assert.Equal(suite.T(), suite.apples.ID, item.ProductID)
		assert.Equal(suite.T(), "Honeycrisp Apples", item.Name)
		assert.Equal(suite.T(), 3.49, item.Price)
		assert.Equal(suite.T(), 2.0, item.Quantity)
		assert.Equal(suite.T(), 6.98, view.Summary.Subtotal)
	})

	suite.Run("ExistingItem_MergesQuantity", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)

		view, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 1)
		require.NoError(suite.T(), err)

		require.Len(suite.T(), view.Cart.Items, 1)
		assert.Equal(suite.T(), 3.0, view.Cart.Items[0].Quantity)
	})

	suite.Run("MergeOverStock_RejectedWithAvailable", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 3)
		require.NoError(suite.T(), err)

		_, err = suite.service.AddItem(ctx, testUser, suite.apples.ID, 4)
		require.Error(suite.T(), err)

		appErr, ok := err.(*errors.AppError)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), errors.CodeInsufficientStock, appErr.Code)
		assert.Equal(suite.T(), 4.0, appErr.Metadata["requested"])
		assert.Equal(suite.T(), 2.0, appErr.Metadata["available"])

		// Rejection leaves the cart untouched
		view, err := suite.service.GetCart(ctx, testUser)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3.0, view.Cart.Items[0].Quantity)
	})

	suite.Run("NewItemOverStock_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 6)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeInsufficientStock, errors.GetCode(err))
	})

	suite.Run("UnknownProduct_NotFound", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, uuid.New(), 1)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeProductNotFound, errors.GetCode(err))
	})

	suite.Run("InvalidArguments_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, uuid.Nil, 1)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))

		_, err = suite.service.AddItem(ctx, testUser, suite.apples.ID, 0)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))

		_, err = suite.service.AddItem(ctx, testUser, suite.apples.ID, -2)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})

	suite.Run("Granularity_DiscreteRejectsFractions", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 1.5)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})

	suite.Run("Granularity_MeasuredAcceptsTenths", func() {
		suite.SetupTest()
		view, err := suite.service.AddItem(ctx, testUser, suite.bananas.ID, 2.5)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2.5, view.Cart.Items[len(view.Cart.Items)-1].Quantity)

		_, err = suite.service.AddItem(ctx, testUser, suite.bananas.ID, 0.05)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})
}

func (suite *CartServiceTestSuite) TestUpdateItem() {
	ctx := context.Background()

	suite.Run("SetsQuantityAgainstLiveStock", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)

		view, err := suite.service.UpdateItem(ctx, testUser, suite.apples.ID, 5)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 5.0, view.Cart.Items[0].Quantity)

		_, err = suite.service.UpdateItem(ctx, testUser, suite.apples.ID, 6)
		assert.Equal(suite.T(), errors.CodeInsufficientStock, errors.GetCode(err))
	})

	suite.Run("ZeroQuantity_RemovesLine", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)

		view, err := suite.service.UpdateItem(ctx, testUser, suite.apples.ID, 0)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), view.Cart.IsEmpty())
	})

	suite.Run("PriceSnapshot_NeverRefreshed", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 1)
		require.NoError(suite.T(), err)

		repriced := suite.apples
		repriced.Price = 9.99
		suite.catalog.AddProduct(repriced)

		view, err := suite.service.UpdateItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3.49, view.Cart.Items[0].Price)
	})

	suite.Run("NoCart_NotFound", func() {
		suite.SetupTest()
		_, err := suite.service.UpdateItem(ctx, "nobody", suite.apples.ID, 1)
		assert.Equal(suite.T(), errors.CodeCartNotFound, errors.GetCode(err))
	})

	suite.Run("ItemNotInCart_NotFound", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 1)
		require.NoError(suite.T(), err)

		_, err = suite.service.UpdateItem(ctx, testUser, suite.bananas.ID, 1)
		assert.Equal(suite.T(), errors.CodeItemNotInCart, errors.GetCode(err))
	})

	suite.Run("NegativeQuantity_Rejected", func() {
		suite.SetupTest()
		_, err := suite.service.UpdateItem(ctx, testUser, suite.apples.ID, -1)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})
}

func (suite *CartServiceTestSuite) TestRemoveItem() {
	ctx := context.Background()

	suite.Run("RemovesLine", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)

		view, err := suite.service.RemoveItem(ctx, testUser, suite.apples.ID)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), view.Cart.IsEmpty())
	})

	suite.Run("AbsentItem_NoError", func() {
		suite.SetupTest()
		_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
		require.NoError(suite.T(), err)

		view, err := suite.service.RemoveItem(ctx, testUser, uuid.New())
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), view.Cart.Items, 1)
	})

	suite.Run("NoCart_NoError", func() {
		suite.SetupTest()
		view, err := suite.service.RemoveItem(ctx, "nobody", suite.apples.ID)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), view.Cart.IsEmpty())
	})
}

func (suite *CartServiceTestSuite) TestClearCart() {
	ctx := context.Background()

	_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 2)
	require.NoError(suite.T(), err)

	view, err := suite.service.ClearCart(ctx, testUser)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), view.Cart.IsEmpty())

	// Clearing again is idempotent
	view, err = suite.service.ClearCart(ctx, testUser)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), view.Cart.IsEmpty())
}

func (suite *CartServiceTestSuite) TestConcurrentAddsMergeWithoutLostWrites() {
	ctx := context.Background()
	pears := testutils.NewTestProduct("Bartlett Pears", 2.49, 100, catalog.UnitPiece)
	suite.catalog.AddProduct(pears)

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.AddItem(ctx, testUser, pears.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(suite.T(), err)
	}

	// Mutations for one user serialize; every add lands on the same line
	view, err := suite.service.GetCart(ctx, testUser)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.Cart.Items, 1)
	assert.Equal(suite.T(), float64(workers), view.Cart.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestMutationsInvalidateSuggestions() {
	ctx := context.Background()

	seed := func() {
		_, err := suite.cache.Put(ctx, testUser, []cart.RecipeSuggestion{{ID: "r1", Title: "Test"}})
		require.NoError(suite.T(), err)
	}
	assertInvalidated := func() {
		entry, err := suite.cache.Get(ctx, testUser)
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), entry)
	}

	seed()
	_, err := suite.service.AddItem(ctx, testUser, suite.apples.ID, 1)
	require.NoError(suite.T(), err)
	assertInvalidated()

	seed()
	_, err = suite.service.UpdateItem(ctx, testUser, suite.apples.ID, 2)
	require.NoError(suite.T(), err)
	assertInvalidated()

	seed()
	_, err = suite.service.RemoveItem(ctx, testUser, suite.apples.ID)
	require.NoError(suite.T(), err)
	assertInvalidated()

	seed()
	_, err = suite.service.ClearCart(ctx, testUser)
	require.NoError(suite.T(), err)
	assertInvalidated()
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
