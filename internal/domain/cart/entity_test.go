package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// CartTestSuite provides a test suite for the Cart entity
type CartTestSuite struct {
	suite.Suite
}

func item(name string, price, quantity float64) CartItem {
	return CartItem{
		ProductID: uuid.New(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		Unit:      "piece",
	}
}

func (suite *CartTestSuite) TestNewCart() {
	c := NewCart("user-1")

	assert.Equal(suite.T(), "user-1", c.UserID)
	assert.Empty(suite.T(), c.Items)
	assert.True(suite.T(), c.IsEmpty())
	assert.NotZero(suite.T(), c.CreatedAt)
}

func (suite *CartTestSuite) TestFindItem() {
	first := item("Milk", 4.29, 1)
	second := item("Eggs", 5.99, 2)
	c := NewCart("user-1")
	c.AddItem(first)
	c.AddItem(second)

	found := c.FindItem(second.ProductID)
	assert.NotNil(suite.T(), found)
	assert.Equal(suite.T(), "Eggs", found.Name)

	assert.Nil(suite.T(), c.FindItem(uuid.New()))
}

func (suite *CartTestSuite) TestSetQuantity() {
	milk := item("Milk", 4.29, 1)
	c := NewCart("user-1")
	c.AddItem(milk)

	assert.True(suite.T(), c.SetQuantity(milk.ProductID, 3))
	assert.Equal(suite.T(), 3.0, c.FindItem(milk.ProductID).Quantity)

	assert.False(suite.T(), c.SetQuantity(uuid.New(), 3))
}

func (suite *CartTestSuite) TestRemoveItem() {
	suite.Run("RemovesExistingItem_PreservesOrder", func() {
		first := item("Milk", 4.29, 1)
		second := item("Eggs", 5.99, 2)
		third := item("Bread", 4.49, 1)
		c := NewCart("user-1")
		c.AddItem(first)
		c.AddItem(second)
		c.AddItem(third)

		c.RemoveItem(second.ProductID)

		assert.Len(suite.T(), c.Items, 2)
		assert.Equal(suite.T(), "Milk", c.Items[0].Name)
		assert.Equal(suite.T(), "Bread", c.Items[1].Name)
	})

	suite.Run("AbsentItem_IsNoOp", func() {
		milk := item("Milk", 4.29, 1)
		c := NewCart("user-1")
		c.AddItem(milk)

		c.RemoveItem(uuid.New())
		c.RemoveItem(uuid.New())

		assert.Len(suite.T(), c.Items, 1)
	})
}

func (suite *CartTestSuite) TestClear() {
	c := NewCart("user-1")
	c.AddItem(item("Milk", 4.29, 1))

	c.Clear()
	assert.True(suite.T(), c.IsEmpty())

	// Clearing an empty cart stays empty
	c.Clear()
	assert.True(suite.T(), c.IsEmpty())
}

func (suite *CartTestSuite) TestClone() {
	milk := item("Milk", 4.29, 1)
	c := NewCart("user-1")
	c.AddItem(milk)

	clone := c.Clone()
	clone.SetQuantity(milk.ProductID, 99)
	clone.AddItem(item("Eggs", 5.99, 1))

	assert.Equal(suite.T(), 1.0, c.FindItem(milk.ProductID).Quantity)
	assert.Len(suite.T(), c.Items, 1)
}

func (suite *CartTestSuite) TestComputeSummary() {
	suite.Run("RoundsToTwoDecimals", func() {
		c := NewCart("user-1")
		c.AddItem(item("Pasta", 2.50, 2))
		c.AddItem(item("Cheese", 6.50, 1))

		summary := ComputeSummary(c, DefaultTaxRate)

		assert.Equal(suite.T(), 11.50, summary.Subtotal)
		assert.Equal(suite.T(), 0.92, summary.Tax)
		assert.Equal(suite.T(), 12.42, summary.Total)
		assert.Equal(suite.T(), 2, summary.ItemCount)
	})

	suite.Run("EmptyCart_AllZero", func() {
		summary := ComputeSummary(NewCart("user-1"), DefaultTaxRate)

		assert.Zero(suite.T(), summary.Subtotal)
		assert.Zero(suite.T(), summary.Tax)
		assert.Zero(suite.T(), summary.Total)
		assert.Zero(suite.T(), summary.ItemCount)
	})

	suite.Run("ItemCountIsDistinctLines", func() {
		c := NewCart("user-1")
		c.AddItem(item("Bananas", 1.99, 5))

		summary := ComputeSummary(c, DefaultTaxRate)
		assert.Equal(suite.T(), 1, summary.ItemCount)
	})

	suite.Run("FractionalQuantities", func() {
		c := NewCart("user-1")
		c.AddItem(item("Bananas", 1.99, 2.5))

		summary := ComputeSummary(c, DefaultTaxRate)
		assert.Equal(suite.T(), 4.98, summary.Subtotal)
		assert.Equal(suite.T(), 0.40, summary.Tax)
		assert.Equal(suite.T(), 5.37, summary.Total)
	})
}

func (suite *CartTestSuite) TestNormalizeDifficulty() {
	assert.Equal(suite.T(), DifficultyEasy, NormalizeDifficulty("easy"))
	assert.Equal(suite.T(), DifficultyHard, NormalizeDifficulty("Hard"))
	assert.Equal(suite.T(), DifficultyMedium, NormalizeDifficulty(""))
	assert.Equal(suite.T(), DifficultyMedium, NormalizeDifficulty("impossible"))
}

func TestCartTestSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}
