package testutils

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
)

// NewTestProduct creates a catalog product with a fresh ID
func NewTestProduct(name string, price float64, stock int, unit catalog.Unit) catalog.Product {
	return catalog.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: fmt.Sprintf("Test product %s", name),
		Price:       price,
		Stock:       stock,
		Unit:        unit,
		Category:    catalog.CategoryPantry,
	}
}

// NewTestCartItem creates a cart line item snapshotting the product
func NewTestCartItem(p catalog.Product, quantity float64) cart.CartItem {
	return cart.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Unit:      string(p.Unit),
		Image:     p.Image,
		Organic:   p.Organic,
	}
}

// NewTestCart creates a cart holding the given items
func NewTestCart(userID string, items ...cart.CartItem) *cart.Cart {
	c := cart.NewCart(userID)
	for _, item := range items {
		c.AddItem(item)
	}
	return c
}

// AnalyzeResponse renders a one-recipe AI analysis payload wrapped in prose,
// the way models actually answer
func AnalyzeResponse(title string, missingName string, missingPrice float64) string {
	return fmt.Sprintf(`Here are my suggestions:
[
  {
    "title": %q,
    "description": "A simple test dish",
    "itemsInCart": ["Spaghetti"],
    "missingItems": [{"name": %q, "quantity": 1, "unit": "lb", "estimatedPrice": %.2f}],
    "difficulty": "Easy",
    "cookTime": "20 mins",
    "servings": 2,
    "instructions": ["Boil water", "Cook pasta"]
  }
]
Enjoy!`, title, missingName, missingPrice)
}

// CheckResponse renders an AI recipe-check payload wrapped in prose
func CheckResponse(recipeName string, canMake bool, percent int) string {
	return fmt.Sprintf(`Sure, here is the analysis:
{
  "recipeName": %q,
  "canMake": %t,
  "percentageComplete": %d,
  "itemsTheyHave": ["Spaghetti"],
  "missingItems": [],
  "instructions": ["Step one", "Step two"],
  "cookTime": "25 mins",
  "servings": 4
}`, recipeName, canMake, percent)
}
