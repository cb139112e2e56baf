package suggestion

import (
	"fmt"
	"strings"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
)

// buildAnalyzePrompt builds the cart analysis prompt. The catalog product
// list constrains which names the model may propose as missing items, so
// that resolution against the catalog has a chance of succeeding.
func buildAnalyzePrompt(items []cart.CartItem, products []catalog.Product, maxRecipes int) string {
	itemNames := make([]string, len(items))
	for i, item := range items {
		itemNames[i] = item.Name
	}
	productNames := make([]string, len(products))
	for i, p := range products {
		productNames[i] = p.Name
	}

	var b strings.Builder
	b.WriteString("You are a recipe expert. Analyze shopping carts and suggest practical, healthy recipes.\n\n")
	fmt.Fprintf(&b, "Cart Items: %s\n\n", strings.Join(itemNames, ", "))
	fmt.Fprintf(&b, "Available Store Products: %s\n\n", strings.Join(productNames, ", "))
	fmt.Fprintf(&b, "Task: Suggest %d practical recipes using these cart items.\n\n", maxRecipes)
	b.WriteString(`For each recipe, provide:
1. Recipe name
2. Brief description (1 sentence)
3. Which cart items are used
4. What additional items are needed (if any, max 3 items, chosen ONLY from the available store products)
5. Difficulty level (Easy/Medium/Hard)
6. Cook time
7. Servings
8. Step-by-step instructions (5-7 steps)

IMPORTANT: Return ONLY a valid JSON array with this exact structure (no extra text before or after):
[
  {
    "title": "Recipe Name",
    "description": "Brief description",
    "itemsInCart": ["item1", "item2"],
    "missingItems": [{"name": "item", "quantity": 1, "unit": "lb", "estimatedPrice": 3.99}],
    "difficulty": "Easy",
    "cookTime": "30 mins",
    "servings": 4,
    "instructions": ["step1", "step2"]
  }
]

Only suggest recipes where the user has at least 50% of the ingredients.`)
	return b.String()
}

// buildCheckPrompt builds the ad-hoc recipe feasibility prompt
func buildCheckPrompt(recipeName string, items []cart.CartItem, products []catalog.Product) string {
	itemNames := make([]string, len(items))
	for i, item := range items {
		itemNames[i] = item.Name
	}
	productNames := make([]string, len(products))
	for i, p := range products {
		productNames[i] = p.Name
	}

	var b strings.Builder
	b.WriteString("You are a recipe expert. Check if recipes are possible with given ingredients.\n\n")
	fmt.Fprintf(&b, "User wants to make: %q\n", recipeName)
	fmt.Fprintf(&b, "They have these items: %s\n", strings.Join(itemNames, ", "))
	fmt.Fprintf(&b, "Available store products for missing items: %s\n\n", strings.Join(productNames, ", "))
	fmt.Fprintf(&b, `Analyze:
1. Can they make this recipe with what they have?
2. What additional items do they need?
3. Provide brief recipe instructions

IMPORTANT: Return ONLY a valid JSON object (no extra text before or after):
{
  "recipeName": %q,
  "canMake": true,
  "percentageComplete": 80,
  "itemsTheyHave": ["item1", "item2"],
  "missingItems": [{"name": "item", "quantity": 1, "unit": "lb", "estimatedPrice": 3.99}],
  "instructions": ["step1", "step2", "step3"],
  "cookTime": "30 mins",
  "servings": 4
}`, recipeName)
	return b.String()
}
