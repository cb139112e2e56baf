package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/domain/catalog"
	"github.com/marcusha429/my-ecommerce-project/pkg/errors"
)

// aiMissingItem mirrors the missing-item shape requested from the model
type aiMissingItem struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	EstimatedPrice float64 `json:"estimatedPrice"`
}

// aiRecipe mirrors the recipe shape requested from the model
type aiRecipe struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	ItemsInCart  []string        `json:"itemsInCart"`
	MissingItems []aiMissingItem `json:"missingItems"`
	Difficulty   string          `json:"difficulty"`
	CookTime     string          `json:"cookTime"`
	Servings     int             `json:"servings"`
	Instructions []string        `json:"instructions"`
}

// aiCheckResult mirrors the recipe-check shape requested from the model
type aiCheckResult struct {
	RecipeName         string          `json:"recipeName"`
	CanMake            bool            `json:"canMake"`
	PercentageComplete int             `json:"percentageComplete"`
	ItemsTheyHave      []string        `json:"itemsTheyHave"`
	MissingItems       []aiMissingItem `json:"missingItems"`
	Instructions       []string        `json:"instructions"`
	CookTime           string          `json:"cookTime"`
	Servings           int             `json:"servings"`
}

// extractJSONArray returns the first top-level JSON array substring of a
// free-text response: first '[' through the last ']'. Models routinely wrap
// payloads in prose or code fences.
func extractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// extractJSONObject returns the first top-level JSON object substring of a
// free-text response: first '{' through the last '}'.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseRecipes decodes the model's raw response into recipe payloads.
// A missing or undecodable payload returns a MALFORMED_RESPONSE error; the
// caller degrades it to zero recipes so a broken AI response never blocks
// shopping.
func parseRecipes(raw string) ([]aiRecipe, error) {
	payload, ok := extractJSONArray(raw)
	if !ok {
		return nil, errors.NewMalformedResponseError("no JSON array in response")
	}
	var recipes []aiRecipe
	if err := json.Unmarshal([]byte(payload), &recipes); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("undecodable JSON array: %v", err))
	}
	return recipes, nil
}

// parseCheckResult decodes the model's raw response into a recipe check
// payload, or reports a MALFORMED_RESPONSE error for the caller to degrade.
func parseCheckResult(raw string) (*aiCheckResult, error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return nil, errors.NewMalformedResponseError("no JSON object in response")
	}
	var result aiCheckResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("undecodable JSON object: %v", err))
	}
	return &result, nil
}

// resolveMissingItems maps AI-suggested ingredient names onto catalog
// products. An exact (case-insensitive) name match is preferred; otherwise
// the first product in catalog order whose name contains the ingredient
// name is taken. Matched items get the authoritative catalog price and
// product ID; unmatched items keep the AI's estimate.
func resolveMissingItems(items []aiMissingItem, products []catalog.Product) []cart.MissingItem {
	resolved := make([]cart.MissingItem, len(items))
	for i, item := range items {
		missing := cart.MissingItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.EstimatedPrice,
		}
		if product := matchProduct(item.Name, products); product != nil {
			id := product.ID
			missing.ProductID = &id
			missing.Price = product.Price
		}
		resolved[i] = missing
	}
	return resolved
}

// matchProduct finds the catalog product for an ingredient name
func matchProduct(name string, products []catalog.Product) *catalog.Product {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for i := range products {
		if strings.ToLower(products[i].Name) == needle {
			return &products[i]
		}
	}
	for i := range products {
		if strings.Contains(strings.ToLower(products[i].Name), needle) {
			return &products[i]
		}
	}
	return nil
}
