package cart

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels for recipe suggestions
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// NormalizeDifficulty maps free-form AI output onto the difficulty enum,
// defaulting to Medium for anything unrecognized.
func NormalizeDifficulty(s string) Difficulty {
	switch s {
	case "Easy", "easy":
		return DifficultyEasy
	case "Hard", "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// MissingItem is an ingredient a suggested recipe needs that is not in the
// cart. Price is the catalog price when the name resolved to a product,
// otherwise the AI's estimate; ProductID is set only on resolution.
type MissingItem struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Price     float64    `json:"price"`
	ProductID *uuid.UUID `json:"productId,omitempty"`
}

// RecipeSuggestion is one AI-generated recipe derived from cart contents
type RecipeSuggestion struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ImageURL     string           `json:"imageUrl"`
	ItemsInCart  []string         `json:"itemsInCart"`
	MissingItems []MissingItem    `json:"missingItems"`
	Instructions []string         `json:"instructions"`
	CookTime     string           `json:"cookTime"`
	Servings     int              `json:"servings"`
	Difficulty   Difficulty       `json:"difficulty"`
}

// SuggestionEntry is a cached set of recipe suggestions for one cart.
// The entry carries its own expiry so a stale read is a cache miss even
// when the backing store has not evicted it yet.
type SuggestionEntry struct {
	Recipes    []RecipeSuggestion `json:"recipes"`
	ComputedAt time.Time          `json:"lastAnalyzed"`
	ExpiresAt  time.Time          `json:"expiresAt"`
}

// IsValid reports whether the entry is still fresh at the given instant
func (e *SuggestionEntry) IsValid(now time.Time) bool {
	if e == nil || e.ExpiresAt.IsZero() {
		return false
	}
	return now.Before(e.ExpiresAt)
}

// RecipeCheckResult is the outcome of checking whether a named recipe can
// be made from the cart's items. Parse failures degrade to a canMake:false
// result instead of an error.
type RecipeCheckResult struct {
	RecipeName         string        `json:"recipeName"`
	CanMake            bool          `json:"canMake"`
	PercentageComplete int           `json:"percentageComplete"`
	ItemsTheyHave      []string      `json:"itemsTheyHave,omitempty"`
	MissingItems       []MissingItem `json:"missingItems,omitempty"`
	Instructions       []string      `json:"instructions,omitempty"`
	CookTime           string        `json:"cookTime,omitempty"`
	Servings           int           `json:"servings,omitempty"`
	Error              string        `json:"error,omitempty"`
}
