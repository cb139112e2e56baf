package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/domain/cart"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/http/middleware"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	apperrors "github.com/marcusha429/my-ecommerce-project/pkg/errors"
)

// AIHandlers handles AI suggestion API requests
type AIHandlers struct {
	suggestionService inbound.SuggestionService
	validate          *validator.Validate
	logger            *zap.Logger
}

// NewAIHandlers creates a new AI handlers instance
func NewAIHandlers(suggestionService inbound.SuggestionService, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{
		suggestionService: suggestionService,
		validate:          validator.New(),
		logger:            logger,
	}
}

// checkRecipeRequest is the payload for POST /api/ai/check-recipe
type checkRecipeRequest struct {
	RecipeName string          `json:"recipeName" validate:"required,min=1,max=200"`
	CartItems  []cart.CartItem `json:"cartItems,omitempty"`
}

// AnalyzeCart handles POST /api/ai/analyze-cart. When the AI service is
// unavailable the response degrades to an empty suggestion list so the
// storefront keeps working.
func (h *AIHandlers) AnalyzeCart(w http.ResponseWriter, r *http.Request) {
	result, err := h.suggestionService.AnalyzeCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeExternalServiceError {
			h.logger.Warn("Degrading cart analysis to empty suggestions",
				zap.String("user_id", middleware.UserID(r.Context())),
				zap.Error(appErr.Cause),
			)
			writeJSON(w, h.logger, http.StatusOK, inbound.AnalyzeResult{
				Recipes:    []cart.RecipeSuggestion{},
				Cached:     false,
				AnalyzedAt: time.Now(),
			})
			return
		}
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// CheckRecipe handles POST /api/ai/check-recipe
func (h *AIHandlers) CheckRecipe(w http.ResponseWriter, r *http.Request) {
	var req checkRecipeRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.suggestionService.CheckCustomRecipe(
		r.Context(),
		middleware.UserID(r.Context()),
		req.RecipeName,
		req.CartItems,
	)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *AIHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid JSON body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}
