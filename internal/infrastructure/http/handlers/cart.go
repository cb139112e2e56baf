// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/http/middleware"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	apperrors "github.com/marcusha429/my-ecommerce-project/pkg/errors"
)

// CartHandlers handles cart REST API requests
type CartHandlers struct {
	cartService inbound.CartService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewCartHandlers creates a new cart handlers instance
func NewCartHandlers(cartService inbound.CartService, logger *zap.Logger) *CartHandlers {
	return &CartHandlers{
		cartService: cartService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// addItemRequest is the payload for POST /api/cart/add
type addItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid4"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

// updateItemRequest is the payload for PUT /api/cart/update
type updateItemRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid4"`
	Quantity  *float64 `json:"quantity" validate:"required,gte=0"`
}

// GetCart handles GET /api/cart
func (h *CartHandlers) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartService.GetCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// AddItem handles POST /api/cart/add
func (h *CartHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("productId must be a valid UUID"))
		return
	}

	view, err := h.cartService.AddItem(r.Context(), middleware.UserID(r.Context()), productID, req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// UpdateItem handles PUT /api/cart/update
func (h *CartHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("productId must be a valid UUID"))
		return
	}

	view, err := h.cartService.UpdateItem(r.Context(), middleware.UserID(r.Context()), productID, *req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/remove/{productID}
func (h *CartHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("productID must be a valid UUID"))
		return
	}

	view, err := h.cartService.RemoveItem(r.Context(), middleware.UserID(r.Context()), productID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// ClearCart handles DELETE /api/cart/clear
func (h *CartHandlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartService.ClearCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

// decode unmarshals and validates a JSON request body, writing the error
// response itself on failure
func (h *CartHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
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

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error to its HTTP status and structured body
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("An unexpected error occurred").WithCause(err)
	}

	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= 500 {
		logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Cause),
		)
	}

	writeJSON(w, logger, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}
