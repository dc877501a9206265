package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/undhyu/storefront-api/internal/cart"
	"github.com/undhyu/storefront-api/internal/middleware"
	"github.com/undhyu/storefront-api/internal/models"
	"github.com/undhyu/storefront-api/internal/money"
)

// CartHandler exposes the cart of the request's session.
type CartHandler struct {
	sessions *cart.SessionStore
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *cart.SessionStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		logger:   logger,
	}
}

func (h *CartHandler) aggregator(r *http.Request) (*cart.Aggregator, bool) {
	sessionID := middleware.SessionID(r.Context())
	if sessionID == "" {
		return nil, false
	}
	return h.sessions.Get(sessionID), true
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.aggregator(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, agg.View(), h.logger)
}

type addItemRequest struct {
	ProductID   string `json:"productId"`
	VariantKey  string `json:"variantKey"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	DisplayName string `json:"displayName"`
	ImageRef    string `json:"imageRef"`
}

// AddItem handles POST /api/cart/items. Quantity defaults to 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.aggregator(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.logger)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	unitPrice, err := money.Parse(req.UnitPrice)
	if err != nil {
		h.logger.Warn("invalid unit price", "unit_price", req.UnitPrice, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid unit price", h.logger)
		return
	}

	item := models.LineItem{
		ProductID:   req.ProductID,
		VariantKey:  req.VariantKey,
		UnitPrice:   unitPrice,
		Quantity:    req.Quantity,
		DisplayName: req.DisplayName,
		ImageRef:    req.ImageRef,
	}

	if err := agg.AddItem(item); err != nil {
		h.writeCartError(w, err)
		return
	}

	h.logger.Info("item added to cart",
		"session_id", middleware.SessionID(r.Context()),
		"product_id", req.ProductID,
		"variant_key", req.VariantKey,
		"quantity", req.Quantity,
	)

	WriteJSON(w, http.StatusOK, agg.View(), h.logger)
}

type updateItemRequest struct {
	ProductID  string `json:"productId"`
	VariantKey string `json:"variantKey"`
	Quantity   int    `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items. A quantity of zero or below
// removes the item.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.aggregator(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.logger)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	agg.UpdateQuantity(req.ProductID, req.VariantKey, req.Quantity)

	WriteJSON(w, http.StatusOK, agg.View(), h.logger)
}

// RemoveItem handles DELETE /api/cart/items?productId=..&variantKey=..
// Removing an absent item is a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	agg, ok := h.aggregator(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.logger)
		return
	}

	productID := r.URL.Query().Get("productId")
	if productID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	agg.RemoveItem(productID, r.URL.Query().Get("variantKey"))

	WriteJSON(w, http.StatusOK, agg.View(), h.logger)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
	case errors.Is(err, cart.ErrNegativePrice):
		WriteError(w, http.StatusBadRequest, "Unit price must not be negative", h.logger)
	default:
		h.logger.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
