package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/undhyu/storefront-api/internal/cart"
	"github.com/undhyu/storefront-api/internal/checkout"
	"github.com/undhyu/storefront-api/internal/middleware"
	"github.com/undhyu/storefront-api/internal/models"
	"github.com/undhyu/storefront-api/internal/repository"
)

// CheckoutHandler drives checkout submission and payment verification for
// the request's cart session.
type CheckoutHandler struct {
	submitter *checkout.Submitter
	sessions  *cart.SessionStore
	orders    repository.OrderRepository // nil when no durable store is configured
	logger    *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(submitter *checkout.Submitter, sessions *cart.SessionStore, orders repository.OrderRepository, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		submitter: submitter,
		sessions:  sessions,
		orders:    orders,
		logger:    logger,
	}
}

type checkoutRequest struct {
	Buyer models.BuyerDetails `json:"buyer"`
}

// Checkout handles POST /api/checkout. The cart is preserved on every
// failure so the user can retry; it is cleared only once payment is
// verified.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	if sessionID == "" {
		WriteError(w, http.StatusBadRequest, "Missing cart session", h.logger)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	snapshot := h.sessions.Get(sessionID).Snapshot()

	confirmation, err := h.submitter.Submit(r.Context(), req.Buyer, snapshot)
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, confirmation, h.logger)
}

type verifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// VerifyPayment handles POST /api/verify-payment. This server-side check is
// the authoritative success signal; on success the session's cart is
// discarded.
func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		WriteError(w, http.StatusBadRequest, "orderId, paymentId and signature are required", h.logger)
		return
	}

	result, err := h.submitter.VerifyPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		var verification *checkout.PaymentVerificationError
		if errors.As(err, &verification) {
			WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":      verification.Error(),
				"paymentRef": verification.PaymentRef,
			}, h.logger)
			return
		}

		h.logger.Error("payment verification failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if sessionID != "" {
		h.sessions.Drop(sessionID)
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// ListOrders handles GET /api/orders, newest first. Without a configured
// order store the list is empty.
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"orders": []models.OrderRecord{}}, h.logger)
		return
	}

	orders, err := h.orders.List(r.Context(), 100)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if orders == nil {
		orders = []models.OrderRecord{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders}, h.logger)
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, err error) {
	var validation *checkout.ValidationError
	var submission *checkout.SubmissionError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart is empty", h.logger)
	case errors.As(err, &validation):
		WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": validation.Error(),
			"field": validation.Field,
		}, h.logger)
	case errors.As(err, &submission):
		WriteError(w, http.StatusBadGateway, submission.Detail, h.logger)
	default:
		h.logger.Error("checkout failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
