package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/undhyu/storefront-api/internal/cart"
	"github.com/undhyu/storefront-api/internal/middleware"
	"github.com/undhyu/storefront-api/internal/models"
	"github.com/undhyu/storefront-api/pkg/logger"
)

func sessionRequest(method, target, body, sessionID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.WithSessionID(r.Context(), sessionID))
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) models.Cart {
	t.Helper()
	var c models.Cart
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	return c
}

func TestCartHandler_GetCart_Empty(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	w := httptest.NewRecorder()
	h.GetCart(w, sessionRequest(http.MethodGet, "/api/cart", "", "s1"))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	c := decodeCart(t, w)
	if len(c.Items) != 0 || c.TotalItemCount != 0 {
		t.Errorf("expected empty cart, got %+v", c)
	}
}

func TestCartHandler_MissingSession(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	h.GetCart(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	sessions := cart.NewSessionStore()
	h := NewCartHandler(sessions, logger.New("error"))

	body := `{"productId": "p1", "variantKey": "M", "unitPrice": "499.00", "quantity": 2, "displayName": "Silk Saree"}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", body, "s1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	c := decodeCart(t, w)
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", c.Items[0].Quantity)
	}
	if c.TotalAmount.Minor() != 99800 {
		t.Errorf("total = %d, want 99800", c.TotalAmount.Minor())
	}
}

func TestCartHandler_AddItem_QuantityDefaultsToOne(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	body := `{"productId": "p1", "unitPrice": "10.00"}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", body, "s1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	c := decodeCart(t, w)
	if c.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", c.Items[0].Quantity)
	}
}

func TestCartHandler_AddItem_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{not json`},
		{name: "missing product id", body: `{"unitPrice": "10.00", "quantity": 1}`},
		{name: "bad price", body: `{"productId": "p1", "unitPrice": "abc"}`},
		{name: "negative price", body: `{"productId": "p1", "unitPrice": "-5.00"}`},
		{name: "sub-paisa price", body: `{"productId": "p1", "unitPrice": "10.005"}`},
		{name: "negative quantity", body: `{"productId": "p1", "unitPrice": "10.00", "quantity": -2}`},
	}

	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", tt.body, "s1"))

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	body := `{"productId": "p1", "unitPrice": "10.00", "quantity": 1}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", body, "s1"))
	if w.Code != http.StatusOK {
		t.Fatalf("add: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.GetCart(w, sessionRequest(http.MethodGet, "/api/cart", "", "s2"))
	if c := decodeCart(t, w); len(c.Items) != 0 {
		t.Errorf("expected s2's cart to be empty, got %d items", len(c.Items))
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	sessions := cart.NewSessionStore()
	h := NewCartHandler(sessions, logger.New("error"))

	add := `{"productId": "p1", "variantKey": "M", "unitPrice": "10.00", "quantity": 1}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", add, "s1"))

	update := `{"productId": "p1", "variantKey": "M", "quantity": 5}`
	w = httptest.NewRecorder()
	h.UpdateItem(w, sessionRequest(http.MethodPut, "/api/cart/items", update, "s1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	c := decodeCart(t, w)
	if c.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", c.Items[0].Quantity)
	}
}

func TestCartHandler_UpdateItem_ZeroRemoves(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	add := `{"productId": "p1", "unitPrice": "10.00", "quantity": 2}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", add, "s1"))

	update := `{"productId": "p1", "quantity": 0}`
	w = httptest.NewRecorder()
	h.UpdateItem(w, sessionRequest(http.MethodPut, "/api/cart/items", update, "s1"))

	if c := decodeCart(t, w); len(c.Items) != 0 {
		t.Errorf("expected empty cart after zero update, got %d items", len(c.Items))
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	add := `{"productId": "p1", "variantKey": "M", "unitPrice": "10.00"}`
	w := httptest.NewRecorder()
	h.AddItem(w, sessionRequest(http.MethodPost, "/api/cart/items", add, "s1"))

	w = httptest.NewRecorder()
	h.RemoveItem(w, sessionRequest(http.MethodDelete, "/api/cart/items?productId=p1&variantKey=M", "", "s1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if c := decodeCart(t, w); len(c.Items) != 0 {
		t.Errorf("expected empty cart after removal, got %d items", len(c.Items))
	}
}

func TestCartHandler_RemoveItem_MissingProductID(t *testing.T) {
	h := NewCartHandler(cart.NewSessionStore(), logger.New("error"))

	w := httptest.NewRecorder()
	h.RemoveItem(w, sessionRequest(http.MethodDelete, "/api/cart/items", "", "s1"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
