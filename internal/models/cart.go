package models

import "github.com/undhyu/storefront-api/internal/money"

// LineItem is a single cart entry. Two entries with the same product ID but
// different variant keys are distinct items.
type LineItem struct {
	ProductID   string       `json:"productId" bson:"product_id"`
	VariantKey  string       `json:"variantKey" bson:"variant_key"`
	UnitPrice   money.Amount `json:"unitPrice" bson:"unit_price"`
	Quantity    int          `json:"quantity" bson:"quantity"`
	DisplayName string       `json:"displayName" bson:"display_name"`
	ImageRef    string       `json:"imageRef,omitempty" bson:"image_ref,omitempty"`
}

// Key identifies the item within a cart.
func (li LineItem) Key() string {
	return li.ProductID + "|" + li.VariantKey
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() money.Amount {
	return li.UnitPrice.Mul(li.Quantity)
}

// Cart is the client-facing view of a cart session: items in insertion
// order plus derived totals.
type Cart struct {
	Items          []LineItem   `json:"items"`
	TotalItemCount int          `json:"totalItemCount"`
	TotalAmount    money.Amount `json:"totalAmount"`
}
