package models

import "github.com/undhyu/storefront-api/internal/money"

// BuyerDetails holds the shipping details entered at checkout.
// Name, email, phone, address line and postal code are required.
type BuyerDetails struct {
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	AddressLine string `json:"addressLine" bson:"address_line"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode  string `json:"postalCode" bson:"postal_code"`
}

// CheckoutRequest is the snapshot handed to the order endpoint. Items are
// deep-copied from the cart so later mutation cannot alter an in-flight
// request. The client total is advisory; the backend recomputes it.
type CheckoutRequest struct {
	Buyer       BuyerDetails `json:"buyer"`
	Items       []LineItem   `json:"items"`
	TotalAmount money.Amount `json:"totalAmount"`
}

// OrderConfirmation is returned on successful order creation.
type OrderConfirmation struct {
	OrderID  string       `json:"orderId"`
	Amount   money.Amount `json:"amount"`
	Currency string       `json:"currency"`
	Status   string       `json:"status"`
}

// PaymentVerification reports the outcome of server-side payment
// verification, the authoritative success signal for a checkout.
type PaymentVerification struct {
	Success   bool         `json:"success"`
	OrderID   string       `json:"orderId"`
	PaymentID string       `json:"paymentId"`
	Amount    money.Amount `json:"amount"`
	Status    string       `json:"status"`
}
