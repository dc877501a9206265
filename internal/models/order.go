package models

import "time"

// Order record lifecycle: created when the gateway order is opened,
// paid once server-side verification confirms the payment.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// OrderRecord is the durable record of a checkout attempt.
type OrderRecord struct {
	OrderID   string       `json:"orderId" bson:"order_id"`
	PaymentID string       `json:"paymentId,omitempty" bson:"payment_id,omitempty"`
	Receipt   string       `json:"receipt" bson:"receipt"`
	Buyer     BuyerDetails `json:"buyer" bson:"buyer"`
	Items     []LineItem   `json:"items" bson:"items"`
	Amount    int64        `json:"amount" bson:"amount"` // minor units
	Currency  string       `json:"currency" bson:"currency"`
	Status    string       `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	PaidAt    *time.Time   `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
}
