package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/undhyu/storefront-api/internal/models"
	"github.com/undhyu/storefront-api/internal/money"
	"github.com/undhyu/storefront-api/internal/payment"
	"github.com/undhyu/storefront-api/internal/repository"
)

// Gateway is the payment collaborator used to open orders and confirm
// payments.
type Gateway interface {
	CreateOrder(ctx context.Context, amount money.Amount, currency, receipt string) (*payment.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// ServiceabilityChecker reports whether a delivery pincode is covered.
type ServiceabilityChecker interface {
	Loaded() bool
	IsServiceable(pin string) bool
}

// Submitter turns a cart snapshot plus buyer details into a gateway order
// and verifies the resulting payment. Errors are terminal for the attempt;
// nothing is retried automatically.
type Submitter struct {
	gateway        Gateway
	orders         repository.OrderRepository // nil disables durable records
	serviceability ServiceabilityChecker      // nil disables the pincode check
	currency       string
	log            *slog.Logger

	mu     sync.Mutex
	status AttemptStatus
}

// NewSubmitter creates a checkout submitter. orders and serviceability may
// be nil.
func NewSubmitter(gateway Gateway, orders repository.OrderRepository, serviceability ServiceabilityChecker, currency string, log *slog.Logger) *Submitter {
	return &Submitter{
		gateway:        gateway,
		orders:         orders,
		serviceability: serviceability,
		currency:       currency,
		log:            log,
		status:         StatusIdle,
	}
}

// Status reports the state of the most recent checkout attempt.
func (s *Submitter) Status() AttemptStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Submitter) setStatus(st AttemptStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// requiredFields in display order; the first blank one is reported.
var requiredFields = []struct {
	name  string
	value func(models.BuyerDetails) string
}{
	{"name", func(b models.BuyerDetails) string { return b.Name }},
	{"email", func(b models.BuyerDetails) string { return b.Email }},
	{"phone", func(b models.BuyerDetails) string { return b.Phone }},
	{"addressLine", func(b models.BuyerDetails) string { return b.AddressLine }},
	{"postalCode", func(b models.BuyerDetails) string { return b.PostalCode }},
}

// Submit validates the snapshot and buyer details, opens a gateway order
// and records it. The caller clears the cart once payment is confirmed.
func (s *Submitter) Submit(ctx context.Context, buyer models.BuyerDetails, items []models.LineItem) (*models.OrderConfirmation, error) {
	s.setStatus(StatusValidating)

	if len(items) == 0 {
		s.setStatus(StatusFailed)
		return nil, ErrEmptyCart
	}

	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(buyer)) == "" {
			s.setStatus(StatusFailed)
			return nil, &ValidationError{Field: f.name}
		}
	}

	if s.serviceability != nil && s.serviceability.Loaded() && !s.serviceability.IsServiceable(buyer.PostalCode) {
		s.setStatus(StatusFailed)
		return nil, &ValidationError{Field: "postalCode"}
	}

	req := models.CheckoutRequest{
		Buyer: buyer,
		Items: cloneItems(items),
	}
	for _, item := range req.Items {
		req.TotalAmount = req.TotalAmount.Add(item.Subtotal())
	}

	s.setStatus(StatusSubmitting)

	receipt := "order_" + uuid.New().String()
	order, err := s.gateway.CreateOrder(ctx, req.TotalAmount, s.currency, receipt)
	if err != nil {
		s.setStatus(StatusFailed)
		s.log.Error("order submission failed", "receipt", receipt, "error", err)
		return nil, &SubmissionError{Detail: err.Error()}
	}

	if s.orders != nil {
		rec := models.OrderRecord{
			OrderID:   order.ID,
			Receipt:   receipt,
			Buyer:     buyer,
			Items:     req.Items,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Status:    models.OrderStatusCreated,
			CreatedAt: time.Now().UTC(),
		}
		// The order already exists at the gateway; a failed record write
		// must not fail the checkout.
		if err := s.orders.Save(ctx, rec); err != nil {
			s.log.Error("failed to record order", "order_id", order.ID, "error", err)
		}
	}

	s.setStatus(StatusSucceeded)
	s.log.Info("order submitted", "order_id", order.ID, "amount", order.Amount, "currency", order.Currency)

	return &models.OrderConfirmation{
		OrderID:  order.ID,
		Amount:   money.FromMinor(order.Amount),
		Currency: order.Currency,
		Status:   order.Status,
	}, nil
}

// VerifyPayment confirms a payment the gateway's client-side callback
// reported as successful. The callback alone is never trusted: the
// signature must check out and the fetched payment must be captured.
func (s *Submitter) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.PaymentVerification, error) {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		s.log.Warn("payment signature mismatch", "order_id", orderID, "payment_id", paymentID)
		return nil, &PaymentVerificationError{PaymentRef: paymentID, Reason: "invalid payment signature"}
	}

	p, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		s.log.Error("payment fetch failed", "payment_id", paymentID, "error", err)
		return nil, &PaymentVerificationError{PaymentRef: paymentID, Reason: err.Error()}
	}

	if p.Status != payment.StatusCaptured {
		return nil, &PaymentVerificationError{PaymentRef: paymentID, Reason: "payment not captured (status " + p.Status + ")"}
	}

	if s.orders != nil {
		// Verification succeeded; a stale record is a support problem,
		// not a payment problem.
		if err := s.orders.MarkPaid(ctx, orderID, paymentID); err != nil {
			s.log.Error("failed to mark order paid", "order_id", orderID, "payment_id", paymentID, "error", err)
		}
	}

	s.log.Info("payment verified", "order_id", orderID, "payment_id", paymentID, "amount", p.Amount)

	return &models.PaymentVerification{
		Success:   true,
		OrderID:   orderID,
		PaymentID: paymentID,
		Amount:    money.FromMinor(p.Amount),
		Status:    p.Status,
	}, nil
}

func cloneItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	copy(out, items)
	return out
}
