package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/undhyu/storefront-api/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order record persistence
type OrderRepository interface {
	Save(ctx context.Context, rec models.OrderRecord) error
	MarkPaid(ctx context.Context, orderID, paymentID string) error
	List(ctx context.Context, limit int) ([]models.OrderRecord, error)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.OrderRecord
	index  map[string]int // order ID -> position in orders
}

// NewInMemoryOrderRepository creates a new in-memory order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		index: make(map[string]int),
	}
}

// Save appends a new order record.
func (r *InMemoryOrderRepository) Save(ctx context.Context, rec models.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.index[rec.OrderID] = len(r.orders)
	r.orders = append(r.orders, rec)
	return nil
}

// MarkPaid records the payment against an existing order.
func (r *InMemoryOrderRepository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[orderID]
	if !ok {
		return ErrOrderNotFound
	}

	now := time.Now().UTC()
	r.orders[i].PaymentID = paymentID
	r.orders[i].Status = models.OrderStatusPaid
	r.orders[i].PaidAt = &now
	return nil
}

// List returns up to limit records, newest first.
func (r *InMemoryOrderRepository) List(ctx context.Context, limit int) ([]models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.orders) {
		limit = len(r.orders)
	}

	out := make([]models.OrderRecord, 0, limit)
	for i := len(r.orders) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}
