package repository

import (
	"context"
	"testing"
	"time"

	"github.com/undhyu/storefront-api/internal/models"
)

func record(orderID string, createdAt time.Time) models.OrderRecord {
	return models.OrderRecord{
		OrderID:   orderID,
		Receipt:   "order_" + orderID,
		Amount:    10000,
		Currency:  "INR",
		Status:    models.OrderStatusCreated,
		CreatedAt: createdAt,
	}
}

func TestInMemoryOrderRepository_SaveAndList(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"order_1", "order_2", "order_3"} {
		if err := repo.Save(ctx, record(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
	}

	orders, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}

	// newest first
	want := []string{"order_3", "order_2", "order_1"}
	for i, id := range want {
		if orders[i].OrderID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, orders[i].OrderID)
		}
	}
}

func TestInMemoryOrderRepository_ListLimit(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	for _, id := range []string{"order_1", "order_2", "order_3"} {
		if err := repo.Save(ctx, record(id, time.Now().UTC())); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
	}

	orders, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderID != "order_3" {
		t.Errorf("expected newest first, got %s", orders[0].OrderID)
	}
}

func TestInMemoryOrderRepository_MarkPaid(t *testing.T) {
	repo := NewInMemoryOrderRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, record("order_1", time.Now().UTC())); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	if err := repo.MarkPaid(ctx, "order_1", "pay_9"); err != nil {
		t.Fatalf("MarkPaid() unexpected error: %v", err)
	}

	orders, _ := repo.List(ctx, 1)
	if orders[0].Status != models.OrderStatusPaid {
		t.Errorf("expected status paid, got %s", orders[0].Status)
	}
	if orders[0].PaymentID != "pay_9" {
		t.Errorf("expected payment id pay_9, got %s", orders[0].PaymentID)
	}
	if orders[0].PaidAt == nil {
		t.Error("expected paid_at to be set")
	}
}

func TestInMemoryOrderRepository_MarkPaidMissing(t *testing.T) {
	repo := NewInMemoryOrderRepository()

	if err := repo.MarkPaid(context.Background(), "order_missing", "pay_1"); err != ErrOrderNotFound {
		t.Errorf("MarkPaid() error = %v, want %v", err, ErrOrderNotFound)
	}
}
