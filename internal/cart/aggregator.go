package cart

import (
	"errors"
	"sync"

	"github.com/undhyu/storefront-api/internal/models"
	"github.com/undhyu/storefront-api/internal/money"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("unit price must not be negative")
)

// Aggregator applies add/update/remove operations to an ItemStore and
// derives totals. It guarantees at most one line item per
// (productID, variantKey) pair. All operations are safe for concurrent use;
// within one session requests arrive sequentially, so operations apply in
// the order the user issued them.
type Aggregator struct {
	mu    sync.Mutex
	store *ItemStore
}

// NewAggregator creates an aggregator over an empty store.
func NewAggregator() *Aggregator {
	return &Aggregator{store: NewItemStore()}
}

// AddItem merges the given quantity into an existing line item with the same
// (productID, variantKey), or appends a new one.
func (a *Aggregator) AddItem(item models.LineItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice < 0 {
		return ErrNegativePrice
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.store.Items()
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].VariantKey == item.VariantKey {
			items[i].Quantity += item.Quantity
			a.store.Replace(items)
			return nil
		}
	}

	a.store.Replace(append(items, item))
	return nil
}

// UpdateQuantity sets the matching item's quantity exactly. A quantity of
// zero or below removes the item. Missing items are a no-op, not an error.
func (a *Aggregator) UpdateQuantity(productID, variantKey string, quantity int) {
	if quantity <= 0 {
		a.RemoveItem(productID, variantKey)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.store.Items()
	for i := range items {
		if items[i].ProductID == productID && items[i].VariantKey == variantKey {
			items[i].Quantity = quantity
			a.store.Replace(items)
			return
		}
	}
}

// RemoveItem deletes the matching line item if present; no-op otherwise.
func (a *Aggregator) RemoveItem(productID, variantKey string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.store.Items()
	for i := range items {
		if items[i].ProductID == productID && items[i].VariantKey == variantKey {
			a.store.Replace(append(items[:i], items[i+1:]...))
			return
		}
	}
}

// Clear empties the cart.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store.Replace(nil)
}

// Items returns the current line items in insertion order.
func (a *Aggregator) Items() []models.LineItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Items()
}

// Snapshot returns a copy of the items for checkout submission. Later cart
// mutation does not affect the snapshot.
func (a *Aggregator) Snapshot() []models.LineItem {
	return a.Items()
}

// TotalItemCount is the sum of all quantities.
func (a *Aggregator) TotalItemCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for _, item := range a.store.Items() {
		count += item.Quantity
	}
	return count
}

// TotalAmount is the sum of unit price times quantity over all items.
func (a *Aggregator) TotalAmount() money.Amount {
	a.mu.Lock()
	defer a.mu.Unlock()

	var total money.Amount
	for _, item := range a.store.Items() {
		total = total.Add(item.Subtotal())
	}
	return total
}

// View assembles the client-facing cart with derived totals.
func (a *Aggregator) View() models.Cart {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := a.store.Items()
	count := 0
	var total money.Amount
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.Subtotal())
	}

	return models.Cart{
		Items:          items,
		TotalItemCount: count,
		TotalAmount:    total,
	}
}
