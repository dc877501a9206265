package cart

import "github.com/undhyu/storefront-api/internal/models"

// ItemStore holds the authoritative line-item list for one cart session.
// Insertion order is retained for display. Only the Aggregator mutates it;
// the Aggregator also provides the locking.
type ItemStore struct {
	items []models.LineItem
}

// NewItemStore creates an empty store.
func NewItemStore() *ItemStore {
	return &ItemStore{}
}

// Items returns a copy of the current items in insertion order.
func (s *ItemStore) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Replace atomically swaps the stored sequence.
func (s *ItemStore) Replace(items []models.LineItem) {
	s.items = items
}
