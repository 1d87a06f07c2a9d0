// Package store provides snapshot persistence for the stock management system.
package store

import "stocktrack/domain"

// MemoryStore is an in-memory domain.SnapshotStore for ephemeral runs and
// tests. Save keeps deep copies so later manager mutations cannot alias the
// stored snapshot.
type MemoryStore struct {
	products []domain.Product
	orders   []domain.Order
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// compile-time assertion that MemoryStore implements domain.SnapshotStore
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// Load returns copies of the last saved collections.
func (s *MemoryStore) Load() ([]domain.Product, []domain.Order, error) {
	return copyProducts(s.products), copyOrders(s.orders), nil
}

// Save replaces the stored snapshot.
func (s *MemoryStore) Save(products []domain.Product, orders []domain.Order) error {
	s.products = copyProducts(products)
	s.orders = copyOrders(orders)
	return nil
}

func copyProducts(products []domain.Product) []domain.Product {
	return append([]domain.Product(nil), products...)
}

func copyOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}
