// Package manager implements the inventory and order management core. The
// Manager exclusively owns the product and order collections: all CRUD,
// lifecycle transitions, stock arithmetic and reporting go through it, and it
// persists the full snapshot after every mutation. The design is single-actor
// and synchronous; every operation runs validate, mutate, persist to
// completion before returning.
package manager

import (
	"stocktrack/domain"
)

// Manager is the sole mutator of the product and order collections.
type Manager struct {
	store    domain.SnapshotStore
	products []domain.Product
	orders   []domain.Order
}

// New loads the persisted snapshot from s and returns a Manager over it.
// Snapshot corruption is recovered inside the store; only I/O-level failures
// surface here.
func New(s domain.SnapshotStore) (*Manager, error) {
	products, orders, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{store: s, products: products, orders: orders}, nil
}

func (m *Manager) persist() error {
	return m.store.Save(m.products, m.orders)
}

// productAt returns a pointer into the owned collection, or nil. All product
// lookups route through here so there is exactly one copy of product state.
func (m *Manager) productAt(code int) *domain.Product {
	for i := range m.products {
		if m.products[i].Code == code {
			return &m.products[i]
		}
	}
	return nil
}

func (m *Manager) orderAt(code int) *domain.Order {
	for i := range m.orders {
		if m.orders[i].Code == code {
			return &m.orders[i]
		}
	}
	return nil
}
