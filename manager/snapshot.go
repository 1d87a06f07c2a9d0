package manager

import "stocktrack/domain"

// ExportSnapshot returns deep copies of both collections. The sync bridge
// and reporting callers can hold the result without aliasing manager state.
func (m *Manager) ExportSnapshot() ([]domain.Product, []domain.Order) {
	products := append([]domain.Product(nil), m.products...)
	orders := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o.Clone())
	}
	return products, orders
}

// ReplaceSnapshot overwrites both collections wholesale and persists. Used
// by the sync bridge after an import or merge; the bridge owns the merge
// policy, the manager only guarantees the swap is persisted atomically with
// its own state.
func (m *Manager) ReplaceSnapshot(products []domain.Product, orders []domain.Order) error {
	m.products = append([]domain.Product(nil), products...)
	m.orders = make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		m.orders = append(m.orders, o.Clone())
	}
	return m.persist()
}
