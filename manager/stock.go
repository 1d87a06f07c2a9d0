package manager

import (
	"log/slog"

	"stocktrack/domain"
)

// deductIfSettled runs after every status or payment mutation. It deducts
// each line's quantity from its product iff the order just became confirmed
// and fully paid. The StockDeducted flag is set in the same step as the
// deduction and checked first, so repeated calls while the order stays
// settled never deduct twice. Stock is re-validated before touching any
// product; either every line is deducted or none is.
func (m *Manager) deductIfSettled(o *domain.Order) {
	if o.StockDeducted || !o.Settled() {
		return
	}
	for _, line := range o.Lines {
		p := m.productAt(line.ProductCode)
		if p == nil || p.Quantity < line.Quantity {
			slog.Warn("stock deduction deferred, insufficient stock",
				"order", o.Code, "product", line.ProductCode)
			return
		}
	}
	for _, line := range o.Lines {
		m.productAt(line.ProductCode).Quantity -= line.Quantity
	}
	o.StockDeducted = true
	slog.Info("stock deducted", "order", o.Code, "lines", len(o.Lines))
}

// restockIfDeducted reverses a prior deduction, exactly once. Orders that
// never settled leave stock untouched.
func (m *Manager) restockIfDeducted(o *domain.Order) {
	if !o.StockDeducted {
		return
	}
	for _, line := range o.Lines {
		if p := m.productAt(line.ProductCode); p != nil {
			p.Quantity += line.Quantity
		}
	}
	o.StockDeducted = false
	slog.Info("stock restored", "order", o.Code, "lines", len(o.Lines))
}
