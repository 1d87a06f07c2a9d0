package manager

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

// CreateOrder opens a draft order with a single line. The line captures the
// product's current unit price; stock is checked but not yet deducted.
func (m *Manager) CreateOrder(productCode, quantity int) (domain.Order, error) {
	if quantity <= 0 {
		return domain.Order{}, domain.NewValidationError("quantity", "must be positive", quantity)
	}
	p := m.productAt(productCode)
	if p == nil {
		return domain.Order{}, domain.NewProductNotFoundError(productCode)
	}
	if p.Quantity < quantity {
		return domain.Order{}, domain.NewInsufficientStockError(productCode, quantity, p.Quantity)
	}

	now := domain.Now()
	o := domain.Order{
		Code: m.nextOrderCode(),
		Lines: []domain.OrderLine{{
			ProductCode: productCode,
			Quantity:    quantity,
			UnitPrice:   p.UnitPrice,
		}},
		Status:         domain.OrderDraft,
		PaymentStatus:  domain.PaymentUnpaid,
		DeliveryStatus: domain.DeliveryNotShipped,
		CreatedAt:      now,
		UpdatedAt:      now,
		PaidAmount:     decimal.Zero,
	}
	m.orders = append(m.orders, o)
	if err := m.persist(); err != nil {
		return domain.Order{}, err
	}
	slog.Info("order created", "code", o.Code, "product", productCode, "quantity", quantity)
	return o.Clone(), nil
}

// AddLine adds quantity of a product to a draft order. A line for the same
// product is merged rather than duplicated; the merged line keeps its
// original captured price. The stock check covers the quantity already in
// the order for that product.
func (m *Manager) AddLine(orderCode, productCode, quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "must be positive", quantity)
	}
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status != domain.OrderDraft {
		return domain.NewNotDraftError(orderCode, o.Status)
	}
	p := m.productAt(productCode)
	if p == nil {
		return domain.NewProductNotFoundError(productCode)
	}
	requested := o.QuantityOf(productCode) + quantity
	if requested > p.Quantity {
		return domain.NewInsufficientStockError(productCode, requested, p.Quantity)
	}

	merged := false
	for i := range o.Lines {
		if o.Lines[i].ProductCode == productCode {
			o.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		o.Lines = append(o.Lines, domain.OrderLine{
			ProductCode: productCode,
			Quantity:    quantity,
			UnitPrice:   p.UnitPrice,
		})
	}
	o.UpdatedAt = domain.Now()
	return m.persist()
}

// ConfirmOrder moves a draft or pending order to confirmed after
// re-validating stock for every line.
func (m *Manager) ConfirmOrder(orderCode int) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status != domain.OrderDraft && o.Status != domain.OrderPending {
		return domain.NewInvalidTransitionError("confirm order",
			fmt.Sprintf("status is %s", o.Status))
	}
	for _, line := range o.Lines {
		p := m.productAt(line.ProductCode)
		if p == nil {
			return domain.NewProductNotFoundError(line.ProductCode)
		}
		if p.Quantity < line.Quantity {
			return domain.NewInsufficientStockError(line.ProductCode, line.Quantity, p.Quantity)
		}
	}

	o.Status = domain.OrderConfirmed
	o.UpdatedAt = domain.Now()
	m.deductIfSettled(o)
	return m.persist()
}

// PayOrder records a payment. A nil amount pays the remaining balance.
// Paying may settle the order and trigger the stock deduction.
func (m *Manager) PayOrder(orderCode int, amount *decimal.Decimal) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	paid := decimal.Zero
	if amount != nil {
		if amount.IsNegative() {
			return domain.NewValidationError("amount", "must be non-negative", *amount)
		}
		paid = *amount
	} else {
		remaining := o.TotalAmount().Sub(o.PaidAmount)
		if remaining.IsPositive() {
			paid = remaining
		}
	}

	o.PaidAmount = o.PaidAmount.Add(paid)
	o.PaidAt = domain.Now()
	o.UpdatedAt = o.PaidAt
	switch {
	case o.PaidAmount.GreaterThanOrEqual(o.TotalAmount()):
		o.PaymentStatus = domain.PaymentPaid
	case o.PaidAmount.IsPositive():
		o.PaymentStatus = domain.PaymentPartiallyPaid
	}
	m.deductIfSettled(o)
	return m.persist()
}

// DeliverOrder marks a confirmed and fully paid order as delivered.
func (m *Manager) DeliverOrder(orderCode int) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status == domain.OrderCancelled || o.Status == domain.OrderArchived {
		return domain.NewInvalidTransitionError("deliver order",
			fmt.Sprintf("status is %s", o.Status))
	}
	if o.Status != domain.OrderConfirmed {
		return domain.NewInvalidTransitionError("deliver order", "order is not confirmed")
	}
	if o.PaymentStatus != domain.PaymentPaid {
		return domain.NewInvalidTransitionError("deliver order", "order is not fully paid")
	}
	if o.DeliveryStatus == domain.DeliveryDelivered {
		return domain.NewInvalidTransitionError("deliver order", "order is already delivered")
	}

	o.DeliveryStatus = domain.DeliveryDelivered
	o.DeliveredAt = domain.Now()
	o.UpdatedAt = o.DeliveredAt
	return m.persist()
}

// CancelOrder cancels any non-archived order. When the order's stock was
// already deducted the quantities are restored, exactly once.
func (m *Manager) CancelOrder(orderCode int) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status == domain.OrderArchived {
		return domain.NewInvalidTransitionError("cancel order", "order is archived")
	}

	m.restockIfDeducted(o)
	o.Status = domain.OrderCancelled
	o.UpdatedAt = domain.Now()
	slog.Info("order cancelled", "code", o.Code)
	return m.persist()
}

// ArchiveOrder soft-deletes the order, remembering the status it had so a
// later unarchive can restore it. Archiving never restocks; only an explicit
// cancel does.
func (m *Manager) ArchiveOrder(orderCode int) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status != domain.OrderArchived {
		from := o.Status
		o.ArchivedFrom = &from
		o.Status = domain.OrderArchived
		o.UpdatedAt = domain.Now()
	}
	return m.persist()
}

// UnarchiveOrder brings an archived order back. With restore=false it
// re-enters DRAFT regardless of history; with restore=true it reinstates the
// status recorded at archive time, falling back to DRAFT when none was
// recorded.
func (m *Manager) UnarchiveOrder(orderCode int, restore bool) error {
	o := m.orderAt(orderCode)
	if o == nil {
		return domain.NewOrderNotFoundError(orderCode)
	}
	if o.Status != domain.OrderArchived {
		return domain.NewInvalidTransitionError("unarchive order", "order is not archived")
	}

	o.Status = domain.OrderDraft
	if restore && o.ArchivedFrom != nil {
		o.Status = *o.ArchivedFrom
	}
	o.ArchivedFrom = nil
	o.UpdatedAt = domain.Now()
	return m.persist()
}

// Order returns a copy of the order with the given code.
func (m *Manager) Order(code int) (domain.Order, error) {
	o := m.orderAt(code)
	if o == nil {
		return domain.Order{}, domain.NewOrderNotFoundError(code)
	}
	return o.Clone(), nil
}

// ActiveOrders returns every order that is not archived, in creation order.
func (m *Manager) ActiveOrders() []domain.Order {
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.Status != domain.OrderArchived {
			out = append(out, o.Clone())
		}
	}
	return out
}

// ArchivedOrders returns the archived orders, in creation order.
func (m *Manager) ArchivedOrders() []domain.Order {
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.Status == domain.OrderArchived {
			out = append(out, o.Clone())
		}
	}
	return out
}

// OrderHistory returns every order regardless of status.
func (m *Manager) OrderHistory() []domain.Order {
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (m *Manager) nextOrderCode() int {
	next := 1
	for _, o := range m.orders {
		if o.Code >= next {
			next = o.Code + 1
		}
	}
	return next
}
