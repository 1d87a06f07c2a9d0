package domain

import "github.com/shopspring/decimal"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderArchived  OrderStatus = "ARCHIVED"
)

// ParseOrderStatus maps a stored status string to an OrderStatus. Unknown
// values return (OrderDraft, false).
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderDraft, OrderPending, OrderConfirmed, OrderCancelled, OrderArchived:
		return OrderStatus(s), true
	}
	return OrderDraft, false
}

// PaymentStatus tracks how much of the order total has been paid.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus maps a stored status string to a PaymentStatus. Unknown
// values return (PaymentUnpaid, false).
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), true
	}
	return PaymentUnpaid, false
}

// DeliveryStatus tracks shipment progress of an order.
type DeliveryStatus string

const (
	DeliveryNotShipped DeliveryStatus = "NOT_SHIPPED"
	DeliveryShipped    DeliveryStatus = "SHIPPED"
	DeliveryDelivered  DeliveryStatus = "DELIVERED"
	DeliveryReturned   DeliveryStatus = "RETURNED"
)

// ParseDeliveryStatus maps a stored status string to a DeliveryStatus.
// Unknown values return (DeliveryNotShipped, false).
func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	switch DeliveryStatus(s) {
	case DeliveryNotShipped, DeliveryShipped, DeliveryDelivered, DeliveryReturned:
		return DeliveryStatus(s), true
	}
	return DeliveryNotShipped, false
}

// OrderLine is one position of an order. UnitPrice is the product's price
// captured when the line was created, not a live lookup.
type OrderLine struct {
	ProductCode int             `json:"code_prod"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price_at_order_time"`
}

// Total returns quantity times the captured unit price.
func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a customer order. Code is assigned by the manager. StockDeducted
// records whether the stock ledger already deducted this order's lines, so
// the deduction happens at most once regardless of how often the settled
// state is re-entered. ArchivedFrom remembers the status the order had when
// it was archived, so unarchiving can optionally restore it.
type Order struct {
	Code           int             `json:"code_cmd"`
	Lines          []OrderLine     `json:"lines"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	DeliveryStatus DeliveryStatus  `json:"delivery_status"`
	CreatedAt      Timestamp       `json:"created_at"`
	UpdatedAt      Timestamp       `json:"updated_at"`
	PaidAt         Timestamp       `json:"paid_at"`
	DeliveredAt    Timestamp       `json:"delivered_at"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	StockDeducted  bool            `json:"stock_deducted"`
	ArchivedFrom   *OrderStatus    `json:"archived_from,omitempty"`
}

// TotalAmount sums the line totals.
func (o Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// Settled reports whether the order is in the state that triggers stock
// deduction: confirmed and fully paid.
func (o Order) Settled() bool {
	return o.Status == OrderConfirmed && o.PaymentStatus == PaymentPaid
}

// QuantityOf returns the quantity of productCode already present across the
// order's lines.
func (o Order) QuantityOf(productCode int) int {
	total := 0
	for _, l := range o.Lines {
		if l.ProductCode == productCode {
			total += l.Quantity
		}
	}
	return total
}

// Clone returns a deep copy so callers cannot alias the manager's lines.
func (o Order) Clone() Order {
	c := o
	c.Lines = append([]OrderLine(nil), o.Lines...)
	if o.ArchivedFrom != nil {
		from := *o.ArchivedFrom
		c.ArchivedFrom = &from
	}
	return c
}
