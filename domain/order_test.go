package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderLineTotal(t *testing.T) {
	line := OrderLine{ProductCode: 1, Quantity: 3, UnitPrice: dec("1.50")}
	if !line.Total().Equal(dec("4.50")) {
		t.Fatalf("expected 4.50, got %s", line.Total())
	}
}

func TestOrderTotalAmount(t *testing.T) {
	o := Order{Lines: []OrderLine{
		{ProductCode: 1, Quantity: 3, UnitPrice: dec("1.50")},
		{ProductCode: 2, Quantity: 2, UnitPrice: dec("10.00")},
	}}
	if !o.TotalAmount().Equal(dec("24.50")) {
		t.Fatalf("expected 24.50, got %s", o.TotalAmount())
	}

	empty := Order{}
	if !empty.TotalAmount().Equal(decimal.Zero) {
		t.Fatalf("empty order should total zero, got %s", empty.TotalAmount())
	}
}

func TestOrderSettled(t *testing.T) {
	cases := []struct {
		name    string
		status  OrderStatus
		payment PaymentStatus
		want    bool
	}{
		{"confirmed and paid", OrderConfirmed, PaymentPaid, true},
		{"confirmed unpaid", OrderConfirmed, PaymentUnpaid, false},
		{"confirmed partially paid", OrderConfirmed, PaymentPartiallyPaid, false},
		{"draft paid", OrderDraft, PaymentPaid, false},
		{"cancelled paid", OrderCancelled, PaymentPaid, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			o := Order{Status: tc.status, PaymentStatus: tc.payment}
			if o.Settled() != tc.want {
				t.Errorf("Settled() = %v, want %v", o.Settled(), tc.want)
			}
		})
	}
}

func TestOrderQuantityOf(t *testing.T) {
	o := Order{Lines: []OrderLine{
		{ProductCode: 1, Quantity: 3},
		{ProductCode: 2, Quantity: 2},
		{ProductCode: 1, Quantity: 4},
	}}
	if got := o.QuantityOf(1); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := o.QuantityOf(99); got != 0 {
		t.Fatalf("expected 0 for absent product, got %d", got)
	}
}

func TestOrderClone_NoAliasing(t *testing.T) {
	from := OrderConfirmed
	o := Order{
		Code:         1,
		Lines:        []OrderLine{{ProductCode: 1, Quantity: 3, UnitPrice: dec("2")}},
		ArchivedFrom: &from,
	}
	c := o.Clone()
	c.Lines[0].Quantity = 99
	*c.ArchivedFrom = OrderCancelled

	if o.Lines[0].Quantity != 3 {
		t.Error("mutating the clone's lines must not affect the original")
	}
	if *o.ArchivedFrom != OrderConfirmed {
		t.Error("mutating the clone's ArchivedFrom must not affect the original")
	}
}

func TestParseStatusFallbacks(t *testing.T) {
	t.Run("order status", func(t *testing.T) {
		if st, ok := ParseOrderStatus("CONFIRMED"); !ok || st != OrderConfirmed {
			t.Errorf("expected (CONFIRMED, true), got (%s, %v)", st, ok)
		}
		if st, ok := ParseOrderStatus("SHIPPED_TO_MARS"); ok || st != OrderDraft {
			t.Errorf("expected (DRAFT, false), got (%s, %v)", st, ok)
		}
	})

	t.Run("payment status", func(t *testing.T) {
		if st, ok := ParsePaymentStatus("PARTIALLY_PAID"); !ok || st != PaymentPartiallyPaid {
			t.Errorf("expected (PARTIALLY_PAID, true), got (%s, %v)", st, ok)
		}
		if st, ok := ParsePaymentStatus(""); ok || st != PaymentUnpaid {
			t.Errorf("expected (UNPAID, false), got (%s, %v)", st, ok)
		}
	})

	t.Run("delivery status", func(t *testing.T) {
		if st, ok := ParseDeliveryStatus("RETURNED"); !ok || st != DeliveryReturned {
			t.Errorf("expected (RETURNED, true), got (%s, %v)", st, ok)
		}
		if st, ok := ParseDeliveryStatus("LOST"); ok || st != DeliveryNotShipped {
			t.Errorf("expected (NOT_SHIPPED, false), got (%s, %v)", st, ok)
		}
	})

	t.Run("product status", func(t *testing.T) {
		if st, ok := ParseProductStatus("ARCHIVED"); !ok || st != ProductArchived {
			t.Errorf("expected (ARCHIVED, true), got (%s, %v)", st, ok)
		}
		if st, ok := ParseProductStatus("DELETED"); ok || st != ProductActive {
			t.Errorf("expected (ACTIVE, false), got (%s, %v)", st, ok)
		}
	})
}
