package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	products := []domain.Product{
		{Code: 1, Name: "Pen", Quantity: 10, UnitPrice: decimal.RequireFromString("1.50"), Status: domain.ProductActive},
	}
	orders := []domain.Order{
		{Code: 1, Lines: []domain.OrderLine{{ProductCode: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("1.50")}}, Status: domain.OrderDraft},
	}

	if err := s.Save(products, orders); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	gotProducts, gotOrders, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(gotProducts) != 1 || len(gotOrders) != 1 {
		t.Fatalf("round trip lost records: %d products, %d orders", len(gotProducts), len(gotOrders))
	}
}

func TestMemoryStore_SaveCopies(t *testing.T) {
	s := NewMemoryStore()
	products := []domain.Product{{Code: 1, Name: "Pen", Quantity: 10}}
	orders := []domain.Order{{Code: 1, Lines: []domain.OrderLine{{ProductCode: 1, Quantity: 2}}}}

	if err := s.Save(products, orders); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// mutations after Save must not reach the stored snapshot
	products[0].Quantity = 0
	orders[0].Lines[0].Quantity = 99

	gotProducts, gotOrders, _ := s.Load()
	if gotProducts[0].Quantity != 10 {
		t.Error("stored product aliases the caller's slice")
	}
	if gotOrders[0].Lines[0].Quantity != 2 {
		t.Error("stored order lines alias the caller's slice")
	}
}

func TestMemoryStore_EmptyLoad(t *testing.T) {
	products, orders, err := NewMemoryStore().Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 || len(orders) != 0 {
		t.Fatal("fresh store should be empty")
	}
}
