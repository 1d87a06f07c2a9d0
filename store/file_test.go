package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

func testPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "products.json"), filepath.Join(dir, "orders.json")
}

func TestFileStore_RoundTrip(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	s := NewFileStore(productsPath, ordersPath)

	price := decimal.RequireFromString("1.50")
	products := []domain.Product{
		{Code: 1, Name: "Pen", Description: "Blue ink", Quantity: 10, UnitPrice: price, Status: domain.ProductActive},
		{Code: 2, Name: "Notebook", Quantity: 3, UnitPrice: decimal.RequireFromString("4.20"), Status: domain.ProductArchived},
	}
	from := domain.OrderConfirmed
	orders := []domain.Order{
		{
			Code:           1,
			Lines:          []domain.OrderLine{{ProductCode: 1, Quantity: 3, UnitPrice: price}},
			Status:         domain.OrderConfirmed,
			PaymentStatus:  domain.PaymentPaid,
			DeliveryStatus: domain.DeliveryNotShipped,
			CreatedAt:      domain.Now(),
			UpdatedAt:      domain.Now(),
			PaidAt:         domain.Now(),
			PaidAmount:     decimal.RequireFromString("4.50"),
			StockDeducted:  true,
		},
		{
			Code:           2,
			Lines:          []domain.OrderLine{{ProductCode: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("4.20")}},
			Status:         domain.OrderArchived,
			PaymentStatus:  domain.PaymentUnpaid,
			DeliveryStatus: domain.DeliveryNotShipped,
			PaidAmount:     decimal.Zero,
			ArchivedFrom:   &from,
		},
	}

	if err := s.Save(products, orders); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	gotProducts, gotOrders, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(gotProducts) != 2 || len(gotOrders) != 2 {
		t.Fatalf("expected 2 products and 2 orders, got %d and %d", len(gotProducts), len(gotOrders))
	}
	if gotProducts[0].Name != "Pen" || gotProducts[0].Quantity != 10 || !gotProducts[0].UnitPrice.Equal(price) {
		t.Fatalf("product did not round trip: %+v", gotProducts[0])
	}
	if gotProducts[1].Status != domain.ProductArchived {
		t.Fatalf("archived status did not round trip: %+v", gotProducts[1])
	}
	o := gotOrders[0]
	if o.Status != domain.OrderConfirmed || o.PaymentStatus != domain.PaymentPaid || !o.StockDeducted {
		t.Fatalf("order state did not round trip: %+v", o)
	}
	if !o.TotalAmount().Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("computed total changed after round trip: %s", o.TotalAmount())
	}
	if o.PaidAt.IsZero() {
		t.Fatal("paid_at lost in round trip")
	}
	if gotOrders[1].ArchivedFrom == nil || *gotOrders[1].ArchivedFrom != domain.OrderConfirmed {
		t.Fatalf("archived_from did not round trip: %+v", gotOrders[1])
	}
}

func TestFileStore_MissingFilesLoadEmpty(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	s := NewFileStore(productsPath, ordersPath)

	products, orders, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 || len(orders) != 0 {
		t.Fatalf("expected empty collections, got %d products, %d orders", len(products), len(orders))
	}
}

func TestFileStore_MalformedProductsFileLoadsEmpty(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	if err := os.WriteFile(productsPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	products, _, err := NewFileStore(productsPath, ordersPath).Load()
	if err != nil {
		t.Fatalf("load should recover, got: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty product set, got %d", len(products))
	}
}

func TestFileStore_MalformedOrderRecordIsSkipped(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	raw := `[
	  {"code_cmd": 1, "lines": [{"code_prod": 1, "quantity": 2, "price_at_order_time": 1.5}],
	   "status": "DRAFT", "payment_status": "UNPAID", "delivery_status": "NOT_SHIPPED",
	   "created_at": "2024-03-15 10:30:00", "paid_amount": 0},
	  {"code_cmd": "not-a-number", "lines": []},
	  {"lines": [], "status": "DRAFT"}
	]`
	if err := os.WriteFile(ordersPath, []byte(raw), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, orders, err := NewFileStore(productsPath, ordersPath).Load()
	if err != nil {
		t.Fatalf("load should recover, got: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 surviving order, got %d", len(orders))
	}
	if orders[0].Code != 1 {
		t.Fatalf("wrong order survived: %+v", orders[0])
	}
}

func TestFileStore_UnknownStatusFallsBackToDefault(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	rawProducts := `[{"code_prod": 1, "nom_prod": "Pen", "description": "", "quantite": 5,
	  "prix_unit": 1.5, "status": "VAPORIZED"}]`
	rawOrders := `[{"code_cmd": 1, "lines": [], "status": "TELEPORTED",
	  "payment_status": "IOU", "delivery_status": "LOST", "paid_amount": 0}]`
	if err := os.WriteFile(productsPath, []byte(rawProducts), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := os.WriteFile(ordersPath, []byte(rawOrders), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	products, orders, err := NewFileStore(productsPath, ordersPath).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 1 || products[0].Status != domain.ProductActive {
		t.Fatalf("expected ACTIVE fallback, got %+v", products)
	}
	if len(orders) != 1 {
		t.Fatalf("record with unknown enums should load, got %d orders", len(orders))
	}
	o := orders[0]
	if o.Status != domain.OrderDraft || o.PaymentStatus != domain.PaymentUnpaid || o.DeliveryStatus != domain.DeliveryNotShipped {
		t.Fatalf("expected status fallbacks, got %+v", o)
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	productsPath, ordersPath := testPaths(t)
	s := NewFileStore(productsPath, ordersPath)

	if err := s.Save(nil, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, p := range []string{productsPath + ".tmp", ordersPath + ".tmp"} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("temp file left behind: %s", p)
		}
	}
	for _, p := range []string{productsPath, ordersPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("snapshot file missing: %s", p)
		}
	}
}
