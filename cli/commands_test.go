package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
	"stocktrack/manager"
	"stocktrack/store"
)

// capture stdout during cobra execution
func captureOutput(f func() error) (string, error) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

// reset cobra + global state between tests
func resetCLI() {
	rootCmd.SetArgs(nil)
	mgr = nil
}

func newCLIManager(t *testing.T) *manager.Manager {
	t.Helper()
	m, err := manager.New(store.NewMemoryStore())
	if err != nil {
		t.Fatalf("manager setup failed: %v", err)
	}
	return m
}

func run(args ...string) (string, error) {
	return captureOutput(func() error {
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	})
}

func TestProductAddUpdateList(t *testing.T) {
	defer resetCLI()
	mgr = newCLIManager(t)

	// ADD
	out, err := run("product", "add", "--name", "Pen", "--description", "Blue ink",
		"--quantity", "10", "--price", "1.50")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	var created domain.Product
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("invalid add output: %v", err)
	}
	if created.Code != 1 || created.Quantity != 10 {
		t.Fatalf("unexpected product: %+v", created)
	}

	// UPDATE only the passed flag
	if _, err := run("product", "update", "1", "--quantity", "0"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	p, err := mgr.Product(1)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if p.Quantity != 0 {
		t.Fatalf("quantity 0 should be applied, got %d", p.Quantity)
	}
	if p.Name != "Pen" || !p.UnitPrice.Equal(decimal.RequireFromString("1.50")) {
		t.Fatalf("unpassed fields must stay, got %+v", p)
	}

	// LIST
	out, err = run("product", "list")
	if err != nil || out == "" {
		t.Fatalf("list failed")
	}

	// SHOW
	out, err = run("product", "show", "1")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if out == "" {
		t.Fatal("show printed nothing")
	}
}

func TestOrderLifecycleThroughCLI(t *testing.T) {
	defer resetCLI()
	mgr = newCLIManager(t)

	if _, err := run("product", "add", "--name", "Pen", "--quantity", "10", "--price", "1.50"); err != nil {
		t.Fatalf("add product failed: %v", err)
	}

	out, err := run("order", "create", "--product", "1", "--quantity", "3")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	var created domain.Order
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("invalid create output: %v", err)
	}

	if _, err := run("order", "confirm", "1"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := run("order", "pay", "1"); err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if _, err := run("order", "deliver", "1"); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	o, err := mgr.Order(1)
	if err != nil {
		t.Fatalf("order lookup failed: %v", err)
	}
	if o.PaymentStatus != domain.PaymentPaid || o.DeliveryStatus != domain.DeliveryDelivered {
		t.Fatalf("unexpected final state: %+v", o)
	}
	p, _ := mgr.Product(1)
	if p.Quantity != 7 {
		t.Fatalf("expected stock 7 after settling, got %d", p.Quantity)
	}
}

func TestBusinessErrorsDoNotFailTheCommand(t *testing.T) {
	defer resetCLI()
	mgr = newCLIManager(t)

	if _, err := run("product", "add", "--name", "Pen", "--quantity", "2", "--price", "1.50"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// duplicate name is an expected outcome: message, not command failure
	if _, err := run("product", "add", "--name", "pen", "--quantity", "1", "--price", "1"); err != nil {
		t.Fatalf("duplicate add should not fail the command: %v", err)
	}

	// insufficient stock likewise
	if _, err := run("order", "create", "--product", "1", "--quantity", "5"); err != nil {
		t.Fatalf("insufficient stock should not fail the command: %v", err)
	}
	if len(mgr.OrderHistory()) != 0 {
		t.Fatal("rejected order must not be created")
	}

	// malformed input is a genuine error
	if _, err := run("product", "show", "not-a-code"); err == nil {
		t.Fatal("invalid code should fail")
	}
	if _, err := run("product", "add", "--name", "X", "--price", "one-fifty"); err == nil {
		t.Fatal("invalid price should fail")
	}
}

func TestReportCommands(t *testing.T) {
	defer resetCLI()
	mgr = newCLIManager(t)

	if _, err := run("product", "add", "--name", "Pen", "--quantity", "60", "--price", "1.50"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := run("order", "create", "--product", "1", "--quantity", "2"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := run("order", "confirm", "1"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := run("order", "pay", "1"); err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	out, err := run("report", "top-products")
	if err != nil || out == "" {
		t.Fatalf("top-products failed: %v", err)
	}
	out, err = run("report", "revenue")
	if err != nil || out == "" {
		t.Fatalf("revenue failed: %v", err)
	}
	out, err = run("report", "stock-levels")
	if err != nil || out == "" {
		t.Fatalf("stock-levels failed: %v", err)
	}
	out, err = run("report", "status")
	if err != nil || out == "" {
		t.Fatalf("status failed: %v", err)
	}
	out, err = run("report", "activity", "--limit", "1")
	if err != nil || out == "" {
		t.Fatalf("activity failed: %v", err)
	}
}
