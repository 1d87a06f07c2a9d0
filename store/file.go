package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"stocktrack/domain"
)

// FileStore is a JSON file-backed implementation of domain.SnapshotStore.
// Products and orders live in two independent files; each Save rewrites both
// wholesale through a tmp-file rename so a failed write never corrupts the
// previous snapshot.
type FileStore struct {
	productsPath string
	ordersPath   string
}

// compile-time assertion
var _ domain.SnapshotStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore over the two snapshot files. Missing
// files are treated as empty collections.
func NewFileStore(productsPath, ordersPath string) *FileStore {
	return &FileStore{productsPath: productsPath, ordersPath: ordersPath}
}

// Load reads both collections. Loading is defensive: a products file that
// fails to parse yields an empty product set, and order records are decoded
// one by one so a single malformed record is skipped instead of failing the
// whole load. Unknown status strings fall back to their documented defaults.
func (s *FileStore) Load() ([]domain.Product, []domain.Order, error) {
	return loadProducts(s.productsPath), loadOrders(s.ordersPath), nil
}

func loadProducts(path string) []domain.Product {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("products snapshot unreadable, starting empty", "path", path, "error", err)
		}
		return nil
	}
	if len(b) == 0 {
		return nil
	}
	var products []domain.Product
	if err := json.Unmarshal(b, &products); err != nil {
		slog.Warn("products snapshot malformed, starting empty", "path", path, "error", err)
		return nil
	}
	for i := range products {
		st, ok := domain.ParseProductStatus(string(products[i].Status))
		if !ok {
			slog.Warn("unknown product status, defaulting",
				"product", products[i].Code, "status", products[i].Status, "default", st)
		}
		products[i].Status = st
	}
	return products
}

func loadOrders(path string) []domain.Order {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("orders snapshot unreadable, starting empty", "path", path, "error", err)
		}
		return nil
	}
	if len(b) == 0 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		slog.Warn("orders snapshot malformed, starting empty", "path", path, "error", err)
		return nil
	}
	orders := make([]domain.Order, 0, len(raw))
	for i, item := range raw {
		var o domain.Order
		if err := json.Unmarshal(item, &o); err != nil {
			slog.Warn("skipping malformed order record", "index", i, "error", err)
			continue
		}
		if o.Code <= 0 {
			slog.Warn("skipping order record without a code", "index", i)
			continue
		}
		normalizeOrderStatuses(&o)
		orders = append(orders, o)
	}
	return orders
}

func normalizeOrderStatuses(o *domain.Order) {
	if st, ok := domain.ParseOrderStatus(string(o.Status)); !ok {
		slog.Warn("unknown order status, defaulting", "order", o.Code, "status", o.Status, "default", st)
		o.Status = st
	}
	if st, ok := domain.ParsePaymentStatus(string(o.PaymentStatus)); !ok {
		slog.Warn("unknown payment status, defaulting", "order", o.Code, "status", o.PaymentStatus, "default", st)
		o.PaymentStatus = st
	}
	if st, ok := domain.ParseDeliveryStatus(string(o.DeliveryStatus)); !ok {
		slog.Warn("unknown delivery status, defaulting", "order", o.Code, "status", o.DeliveryStatus, "default", st)
		o.DeliveryStatus = st
	}
	if o.ArchivedFrom != nil {
		if st, ok := domain.ParseOrderStatus(string(*o.ArchivedFrom)); !ok {
			slog.Warn("unknown archived-from status, dropping", "order", o.Code, "status", *o.ArchivedFrom)
			o.ArchivedFrom = nil
		} else {
			*o.ArchivedFrom = st
		}
	}
}

// Save rewrites both snapshot files. I/O errors propagate to the caller;
// there is no partial-success state to fall back to.
func (s *FileStore) Save(products []domain.Product, orders []domain.Order) error {
	if products == nil {
		products = []domain.Product{}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	if err := writeJSON(s.productsPath, products); err != nil {
		return err
	}
	return writeJSON(s.ordersPath, orders)
}

func writeJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
