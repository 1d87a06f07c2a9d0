package store

import (
	"fmt"

	"stocktrack/domain"
)

// NewStore constructs a domain.SnapshotStore by kind: "memory" or "file".
// For the file store, provide both snapshot paths; for memory they are ignored.
func NewStore(kind, productsPath, ordersPath string) (domain.SnapshotStore, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryStore(), nil
	case "file":
		if productsPath == "" || ordersPath == "" {
			return nil, fmt.Errorf("products and orders file paths required for file store")
		}
		return NewFileStore(productsPath, ordersPath), nil
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}
