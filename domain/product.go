// Package domain defines core business types and interfaces.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductStatus is the archive state of a product. Products are never
// physically deleted; archiving hides them from the active listing.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductArchived ProductStatus = "ARCHIVED"
)

// ParseProductStatus maps a stored status string to a ProductStatus. Unknown
// values return (ProductActive, false) so loaders can fall back to the
// default after flagging the record.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(s) {
	case ProductActive, ProductArchived:
		return ProductStatus(s), true
	}
	return ProductActive, false
}

// Product represents a stocked product. Code is assigned by the manager and
// immutable once created; Name is unique case-insensitively across the whole
// product set, archived products included.
type Product struct {
	Code        int             `json:"code_prod"`
	Name        string          `json:"nom_prod"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantite"`
	UnitPrice   decimal.Decimal `json:"prix_unit"`
	Status      ProductStatus   `json:"status"`
}

// NameEquals reports whether the product's name matches s case-insensitively.
func (p Product) NameEquals(s string) bool {
	return strings.EqualFold(p.Name, s)
}

// SnapshotStore persists the full application state: the product and order
// collections are rewritten wholesale after every mutation.
type SnapshotStore interface {
	Load() (products []Product, orders []Order, err error)
	Save(products []Product, orders []Order) error
}
