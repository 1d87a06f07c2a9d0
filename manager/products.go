package manager

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

// ProductUpdate carries optional field changes for UpdateProduct. A nil
// field leaves the current value unchanged, so quantity 0 or an empty
// description are representable updates.
type ProductUpdate struct {
	Name        *string
	Description *string
	Quantity    *int
	UnitPrice   *decimal.Decimal
}

// AddProduct creates an active product with the next free code. The name
// must be unique case-insensitively across active and archived products.
func (m *Manager) AddProduct(name, description string, quantity int, price decimal.Decimal) (domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, domain.NewValidationError("name", "cannot be empty", name)
	}
	if quantity < 0 {
		return domain.Product{}, domain.NewValidationError("quantity", "must be non-negative", quantity)
	}
	if price.IsNegative() {
		return domain.Product{}, domain.NewValidationError("price", "must be non-negative", price)
	}
	if m.nameTaken(name, 0) {
		return domain.Product{}, domain.NewDuplicateNameError(name)
	}

	p := domain.Product{
		Code:        m.nextProductCode(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   price,
		Status:      domain.ProductActive,
	}
	m.products = append(m.products, p)
	if err := m.persist(); err != nil {
		return domain.Product{}, err
	}
	slog.Info("product added", "code", p.Code, "name", p.Name)
	return p, nil
}

// UpdateProduct applies the non-nil fields of upd. Renaming re-checks
// uniqueness against every other product, archived ones included.
func (m *Manager) UpdateProduct(code int, upd ProductUpdate) error {
	p := m.productAt(code)
	if p == nil {
		return domain.NewProductNotFoundError(code)
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return domain.NewValidationError("name", "cannot be empty", *upd.Name)
		}
		if m.nameTaken(*upd.Name, code) {
			return domain.NewDuplicateNameError(*upd.Name)
		}
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return domain.NewValidationError("quantity", "must be non-negative", *upd.Quantity)
	}
	if upd.UnitPrice != nil && upd.UnitPrice.IsNegative() {
		return domain.NewValidationError("price", "must be non-negative", *upd.UnitPrice)
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Quantity != nil {
		p.Quantity = *upd.Quantity
	}
	if upd.UnitPrice != nil {
		p.UnitPrice = *upd.UnitPrice
	}
	return m.persist()
}

// ArchiveProduct soft-deletes the product. Stock quantity is untouched.
func (m *Manager) ArchiveProduct(code int) error {
	p := m.productAt(code)
	if p == nil {
		return domain.NewProductNotFoundError(code)
	}
	p.Status = domain.ProductArchived
	return m.persist()
}

// UnarchiveProduct restores an archived product to active.
func (m *Manager) UnarchiveProduct(code int) error {
	p := m.productAt(code)
	if p == nil {
		return domain.NewProductNotFoundError(code)
	}
	if p.Status != domain.ProductArchived {
		return domain.NewInvalidTransitionError("unarchive product", "product is not archived")
	}
	p.Status = domain.ProductActive
	return m.persist()
}

// Product returns the product with the given code.
func (m *Manager) Product(code int) (domain.Product, error) {
	p := m.productAt(code)
	if p == nil {
		return domain.Product{}, domain.NewProductNotFoundError(code)
	}
	return *p, nil
}

// ActiveProducts returns the active products sorted by name,
// case-insensitively.
func (m *Manager) ActiveProducts() []domain.Product {
	return m.productsByStatus(domain.ProductActive)
}

// ArchivedProducts returns the archived products sorted by name,
// case-insensitively.
func (m *Manager) ArchivedProducts() []domain.Product {
	return m.productsByStatus(domain.ProductArchived)
}

func (m *Manager) productsByStatus(status domain.ProductStatus) []domain.Product {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (m *Manager) nameTaken(name string, excludeCode int) bool {
	for _, p := range m.products {
		if p.Code != excludeCode && p.NameEquals(name) {
			return true
		}
	}
	return false
}

func (m *Manager) nextProductCode() int {
	next := 1
	for _, p := range m.products {
		if p.Code >= next {
			next = p.Code + 1
		}
	}
	return next
}
