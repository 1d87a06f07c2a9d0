package manager

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

// ProductQuantity is a product name with an aggregated quantity.
type ProductQuantity struct {
	Name     string
	Quantity int
}

// ProductRevenue is a product name with an aggregated revenue.
type ProductRevenue struct {
	Name    string
	Revenue decimal.Decimal
}

// DailyRevenue is the revenue of all orders paid on a single day.
type DailyRevenue struct {
	Date    string // YYYY-MM-DD
	Revenue decimal.Decimal
}

// StockBand classifies a product's stock level.
type StockBand string

const (
	StockHealthy StockBand = "healthy" // >= 50 units
	StockMedium  StockBand = "medium"  // >= 10 units
	StockLow     StockBand = "low"
)

// StockLevel is a product with its classified stock band.
type StockLevel struct {
	Code     int
	Name     string
	Quantity int
	Band     StockBand
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	Kind      string // "order_created" or "order_paid"
	OrderCode int
	At        domain.Timestamp
	Amount    decimal.Decimal
}

func (m *Manager) productName(code int) string {
	if p := m.productAt(code); p != nil {
		return p.Name
	}
	return fmt.Sprintf("unknown (#%d)", code)
}

// MostOrderedProducts sums line quantities per product across every order
// that is neither cancelled nor archived, most ordered first.
func (m *Manager) MostOrderedProducts() []ProductQuantity {
	totals := make(map[string]int)
	for _, o := range m.orders {
		if o.Status == domain.OrderCancelled || o.Status == domain.OrderArchived {
			continue
		}
		for _, line := range o.Lines {
			totals[m.productName(line.ProductCode)] += line.Quantity
		}
	}
	out := make([]ProductQuantity, 0, len(totals))
	for name, qty := range totals {
		out = append(out, ProductQuantity{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RevenueByProduct sums line totals per product across fully paid orders,
// highest revenue first.
func (m *Manager) RevenueByProduct() []ProductRevenue {
	totals := make(map[string]decimal.Decimal)
	for _, o := range m.orders {
		if o.PaymentStatus != domain.PaymentPaid {
			continue
		}
		for _, line := range o.Lines {
			name := m.productName(line.ProductCode)
			totals[name] = totals[name].Add(line.Total())
		}
	}
	out := make([]ProductRevenue, 0, len(totals))
	for name, rev := range totals {
		out = append(out, ProductRevenue{Name: name, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// RevenueOverTime buckets order totals by the day they were paid, ascending
// by date. Orders without a payment date are skipped.
func (m *Manager) RevenueOverTime() []DailyRevenue {
	buckets := make(map[string]decimal.Decimal)
	for _, o := range m.orders {
		if o.PaymentStatus != domain.PaymentPaid || o.PaidAt.IsZero() {
			continue
		}
		day := o.PaidAt.Format("2006-01-02")
		buckets[day] = buckets[day].Add(o.TotalAmount())
	}
	out := make([]DailyRevenue, 0, len(buckets))
	for day, rev := range buckets {
		out = append(out, DailyRevenue{Date: day, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// StockLevels classifies every active product's stock, sorted by name.
func (m *Manager) StockLevels() []StockLevel {
	out := make([]StockLevel, 0, len(m.products))
	for _, p := range m.ActiveProducts() {
		band := StockLow
		switch {
		case p.Quantity >= 50:
			band = StockHealthy
		case p.Quantity >= 10:
			band = StockMedium
		}
		out = append(out, StockLevel{Code: p.Code, Name: p.Name, Quantity: p.Quantity, Band: band})
	}
	return out
}

// StatusCounts returns the number of orders per lifecycle status.
func (m *Manager) StatusCounts() map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int)
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts
}

// RecentActivity merges order-created and order-paid events, newest first,
// capped at limit.
func (m *Manager) RecentActivity(limit int) []Activity {
	var feed []Activity
	for _, o := range m.orders {
		if !o.CreatedAt.IsZero() {
			feed = append(feed, Activity{
				Kind:      "order_created",
				OrderCode: o.Code,
				At:        o.CreatedAt,
				Amount:    o.TotalAmount(),
			})
		}
		if !o.PaidAt.IsZero() {
			feed = append(feed, Activity{
				Kind:      "order_paid",
				OrderCode: o.Code,
				At:        o.PaidAt,
				Amount:    o.PaidAmount,
			})
		}
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].At.After(feed[j].At.Time) })
	if limit >= 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
