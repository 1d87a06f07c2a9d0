package syncdb

import (
	"sort"

	"stocktrack/domain"
)

// MergeProducts combines a local and a remote product set. The database is
// master for the attributes of any code present on both sides; codes present
// on only one side are unioned in. The result is sorted by code.
func MergeProducts(local, remote []domain.Product) []domain.Product {
	byCode := make(map[int]domain.Product, len(local)+len(remote))
	for _, p := range local {
		byCode[p.Code] = p
	}
	for _, p := range remote {
		byCode[p.Code] = p
	}
	out := make([]domain.Product, 0, len(byCode))
	for _, p := range byCode {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// MergeOrders applies the same policy to orders: remote wins on code
// collision, union otherwise, sorted by code.
func MergeOrders(local, remote []domain.Order) []domain.Order {
	byCode := make(map[int]domain.Order, len(local)+len(remote))
	for _, o := range local {
		byCode[o.Code] = o.Clone()
	}
	for _, o := range remote {
		byCode[o.Code] = o.Clone()
	}
	out := make([]domain.Order, 0, len(byCode))
	for _, o := range byCode {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
