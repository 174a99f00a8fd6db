package pipeline

import (
	"sort"

	"go-order-pipeline/internal/model"
)

// AggregateProducts totals order-line quantities per product label. mode picks
// between category labels and raw product names.
func AggregateProducts(lines []model.OrderLine, mode model.SummaryMode) []model.ProductTotal {
	label := categoryOf
	if mode == model.SummaryRaw {
		label = rawNameOf
	}
	return SortProductTotals(accumulate(lines, label))
}

// SortProductTotals returns totals ordered by the category priority list, with
// unlisted labels after it in alphabetical order.
func SortProductTotals(totals []model.ProductTotal) []model.ProductTotal {
	out := make([]model.ProductTotal, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := CategoryOrder(out[i].Label), CategoryOrder(out[j].Label)
		if oi != oj {
			return oi < oj
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// SumTotals is the grand total of totals.
func SumTotals(totals []model.ProductTotal) int {
	n := 0
	for _, t := range totals {
		n += t.Quantity
	}
	return n
}
