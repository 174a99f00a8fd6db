package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"go-order-pipeline/internal/model"
)

type recipientKey struct {
	name, phone, address string
}

type managementKey struct {
	channel, orderNumber string
}

// groupLines buckets lines by key, keeping groups in first-seen order and lines
// in input order within a group.
func groupLines[K comparable](lines []model.OrderLine, key func(model.OrderLine) K) [][]model.OrderLine {
	index := make(map[K]int)
	var groups [][]model.OrderLine
	for _, l := range lines {
		k := key(l)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], l)
	}
	return groups
}

// Consolidate merges order lines bound for the same recipient into shipment
// records, ordered by marketplace priority and then by sort key.
func Consolidate(lines []model.OrderLine) []model.ShipmentRecord {
	groups := groupLines(lines, func(l model.OrderLine) recipientKey {
		return recipientKey{l.RecipientName, l.RecipientPhone, l.RecipientAddress}
	})

	records := make([]model.ShipmentRecord, 0, len(groups))
	for _, g := range groups {
		first := g[0]
		entries := sumProducts(g, categoryOf)
		rec := model.ShipmentRecord{
			CustomerOrderID:  first.CustomerOrderID,
			RecipientName:    first.RecipientName,
			RecipientPhone:   first.RecipientPhone,
			RecipientAddress: first.RecipientAddress,
			DeliveryMessage:  firstNonEmpty(g, func(l model.OrderLine) string { return l.DeliveryMessage }),
			ProductSummary:   FormatProductSummary(entries),
			TotalQuantity:    totalQuantity(g),
			MarketSortOrder:  first.MarketSortOrder,
			FinalSortKey:     minSortKey(g),
			LineCount:        len(g),
		}
		records = append(records, rec)
	}
	SortShipments(records)
	return records
}

// SortShipments orders records by marketplace priority, then final sort key.
func SortShipments(records []model.ShipmentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].MarketSortOrder != records[j].MarketSortOrder {
			return records[i].MarketSortOrder < records[j].MarketSortOrder
		}
		return records[i].FinalSortKey < records[j].FinalSortKey
	})
}

// ConsolidateManagement merges lines of the same channel order into
// management records. mode selects which product view fills ProductSummary.
func ConsolidateManagement(lines []model.OrderLine, mode model.SummaryMode) []model.ManagementRecord {
	groups := groupLines(lines, func(l model.OrderLine) managementKey {
		return managementKey{l.Channel, l.CustomerOrderID}
	})

	records := make([]model.ManagementRecord, 0, len(groups))
	for _, g := range groups {
		first := g[0]
		categories := sumProducts(g, categoryOf)
		raw := sumProducts(g, rawNameOf)
		rec := model.ManagementRecord{
			Date:              firstNonEmpty(g, func(l model.OrderLine) string { return l.OrderDate }),
			Channel:           first.Channel,
			OrderNumber:       first.CustomerOrderID,
			CategorySummary:   FormatProductSummary(categories),
			RawProductSummary: FormatProductSummary(raw),
			TotalQuantity:     totalQuantity(g),
			Buyer:             firstNonEmpty(g, func(l model.OrderLine) string { return l.Buyer }),
			RecipientName:     first.RecipientName,
			RecipientPhone:    first.RecipientPhone,
			RecipientAddress:  first.RecipientAddress,
			Remark:            firstNonEmpty(g, func(l model.OrderLine) string { return l.DeliveryMessage }),
			MarketSortOrder:   first.MarketSortOrder,
			ProductRank:       ProductRank(""),
			LineCount:         len(g),
		}
		if len(categories) > 0 {
			rec.ProductRank = ProductRank(categories[0].Label)
		}
		rec.ProductSummary = rec.CategorySummary
		if mode == model.SummaryRaw {
			rec.ProductSummary = rec.RawProductSummary
		}
		records = append(records, rec)
	}
	SortManagement(records)
	return records
}

// SortManagement orders records by marketplace priority, then by the rank of
// their leading product.
func SortManagement(records []model.ManagementRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].MarketSortOrder != records[j].MarketSortOrder {
			return records[i].MarketSortOrder < records[j].MarketSortOrder
		}
		return records[i].ProductRank < records[j].ProductRank
	})
}

func categoryOf(l model.OrderLine) string { return l.ProductCategory }

func rawNameOf(l model.OrderLine) string { return l.RawProductName }

// sumProducts totals quantities per label, then orders the entries by product
// rank with ties broken by label.
func sumProducts(lines []model.OrderLine, label func(model.OrderLine) string) []model.ProductTotal {
	entries := accumulate(lines, label)
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := ProductRank(entries[i].Label), ProductRank(entries[j].Label)
		if ri != rj {
			return ri < rj
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// accumulate sums quantities per label in first-seen order.
func accumulate(lines []model.OrderLine, label func(model.OrderLine) string) []model.ProductTotal {
	index := make(map[string]int)
	var entries []model.ProductTotal
	for _, l := range lines {
		lb := label(l)
		i, ok := index[lb]
		if !ok {
			i = len(entries)
			index[lb] = i
			entries = append(entries, model.ProductTotal{Label: lb})
		}
		entries[i].Quantity += l.Quantity
	}
	return entries
}

// FormatProductSummary renders entries as "OH, PH 2개": a count suffix only
// when the quantity exceeds one.
func FormatProductSummary(entries []model.ProductTotal) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Quantity > 1 {
			parts = append(parts, fmt.Sprintf("%s %d개", e.Label, e.Quantity))
		} else {
			parts = append(parts, e.Label)
		}
	}
	return strings.Join(parts, ", ")
}

func totalQuantity(lines []model.OrderLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func minSortKey(lines []model.OrderLine) string {
	key := lines[0].InternalSortKey
	for _, l := range lines[1:] {
		if l.InternalSortKey < key {
			key = l.InternalSortKey
		}
	}
	return key
}

func firstNonEmpty(lines []model.OrderLine, field func(model.OrderLine) string) string {
	for _, l := range lines {
		if v := field(l); v != "" {
			return v
		}
	}
	return ""
}
