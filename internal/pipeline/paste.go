package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/pkg/utils"
)

var (
	productKeywords  = []string{"상품", "품목", "제품", "product", "item", "name"}
	quantityKeywords = []string{"수량", "개수", "qty", "quantity", "count"}

	// "OH 케이블 3" with no delimiter: trailing digits are the quantity.
	trailingQuantity = regexp.MustCompile(`^(.*?)(\d+)$`)
)

type pasteHeader struct {
	product, quantity int
}

// ParsePasted aggregates a sales table pasted as text into per-label totals.
// Lines may be tab or comma delimited; the first line is treated as a header
// when it names both a product and a quantity column. A product field listing
// several names separated by commas splits its quantity evenly among them,
// the remainder going one each to the first names. When normalize is set,
// names are classified into categories first.
func ParsePasted(text string, normalize bool) model.PastedSalesSummary {
	var (
		header  *pasteHeader
		entries []model.ProductTotal
		index   = make(map[string]int)
		total   int
	)
	add := func(label string, qty int) {
		i, ok := index[label]
		if !ok {
			i = len(entries)
			index[label] = i
			entries = append(entries, model.ProductTotal{Label: label})
		}
		entries[i].Quantity += qty
		total += qty
	}

	first := true
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		fields := splitPasteFields(line)
		if first {
			first = false
			if h, ok := detectPasteHeader(fields); ok {
				header = &h
				continue
			}
		}

		name, qty := pasteLine(line, fields, header)
		if name == "" || qty <= 0 {
			continue
		}
		for _, part := range splitQuantity(name, qty) {
			label := part.Label
			if normalize {
				label = ClassifyProduct(label)
			}
			add(label, part.Quantity)
		}
	}
	return model.PastedSalesSummary{Entries: entries, Total: total}
}

func splitPasteFields(line string) []string {
	var fields []string
	switch {
	case strings.Contains(line, "\t"):
		fields = strings.Split(line, "\t")
	case strings.Contains(line, ","):
		fields = strings.Split(line, ",")
	default:
		fields = []string{line}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func detectPasteHeader(fields []string) (pasteHeader, bool) {
	h := pasteHeader{product: -1, quantity: -1}
	for i, f := range fields {
		if h.product < 0 && hasKeyword(f, productKeywords) {
			h.product = i
			continue
		}
		if h.quantity < 0 && hasKeyword(f, quantityKeywords) {
			h.quantity = i
		}
	}
	return h, h.product >= 0 && h.quantity >= 0
}

func hasKeyword(field string, keywords []string) bool {
	lower := strings.ToLower(field)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// pasteLine extracts the product name and quantity of one data line.
func pasteLine(line string, fields []string, header *pasteHeader) (string, int) {
	var name, qty string
	switch {
	case header != nil && len(fields) > header.product && len(fields) > header.quantity:
		name, qty = fields[header.product], fields[header.quantity]
	case len(fields) >= 2:
		name = fields[0]
		for _, f := range fields[1:] {
			if utils.ContainsDigit(f) {
				qty = f
				break
			}
		}
	default:
		m := trailingQuantity.FindStringSubmatch(line)
		if m == nil {
			return strings.TrimSpace(line), 0
		}
		name, qty = m[1], m[2]
	}
	n, err := strconv.Atoi(utils.DigitsOnly(qty))
	if err != nil {
		return strings.TrimSpace(name), 0
	}
	return strings.TrimSpace(name), n
}

// splitQuantity distributes qty over the comma separated names in name.
func splitQuantity(name string, qty int) []model.ProductTotal {
	var names []string
	for _, n := range strings.Split(name, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil
	}
	base, rem := qty/len(names), qty%len(names)
	parts := make([]model.ProductTotal, 0, len(names))
	for i, n := range names {
		q := base
		if i < rem {
			q++
		}
		if q > 0 {
			parts = append(parts, model.ProductTotal{Label: n, Quantity: q})
		}
	}
	return parts
}
