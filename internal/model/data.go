package model

import "strings"

// Table is decoded tabular data with named columns. Cells are kept as strings;
// absent cells read as "".
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
	index   map[string]int
}

// NewTable builds a table and indexes its columns. When a header name repeats,
// the first occurrence wins.
func NewTable(name string, columns []string, rows [][]string) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether col is a header of the table.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// HasAll reports whether every name in cols is present.
func (t *Table) HasAll(cols []string) bool {
	for _, c := range cols {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// Missing lists the names of cols absent from the table, in the given order.
func (t *Table) Missing(cols []string) []string {
	var out []string
	for _, c := range cols {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// FirstPresent returns the first alias that is a column of the table.
func (t *Table) FirstPresent(aliases []string) (string, bool) {
	for _, a := range aliases {
		if t.Has(a) {
			return a, true
		}
	}
	return "", false
}

// Cell returns the value of col in row, or "" when either is out of range.
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if i >= len(r) {
		return ""
	}
	return r[i]
}

// OrderLine is one marketplace line item normalized to the common schema.
type OrderLine struct {
	CustomerOrderID  string        `json:"customer_order_id" validate:"required"`
	RecipientName    string        `json:"recipient_name"`
	RecipientPhone   string        `json:"recipient_phone" validate:"omitempty,numeric"`
	RecipientAddress string        `json:"recipient_address"`
	DeliveryMessage  string        `json:"delivery_message"`
	RawProductName   string        `json:"raw_product_name"`
	ProductCategory  string        `json:"product_category"`
	Quantity         int           `json:"quantity" validate:"gte=0"`
	InternalSortKey  string        `json:"internal_sort_key"`
	MarketSortOrder  int           `json:"market_sort_order" validate:"gte=1"`
	Marketplace      MarketplaceID `json:"marketplace" validate:"required"`
	Channel          string        `json:"channel"`
	OrderDate        string        `json:"order_date"`
	Buyer            string        `json:"buyer"`
	SourceFile       string        `json:"source_file"`
}

// ShipmentRecord is one consolidated carrier-upload row.
type ShipmentRecord struct {
	CustomerOrderID  string `json:"customer_order_id"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	DeliveryMessage  string `json:"delivery_message"`
	ProductSummary   string `json:"product_summary"`
	TotalQuantity    int    `json:"total_quantity"`
	MarketSortOrder  int    `json:"market_sort_order"`
	FinalSortKey     string `json:"final_sort_key"`
	LineCount        int    `json:"line_count"`
}

// ManagementRecord is one consolidated order-management row, keyed by
// channel and order number.
type ManagementRecord struct {
	Date              string `json:"date"`
	Channel           string `json:"channel"`
	OrderNumber       string `json:"order_number"`
	ProductSummary    string `json:"product_summary"` // view selected by SummaryMode
	CategorySummary   string `json:"category_summary"`
	RawProductSummary string `json:"raw_product_summary"`
	TotalQuantity     int    `json:"total_quantity"`
	Buyer             string `json:"buyer"`
	RecipientName     string `json:"recipient_name"`
	RecipientPhone    string `json:"recipient_phone"`
	RecipientAddress  string `json:"recipient_address"`
	Remark            string `json:"remark"`
	InvoiceNumber     string `json:"invoice_number"`
	MarketSortOrder   int    `json:"market_sort_order"`
	ProductRank       int    `json:"product_rank"`
	LineCount         int    `json:"line_count"`
}

// InvoiceIndex maps customer order ids to carrier invoice numbers.
type InvoiceIndex struct {
	m map[string]string
}

// NewInvoiceIndex returns an empty index.
func NewInvoiceIndex() *InvoiceIndex {
	return &InvoiceIndex{m: make(map[string]string)}
}

// Put stores an entry, replacing any previous invoice for the same order id.
func (x *InvoiceIndex) Put(orderID, invoice string) {
	x.m[strings.TrimSpace(orderID)] = strings.TrimSpace(invoice)
}

// Lookup returns the invoice number for orderID.
func (x *InvoiceIndex) Lookup(orderID string) (string, bool) {
	if x == nil {
		return "", false
	}
	v, ok := x.m[strings.TrimSpace(orderID)]
	return v, ok
}

// Len returns the number of distinct order ids.
func (x *InvoiceIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.m)
}

// ProductTotal is a product label with its aggregated quantity.
type ProductTotal struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// PastedSalesSummary is the aggregate of a pasted sales table. Entries keep the
// order in which labels were first seen.
type PastedSalesSummary struct {
	Entries []ProductTotal `json:"entries"`
	Total   int            `json:"total"`
}

// Quantities returns the summary as a label to quantity mapping.
func (s PastedSalesSummary) Quantities() map[string]int {
	out := make(map[string]int, len(s.Entries))
	for _, e := range s.Entries {
		out[e.Label] = e.Quantity
	}
	return out
}
