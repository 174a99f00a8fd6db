package pipeline

import (
	"fmt"
	"strings"

	"go-order-pipeline/internal/model"
)

// Carrier export columns.
const (
	ColumnCustomerOrderID = "고객주문번호"
	ColumnInvoiceNumber   = "운송장번호"
)

// Spreadsheet libraries render missing cells as "nan"; carrier exports that
// passed through one carry it literally.
const missingSentinel = "nan"

// BuildInvoiceIndex concatenates the carrier tables and maps each customer
// order id to its invoice number. Later rows replace earlier ones for the same
// order id. Both columns must appear in at least one table.
func BuildInvoiceIndex(tables []*model.Table) (*model.InvoiceIndex, error) {
	combined := concatTables(tables)
	if missing := combined.Missing([]string{ColumnCustomerOrderID, ColumnInvoiceNumber}); len(missing) > 0 {
		return model.NewInvoiceIndex(), fmt.Errorf("%w: %s", ErrMissingRequiredColumn, strings.Join(missing, ", "))
	}

	idx := model.NewInvoiceIndex()
	for i := 0; i < combined.Len(); i++ {
		orderID := strings.TrimSpace(combined.Cell(i, ColumnCustomerOrderID))
		invoice := strings.TrimSpace(combined.Cell(i, ColumnInvoiceNumber))
		if orderID == "" || invoice == "" || invoice == missingSentinel {
			continue
		}
		idx.Put(orderID, invoice)
	}
	return idx, nil
}

// concatTables stacks tables row-wise under the union of their headers, in
// first-seen column order. Cells absent from a table read as "".
func concatTables(tables []*model.Table) *model.Table {
	var columns []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.Columns {
			if c != "" && !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}

	var rows [][]string
	for _, t := range tables {
		for i := 0; i < t.Len(); i++ {
			row := make([]string, len(columns))
			for j, c := range columns {
				row[j] = t.Cell(i, c)
			}
			rows = append(rows, row)
		}
	}
	return model.NewTable("carrier", columns, rows)
}

// ApplyInvoiceIndex returns a copy of records with invoice numbers filled from
// idx, and how many records matched. Unmatched records get an empty invoice.
func ApplyInvoiceIndex(records []model.ManagementRecord, idx *model.InvoiceIndex) ([]model.ManagementRecord, int) {
	out := make([]model.ManagementRecord, len(records))
	matched := 0
	for i, r := range records {
		r.InvoiceNumber = ""
		if inv, ok := idx.Lookup(r.OrderNumber); ok {
			r.InvoiceNumber = inv
			matched++
		}
		out[i] = r
	}
	return out, matched
}
