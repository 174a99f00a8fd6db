package pipeline

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"go-order-pipeline/internal/model"

	"github.com/xuri/excelize/v2"
)

// Column headers of the generated workbooks.
var (
	ShipmentColumns = []string{
		"고객주문번호", "받는분성명", "받는분전화번호", "받는분주소(전체, 분할)", "배송메세지1", "품목명", "기타1",
	}
	ManagementColumns = []string{
		"날짜", "채널", "주문번호", "상품명", "수량", "주문인", "수취인", "전화번호", "주소", "비고", "송장번호",
	}
	ProductTotalsColumns = []string{"품목", "수량"}
)

// Excel built-in number format "@" (text).
const textNumFmt = 49

// Header substrings of carrier columns holding phone numbers.
var phoneHeaderMarkers = []string{"전화", "휴대폰", "핸드폰", "연락처"}

// sheetSpec is a single-sheet workbook: headers, rows and the columns that
// must be stored as text so spreadsheet programs keep leading zeros.
type sheetSpec struct {
	headers  []string
	rows     [][]interface{}
	textCols map[int]bool
	widths   map[int]float64
}

func writeWorkbook(spec sheetSpec) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: textNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create text style: %w", err)
	}

	for i, h := range spec.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range spec.rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if spec.textCols[c] {
				if err := f.SetCellStr(sheet, cell, fmt.Sprint(v)); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(sheet, cell, cell, textStyle); err != nil {
					return nil, err
				}
				continue
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	for c, w := range spec.widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteShipmentWorkbook renders shipment records as the carrier upload sheet.
func WriteShipmentWorkbook(records []model.ShipmentRecord) ([]byte, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.CustomerOrderID,
			r.RecipientName,
			r.RecipientPhone,
			r.RecipientAddress,
			r.DeliveryMessage,
			r.ProductSummary,
			r.TotalQuantity,
		})
	}
	return writeWorkbook(sheetSpec{
		headers:  ShipmentColumns,
		rows:     rows,
		textCols: map[int]bool{0: true, 2: true},
		widths:   map[int]float64{0: 22, 2: 16, 3: 50, 4: 30, 5: 40},
	})
}

// WriteManagementWorkbook renders the order-management sheet.
func WriteManagementWorkbook(records []model.ManagementRecord) ([]byte, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date,
			r.Channel,
			r.OrderNumber,
			r.ProductSummary,
			r.TotalQuantity,
			r.Buyer,
			r.RecipientName,
			r.RecipientPhone,
			r.RecipientAddress,
			r.Remark,
			r.InvoiceNumber,
		})
	}
	return writeWorkbook(sheetSpec{
		headers:  ManagementColumns,
		rows:     rows,
		textCols: map[int]bool{2: true, 7: true, 10: true},
		widths:   map[int]float64{0: 12, 2: 22, 3: 40, 7: 16, 8: 50, 9: 30, 10: 18},
	})
}

// WriteProductTotalsWorkbook renders per-product totals with a grand total row.
func WriteProductTotalsWorkbook(totals []model.ProductTotal) ([]byte, error) {
	rows := make([][]interface{}, 0, len(totals)+1)
	for _, t := range totals {
		rows = append(rows, []interface{}{t.Label, t.Quantity})
	}
	rows = append(rows, []interface{}{"합계", SumTotals(totals)})
	return writeWorkbook(sheetSpec{
		headers: ProductTotalsColumns,
		rows:    rows,
		widths:  map[int]float64{0: 30},
	})
}

// ReorderPreservingStyle sorts the data rows of the active sheet by the text of
// sortColumn, ascending. Rows move as a whole so every cell keeps its style;
// the header row stays first.
func ReorderPreservingStyle(content []byte, sortColumn string) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	col := headerIndex(rows[0], sortColumn)
	if col < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredColumn, sortColumn)
	}

	type keyedRow struct {
		row int
		key string
	}
	n := len(rows) - 1
	keyed := make([]keyedRow, 0, n)
	for i := 1; i < len(rows); i++ {
		key := ""
		if col < len(rows[i]) {
			key = rows[i][col]
		}
		keyed = append(keyed, keyedRow{row: i + 1, key: key})
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].key < keyed[j].key })

	// Copies are appended below the data block in sorted order, then the
	// originals are removed so the copies shift up into rows 2..n+1.
	for k, kr := range keyed {
		if err := f.DuplicateRowTo(sheet, kr.row, n+2+k); err != nil {
			return nil, fmt.Errorf("copy row %d: %w", kr.row, err)
		}
	}
	for i := 0; i < n; i++ {
		if err := f.RemoveRow(sheet, 2); err != nil {
			return nil, fmt.Errorf("remove row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// AnnotateCarrierWorkbook fills the invoice column of a carrier upload
// workbook from idx, adding the column when absent. Invoice and phone columns
// are rewritten as text cells. It returns the workbook and the number of rows
// that received an invoice number.
func AnnotateCarrierWorkbook(content []byte, idx *model.InvoiceIndex) ([]byte, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, 0, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet %q is empty", sheet)
	}
	header := rows[0]
	orderCol := headerIndex(header, ColumnCustomerOrderID)
	if orderCol < 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingRequiredColumn, ColumnCustomerOrderID)
	}
	invoiceCol := headerIndex(header, ColumnInvoiceNumber)
	if invoiceCol < 0 {
		invoiceCol = len(header)
		cell, _ := excelize.CoordinatesToCellName(invoiceCol+1, 1)
		if err := f.SetCellStr(sheet, cell, ColumnInvoiceNumber); err != nil {
			return nil, 0, err
		}
	}

	textCols := []int{invoiceCol}
	for i, h := range header {
		if i != invoiceCol && isPhoneHeader(h) {
			textCols = append(textCols, i)
		}
	}
	styles := textStyles{f: f, cache: make(map[int]int)}

	matched := 0
	for r := 1; r < len(rows); r++ {
		orderID := ""
		if orderCol < len(rows[r]) {
			orderID = rows[r][orderCol]
		}
		if inv, ok := idx.Lookup(orderID); ok {
			cell, _ := excelize.CoordinatesToCellName(invoiceCol+1, r+1)
			if err := f.SetCellStr(sheet, cell, inv); err != nil {
				return nil, 0, err
			}
			matched++
		}
		for _, c := range textCols {
			if err := styles.forceText(sheet, c+1, r+1); err != nil {
				return nil, 0, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), matched, nil
}

// textStyles derives text-format variants of existing cell styles, once per
// source style.
type textStyles struct {
	f     *excelize.File
	cache map[int]int
}

func (s textStyles) forceText(sheet string, col, row int) error {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	value, err := s.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	orig, err := s.f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	styleID, ok := s.cache[orig]
	if !ok {
		style, err := s.f.GetStyle(orig)
		if err != nil || style == nil {
			style = &excelize.Style{}
		}
		style.NumFmt = textNumFmt
		style.CustomNumFmt = nil
		if styleID, err = s.f.NewStyle(style); err != nil {
			return err
		}
		s.cache[orig] = styleID
	}
	if err := s.f.SetCellStr(sheet, cell, value); err != nil {
		return err
	}
	return s.f.SetCellStyle(sheet, cell, cell, styleID)
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func isPhoneHeader(h string) bool {
	for _, m := range phoneHeaderMarkers {
		if strings.Contains(h, m) {
			return true
		}
	}
	return false
}
