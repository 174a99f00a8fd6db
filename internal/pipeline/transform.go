package pipeline

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// managementDateLayout is the date format of the management sheet.
const managementDateLayout = "2006.01.02"

var orderDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"20060102",
	"01-02-06",
}

// columnSet is the resolved column name per logical field for one file.
type columnSet struct {
	orderID, name, phone, address string
	product, quantity, sortKey    string
	date, buyer                   string
	messages                      []string
}

// MapRows projects a decoded table onto order lines using the marketplace's
// column aliases. A table without an order id or quantity column yields no
// lines and an ErrMissingRequiredColumn.
func MapRows(id model.MarketplaceID, t *model.Table) ([]model.OrderLine, error) {
	s, ok := SchemaFor(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown marketplace %q", ErrUnrecognizedSource, id)
	}
	var (
		cols columnSet
		err  error
	)
	switch id {
	case model.MarketNaver:
		cols, err = naverColumns(s, t)
	case model.MarketCoupang:
		cols, err = coupangColumns(s, t)
	case model.MarketESM:
		cols, err = esmColumns(s, t)
	case model.MarketOwn:
		cols, err = ownColumns(s, t)
	case model.Market11st, model.Market11stManual:
		cols, err = eleventhStreetColumns(s, t)
	default:
		return nil, fmt.Errorf("%w: no mapper for %q", ErrUnrecognizedSource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	return projectRows(s, t, cols), nil
}

func naverColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	return resolveColumns(s, t)
}

// Coupang ties break on the seller product code when the export has it.
func coupangColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	cols, err := resolveColumns(s, t)
	if err != nil {
		return cols, err
	}
	if !t.Has(CoupangSortColumn) {
		log.Printf("⚠️ %s: no %s column, sorting by product name", t.Name, CoupangSortColumn)
	}
	return cols, nil
}

func esmColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	return resolveColumns(s, t)
}

func ownColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	return resolveColumns(s, t)
}

// 11st names its recipient and phone columns differently across export kinds;
// a file with neither alias cannot produce addressable shipments.
func eleventhStreetColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	cols, err := resolveColumns(s, t)
	if err != nil {
		return cols, err
	}
	if cols.name == "" {
		return cols, fmt.Errorf("%w: one of %s", ErrMissingRequiredColumn, strings.Join(s.NameAliases, ", "))
	}
	return cols, nil
}

func resolveColumns(s *model.MarketplaceSchema, t *model.Table) (columnSet, error) {
	pick := func(f model.Field) string {
		c, _ := t.FirstPresent(s.Aliases(f))
		return c
	}
	cols := columnSet{
		orderID:  pick(model.FieldOrderID),
		name:     pick(model.FieldName),
		phone:    pick(model.FieldPhone),
		address:  pick(model.FieldAddress),
		product:  pick(model.FieldProduct),
		quantity: pick(model.FieldQuantity),
		sortKey:  pick(model.FieldSortKey),
		date:     pick(model.FieldDate),
		buyer:    pick(model.FieldBuyer),
	}
	for _, m := range s.MessageColumns {
		if t.Has(m) {
			cols.messages = append(cols.messages, m)
		}
	}

	var missing []string
	if cols.orderID == "" {
		missing = append(missing, strings.Join(s.Aliases(model.FieldOrderID), "|"))
	}
	if cols.quantity == "" {
		missing = append(missing, strings.Join(s.Aliases(model.FieldQuantity), "|"))
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingRequiredColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func projectRows(s *model.MarketplaceSchema, t *model.Table, cols columnSet) []model.OrderLine {
	lines := make([]model.OrderLine, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		cell := func(col string) string { return strings.TrimSpace(t.Cell(i, col)) }

		orderID := normalizeOrderID(cell(cols.orderID))
		rawQty := cell(cols.quantity)
		qty, ok := utils.ParseQuantity(rawQty)
		if !ok {
			log.Printf("⚠️ %s row %d: quantity %q is not a number, using 0", t.Name, i+1, rawQty)
			qty = 0
		}
		product := cell(cols.product)

		message := ""
		for _, m := range cols.messages {
			if v := cell(m); v != "" {
				message = v
				break
			}
		}

		lines = append(lines, model.OrderLine{
			CustomerOrderID:  orderID,
			RecipientName:    cell(cols.name),
			RecipientPhone:   CleanPhone(cell(cols.phone)),
			RecipientAddress: cell(cols.address),
			DeliveryMessage:  message,
			RawProductName:   product,
			ProductCategory:  ClassifyProduct(product),
			Quantity:         qty,
			InternalSortKey:  cell(cols.sortKey),
			MarketSortOrder:  s.SortOrder,
			Marketplace:      s.ID,
			Channel:          s.ChannelFor(orderID),
			OrderDate:        formatOrderDate(cell(cols.date)),
			Buyer:            cell(cols.buyer),
			SourceFile:       t.Name,
		})
	}
	return lines
}

// Spreadsheet exports sometimes render long order numbers as floats
// ("2024031512345.0"); the integral part is the order number.
func normalizeOrderID(v string) string {
	if whole, frac, ok := strings.Cut(v, "."); ok && whole != "" && strings.Trim(frac, "0") == "" {
		if _, err := strconv.ParseUint(whole, 10, 64); err == nil {
			return whole
		}
	}
	return v
}

// formatOrderDate renders a date cell as YYYY.MM.DD. Excel serial dates are
// accepted; anything unparseable is kept as written.
func formatOrderDate(v string) string {
	if v == "" {
		return ""
	}
	for _, layout := range orderDateLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.Format(managementDateLayout)
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 1 && serial < 2958466 {
		if ts, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return ts.Format(managementDateLayout)
		}
	}
	return v
}
