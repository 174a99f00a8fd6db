package pipeline

import (
	"bytes"
	"encoding/csv"
	"testing"

	"go-order-pipeline/internal/model"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func csvSource(t *testing.T, name string, rows ...[]string) model.SourceFile {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(rows))
	return model.SourceFile{Name: name, Content: buf.Bytes()}
}

func xlsxSource(t *testing.T, name string, rows ...[]interface{}) model.SourceFile {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return model.SourceFile{Name: name, Content: buf.Bytes()}
}

func workbookRows(t *testing.T, content []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func line(name, phone, address, product string, qty int) model.OrderLine {
	return model.OrderLine{
		CustomerOrderID:  "ORD-" + name,
		RecipientName:    name,
		RecipientPhone:   phone,
		RecipientAddress: address,
		RawProductName:   product,
		ProductCategory:  ClassifyProduct(product),
		Quantity:         qty,
		InternalSortKey:  product,
		MarketSortOrder:  1,
		Marketplace:      model.MarketNaver,
		Channel:          ChannelNaver,
	}
}

var (
	naverHeader = []string{"주문번호", "수취인명", "수취인연락처1", "통합배송지", "상품명", "수량", "배송메세지", "비고", "결제일", "구매자명"}
	coupangHdr  = []interface{}{"주문번호", "수취인이름", "수취인전화번호", "수취인 주소", "등록상품명", "구매수(수량)", "업체상품코드", "배송메세지", "주문일", "주문자명"}
	eleventhHdr = []string{"주문번호", "수취인", "휴대폰번호", "주소", "상품명", "수량", "배송메시지", "결제일시", "구매자"}
	esmHeader   = []string{"주문번호", "수령인명", "수령인 휴대폰", "주소", "상품명", "수량", "배송시 요구사항", "결제일시", "주문자명"}
)
