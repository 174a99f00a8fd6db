package pipeline

import (
	"testing"

	"go-order-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRowsNaver(t *testing.T) {
	table := model.NewTable("스마트스토어.csv", naverHeader, [][]string{
		{"2024031400001", "김철수", "010-1111-2222", "서울시 강남구 1", "OH 번호판 가드", "2", "", "문앞에 놓아주세요", "2024-03-14 09:12:00", "김영수"},
		{"2024031400002", "김철수", "010-1111-2222", "서울시 강남구 1", "PHONE 거치대", "1", "경비실", "", "2024-03-14", "김영수"},
	})
	lines, err := MapRows(model.MarketNaver, table)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, "2024031400001", first.CustomerOrderID)
	assert.Equal(t, "김철수", first.RecipientName)
	assert.Equal(t, "01011112222", first.RecipientPhone)
	assert.Equal(t, "서울시 강남구 1", first.RecipientAddress)
	assert.Equal(t, "문앞에 놓아주세요", first.DeliveryMessage)
	assert.Equal(t, "OH 번호판 가드", first.RawProductName)
	assert.Equal(t, CategoryOH, first.ProductCategory)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "OH 번호판 가드", first.InternalSortKey)
	assert.Equal(t, 1, first.MarketSortOrder)
	assert.Equal(t, ChannelNaver, first.Channel)
	assert.Equal(t, "2024.03.14", first.OrderDate)
	assert.Equal(t, "김영수", first.Buyer)

	// 배송메세지 is checked before 비고
	assert.Equal(t, "경비실", lines[1].DeliveryMessage)
	assert.Equal(t, CategoryPH, lines[1].ProductCategory)
}

func TestMapRowsCoupangSortKey(t *testing.T) {
	header := make([]string, len(coupangHdr))
	for i, h := range coupangHdr {
		header[i] = h.(string)
	}
	table := model.NewTable("DeliveryList.xlsx", header, [][]string{
		{"300", "이영희", "010-5555-6666", "대전시", "케이블 스위치", "3", "C-200", "", "2024-03-13", "이영희"},
	})
	lines, err := MapRows(model.MarketCoupang, table)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "C-200", lines[0].InternalSortKey)
	assert.Equal(t, CategoryCableSwitch, lines[0].ProductCategory)
	assert.Equal(t, 2, lines[0].MarketSortOrder)
	assert.Equal(t, ChannelCoupang, lines[0].Channel)
}

func TestMapRowsESMChannels(t *testing.T) {
	table := model.NewTable("신규주문.xlsx", esmHeader, [][]string{
		{"1001", "가", "010-1", "주소1", "SH", "1", "", "", ""},
		{"4001", "나", "010-2", "주소2", "SH", "1", "", "", ""},
	})
	lines, err := MapRows(model.MarketESM, table)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, ChannelGmarket, lines[0].Channel)
	assert.Equal(t, ChannelAuction, lines[1].Channel)
	assert.Equal(t, 4, lines[1].MarketSortOrder)
}

func TestMapRowsElevenStreetAliases(t *testing.T) {
	table := model.NewTable("11번가.xlsx",
		[]string{"주문번호", "받는분", "전화번호", "주소", "상품명", "수량", "비고"},
		[][]string{{"7", "박지성", "02-123-4567", "인천", "도막 측정기", "1", "파손주의"}},
	)
	lines, err := MapRows(model.Market11stManual, table)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "박지성", lines[0].RecipientName)
	assert.Equal(t, "021234567", lines[0].RecipientPhone)
	assert.Equal(t, "파손주의", lines[0].DeliveryMessage)
	assert.Equal(t, Channel11st, lines[0].Channel)
}

func TestMapRowsMissingRequiredColumn(t *testing.T) {
	table := model.NewTable("orders.csv",
		[]string{"주문번호", "수령인", "핸드폰", "주소", "주문상품명"},
		[][]string{{"1", "a", "010", "addr", "OH"}},
	)
	lines, err := MapRows(model.MarketOwn, table)
	assert.ErrorIs(t, err, ErrMissingRequiredColumn)
	assert.Nil(t, lines)

	noName := model.NewTable("11번가.csv",
		[]string{"주문번호", "주소", "상품명", "수량"},
		[][]string{{"1", "addr", "OH", "1"}},
	)
	_, err = MapRows(model.Market11st, noName)
	assert.ErrorIs(t, err, ErrMissingRequiredColumn)

	_, err = MapRows("unknown", noName)
	assert.ErrorIs(t, err, ErrUnrecognizedSource)
}

func TestMapRowsNonNumericQuantity(t *testing.T) {
	table := model.NewTable("orders.csv",
		[]string{"주문번호", "수령인", "핸드폰", "주소", "주문상품명", "수량"},
		[][]string{
			{"1", "a", "010", "addr", "OH", "두개"},
			{"2", "a", "010", "addr", "PH", ""},
			{"3", "a", "010", "addr", "SH", "1,200"},
		},
	)
	lines, err := MapRows(model.MarketOwn, table)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 0, lines[0].Quantity)
	assert.Equal(t, 0, lines[1].Quantity)
	assert.Equal(t, 1200, lines[2].Quantity)
}

func TestNormalizeOrderID(t *testing.T) {
	assert.Equal(t, "2024031512345", normalizeOrderID("2024031512345.0"))
	assert.Equal(t, "2024031512345", normalizeOrderID("2024031512345"))
	assert.Equal(t, "A-100.5", normalizeOrderID("A-100.5"))
	assert.Equal(t, "", normalizeOrderID(""))
}

func TestFormatOrderDate(t *testing.T) {
	assert.Equal(t, "2024.03.14", formatOrderDate("2024-03-14 10:22:00"))
	assert.Equal(t, "2024.03.14", formatOrderDate("2024.03.14"))
	assert.Equal(t, "2024.03.14", formatOrderDate("20240314"))
	assert.Equal(t, "2024.03.14", formatOrderDate("45365"))
	assert.Equal(t, "어제", formatOrderDate("어제"))
	assert.Equal(t, "", formatOrderDate(""))
}
