package pipeline

import "go-order-pipeline/internal/model"

// Sales channel names as they appear in the management sheet.
const (
	ChannelNaver   = "스마트스토어"
	ChannelCoupang = "쿠팡"
	ChannelOwn     = "자사몰"
	ChannelGmarket = "지마켓"
	ChannelAuction = "옥션"
	Channel11st    = "11번가"
)

// CoupangSortColumn is the coupang column the original workbook is reordered by.
const CoupangSortColumn = "업체상품코드"

// Registry order is detection order for both the filename and the
// column-signature pass.
var registry = []model.MarketplaceSchema{
	{
		ID:             model.MarketNaver,
		Channel:        ChannelNaver,
		FilenameMarker: "스마트스토어",
		HeaderSkipRows: 1,
		SortOrder:      1,
		Columns: map[model.Field][]string{
			model.FieldOrderID:  {"주문번호"},
			model.FieldName:     {"수취인명"},
			model.FieldPhone:    {"수취인연락처1", "수취인연락처2"},
			model.FieldAddress:  {"통합배송지", "배송지"},
			model.FieldProduct:  {"상품명"},
			model.FieldQuantity: {"수량"},
			model.FieldSortKey:  {"상품명"},
			model.FieldDate:     {"결제일", "주문일"},
			model.FieldBuyer:    {"구매자명", "주문자명"},
		},
		MessageColumns: []string{"배송메세지", "비고"},
		Required:       []string{"주문번호", "수취인명", "수취인연락처1", "통합배송지", "상품명", "수량"},
	},
	{
		ID:             model.MarketCoupang,
		Channel:        ChannelCoupang,
		FilenameMarker: "DeliveryList",
		HeaderSkipRows: 0,
		SortOrder:      2,
		Columns: map[model.Field][]string{
			model.FieldOrderID:  {"주문번호"},
			model.FieldName:     {"수취인이름"},
			model.FieldPhone:    {"수취인전화번호"},
			model.FieldAddress:  {"수취인 주소"},
			model.FieldProduct:  {"등록상품명"},
			model.FieldQuantity: {"구매수(수량)"},
			model.FieldSortKey:  {CoupangSortColumn, "등록상품명"},
			model.FieldDate:     {"주문일", "결제완료시각"},
			model.FieldBuyer:    {"주문자명", "구매자"},
		},
		MessageColumns: []string{"배송메세지", "비고"},
		Required:       []string{"주문번호", "수취인이름", "수취인전화번호", "수취인 주소", "등록상품명", "구매수(수량)"},
	},
	{
		ID:             model.MarketOwn,
		Channel:        ChannelOwn,
		FilenameMarker: "orders",
		HeaderSkipRows: 0,
		SortOrder:      3,
		Columns: map[model.Field][]string{
			model.FieldOrderID:  {"주문번호"},
			model.FieldName:     {"수령인"},
			model.FieldPhone:    {"핸드폰", "전화번호"},
			model.FieldAddress:  {"주소"},
			model.FieldProduct:  {"주문상품명"},
			model.FieldQuantity: {"수량"},
			model.FieldSortKey:  {"주문상품명"},
			model.FieldDate:     {"주문일시", "주문일"},
			model.FieldBuyer:    {"주문자", "구매자"},
		},
		MessageColumns: []string{"비고", "배송메세지"},
		Required:       []string{"주문번호", "수령인", "핸드폰", "주소", "주문상품명", "수량"},
	},
	{
		ID:             model.MarketESM,
		Channel:        ChannelGmarket,
		FilenameMarker: "신규주문",
		HeaderSkipRows: 0,
		SortOrder:      4,
		Columns: map[model.Field][]string{
			model.FieldOrderID:  {"주문번호"},
			model.FieldName:     {"수령인명"},
			model.FieldPhone:    {"수령인 휴대폰", "수령인 전화번호"},
			model.FieldAddress:  {"주소"},
			model.FieldProduct:  {"상품명"},
			model.FieldQuantity: {"수량"},
			model.FieldSortKey:  {"상품명"},
			model.FieldDate:     {"결제일시", "주문일"},
			model.FieldBuyer:    {"주문자명", "구매자명"},
		},
		MessageColumns: []string{"배송시 요구사항", "배송메세지", "비고"},
		Required:       []string{"주문번호", "수령인명", "수령인 휴대폰", "주소", "상품명", "수량"},
		Split:          &model.ChannelSplit{Prefixes: []string{"4"}, Channel: ChannelAuction},
	},
	eleventhStreet(model.Market11st, "allList", 2),
	eleventhStreet(model.Market11stManual, "11번가", 0),
}

// The automatic and the hand-made 11st exports share columns and differ only
// in their banner rows.
func eleventhStreet(id model.MarketplaceID, marker string, skip int) model.MarketplaceSchema {
	return model.MarketplaceSchema{
		ID:             id,
		Channel:        Channel11st,
		FilenameMarker: marker,
		HeaderSkipRows: skip,
		SortOrder:      5,
		Columns: map[model.Field][]string{
			model.FieldOrderID:  {"주문번호"},
			model.FieldName:     {"수취인", "받는분"},
			model.FieldPhone:    {"휴대폰번호", "수취인연락처", "전화번호"},
			model.FieldAddress:  {"주소"},
			model.FieldProduct:  {"상품명"},
			model.FieldQuantity: {"수량"},
			model.FieldSortKey:  {"상품명"},
			model.FieldDate:     {"결제일시", "주문일"},
			model.FieldBuyer:    {"구매자", "주문자"},
		},
		MessageColumns: []string{"배송메시지", "배송메세지", "비고"},
		Required:       []string{"주문번호", "주소", "상품명", "수량"},
		NameAliases:    []string{"수취인", "받는분"},
		PhoneAliases:   []string{"휴대폰번호", "수취인연락처", "전화번호"},
	}
}

// Registry returns a copy of every marketplace schema in detection order.
func Registry() []model.MarketplaceSchema {
	out := make([]model.MarketplaceSchema, len(registry))
	copy(out, registry)
	return out
}

// SchemaFor looks up a schema by id.
func SchemaFor(id model.MarketplaceID) (*model.MarketplaceSchema, bool) {
	for i := range registry {
		if registry[i].ID == id {
			s := registry[i]
			return &s, true
		}
	}
	return nil, false
}

// matchesSignature reports whether t carries every required column of s and,
// for alias-tolerant schemas, at least one name and one phone column.
func matchesSignature(s *model.MarketplaceSchema, t *model.Table) bool {
	if !t.HasAll(s.Required) {
		return false
	}
	if len(s.NameAliases) > 0 {
		if _, ok := t.FirstPresent(s.NameAliases); !ok {
			return false
		}
	}
	if len(s.PhoneAliases) > 0 {
		if _, ok := t.FirstPresent(s.PhoneAliases); !ok {
			return false
		}
	}
	return true
}
