package model

import "strings"

// MarketplaceID identifies one of the fixed marketplace export formats.
type MarketplaceID string

const (
	MarketNaver      MarketplaceID = "naver"
	MarketCoupang    MarketplaceID = "coupang"
	MarketOwn        MarketplaceID = "own"
	MarketESM        MarketplaceID = "esm"
	Market11st       MarketplaceID = "11st"
	Market11stManual MarketplaceID = "11st_manual"
)

// Field is a logical column of the common order-line schema.
type Field string

const (
	FieldOrderID  Field = "order_id"
	FieldName     Field = "recipient_name"
	FieldPhone    Field = "recipient_phone"
	FieldAddress  Field = "recipient_address"
	FieldProduct  Field = "product_name"
	FieldQuantity Field = "quantity"
	FieldSortKey  Field = "sort_key"
	FieldDate     Field = "order_date"
	FieldBuyer    Field = "buyer"
)

// ChannelSplit routes a marketplace's orders to an alternate channel when the
// order number starts with one of Prefixes.
type ChannelSplit struct {
	Prefixes []string `json:"prefixes"`
	Channel  string   `json:"channel"`
}

// MarketplaceSchema is the static description of one marketplace export.
type MarketplaceSchema struct {
	ID             MarketplaceID `json:"id"`
	Channel        string        `json:"channel"`
	FilenameMarker string        `json:"filename_marker"`
	HeaderSkipRows int           `json:"header_skip_rows"`
	SortOrder      int           `json:"sort_order"`
	// Columns holds the ordered aliases per logical field.
	Columns map[Field][]string `json:"columns"`
	// MessageColumns are checked in priority order; first non-empty wins.
	MessageColumns []string `json:"message_columns"`
	// Required is the column signature used by detection.
	Required     []string      `json:"required"`
	NameAliases  []string      `json:"name_aliases,omitempty"`
	PhoneAliases []string      `json:"phone_aliases,omitempty"`
	Split        *ChannelSplit `json:"split,omitempty"`
}

// Aliases returns the ordered candidate column names for f.
func (s *MarketplaceSchema) Aliases(f Field) []string {
	return s.Columns[f]
}

// ChannelFor returns the management channel for an order number.
func (s *MarketplaceSchema) ChannelFor(orderNumber string) string {
	if s.Split == nil {
		return s.Channel
	}
	for _, p := range s.Split.Prefixes {
		if p != "" && strings.HasPrefix(orderNumber, p) {
			return s.Split.Channel
		}
	}
	return s.Channel
}
