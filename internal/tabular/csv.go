package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns content as UTF-8. Marketplace CSVs come either as UTF-8
// (with or without BOM) or as CP949/EUC-KR from older admin pages.
func decodeText(content []byte) ([]byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return content, nil
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), content)
	if err != nil {
		return nil, fmt.Errorf("decode EUC-KR: %w", err)
	}
	return decoded, nil
}

// readCSV parses delimited text; comma is ',' for .csv and '\t' for .tsv.
func readCSV(content []byte, comma rune) ([][]string, error) {
	text, err := decodeText(content)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV read error: %w", err)
	}
	return records, nil
}
