// Package tabular decodes marketplace and carrier exports (CSV or XLSX) into
// header-named tables.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/pkg/utils"

	"golang.org/x/text/unicode/norm"
)

// ErrNoHeader is returned when the file has fewer rows than the header offset.
var ErrNoHeader = errors.New("no header row")

// Reader decodes file bytes; skipRows leading rows are dropped before the
// header row, the way exports with banner rows need.
type Reader interface {
	Read(name string, content []byte, skipRows int) (*model.Table, error)
}

// FileReader is the default Reader: CSV by extension, XLSX otherwise.
type FileReader struct{}

// NewReader returns the default reader.
func NewReader() FileReader { return FileReader{} }

// Read implements Reader.
func (FileReader) Read(name string, content []byte, skipRows int) (*model.Table, error) {
	if skipRows < 0 {
		return nil, fmt.Errorf("read %s: negative skip %d", name, skipRows)
	}
	var (
		records [][]string
		err     error
	)
	switch utils.GetFileType(name) {
	case "csv", "text":
		comma := ','
		if strings.EqualFold(filepath.Ext(name), ".tsv") {
			comma = '\t'
		}
		records, err = readCSV(content, comma)
	default:
		records, err = readXLSX(content)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	t, err := buildTable(name, records, skipRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

// NormalizeName puts Korean text in composed form. Files uploaded from macOS
// carry decomposed Hangul in their names and sometimes in cells.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

func buildTable(name string, records [][]string, skipRows int) (*model.Table, error) {
	if len(records) <= skipRows {
		return nil, fmt.Errorf("%w: %d rows, skip %d", ErrNoHeader, len(records), skipRows)
	}
	raw := records[skipRows]
	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = NormalizeName(strings.TrimSpace(h))
	}

	rows := make([][]string, 0, len(records)-skipRows-1)
	for _, rec := range records[skipRows+1:] {
		if blankRow(rec) {
			continue
		}
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = NormalizeName(v)
		}
		rows = append(rows, row)
	}
	return model.NewTable(name, header, rows), nil
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
