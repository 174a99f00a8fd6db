package pipeline

import (
	"fmt"
	"log"
	"strings"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/tabular"
)

// Detection methods.
const (
	MethodFilename = "filename"
	MethodColumns  = "columns"
)

// Detection is the outcome of marketplace detection for one file.
type Detection struct {
	Marketplace model.MarketplaceID
	SkipRows    int
	Method      string
	// Table is the read made during column matching, else nil.
	Table *model.Table
}

// Detect identifies the marketplace of a file. The file name is checked for
// each schema's marker first; failing that, the content is checked for a column
// signature with no header offset and then with the retry offset.
func Detect(name string, content []byte, reader tabular.Reader) (Detection, error) {
	normalized := tabular.NormalizeName(name)
	for i := range registry {
		s := &registry[i]
		if s.FilenameMarker != "" && strings.Contains(normalized, s.FilenameMarker) {
			return Detection{Marketplace: s.ID, SkipRows: s.HeaderSkipRows, Method: MethodFilename}, nil
		}
	}

	var lastErr error
	for _, skip := range []int{0, headerRetrySkip} {
		t, err := reader.Read(name, content, skip)
		if err != nil {
			lastErr = err
			continue
		}
		if s := matchColumns(t); s != nil {
			log.Printf("🔍 %s: matched %s columns at skip %d", name, s.ID, skip)
			return Detection{Marketplace: s.ID, SkipRows: skip, Method: MethodColumns, Table: t}, nil
		}
	}
	if lastErr != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrUnrecognizedSource, lastErr)
	}
	return Detection{}, ErrUnrecognizedSource
}

func matchColumns(t *model.Table) *model.MarketplaceSchema {
	for i := range registry {
		if matchesSignature(&registry[i], t) {
			return &registry[i]
		}
	}
	return nil
}
