package pipeline

import (
	"log"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/tabular"
)

// headerRetrySkip is the alternate header offset tried when a file's detected
// layout does not carry its schema's columns. Manual exports put two banner
// rows above the header.
const headerRetrySkip = 2

// HeaderRetry decides whether and how a file is re-read at another offset.
type HeaderRetry struct {
	Skip int
}

// DefaultHeaderRetry re-reads with two banner rows.
func DefaultHeaderRetry() HeaderRetry {
	return HeaderRetry{Skip: headerRetrySkip}
}

// ShouldRetry reports whether a table read at skip deserves a second read. A
// nil table stands for a read that failed.
func (r HeaderRetry) ShouldRetry(s *model.MarketplaceSchema, t *model.Table, skip int) bool {
	return skip != r.Skip && (t == nil || !matchesSignature(s, t))
}

// Apply re-reads the file at the retry offset and adopts the result only when
// it carries the schema's signature. The original table is returned otherwise.
func (r HeaderRetry) Apply(src model.SourceFile, s *model.MarketplaceSchema, reader tabular.Reader, t *model.Table, skip int) (*model.Table, int, bool) {
	if !r.ShouldRetry(s, t, skip) {
		return t, skip, false
	}
	retried, err := reader.Read(src.Name, src.Content, r.Skip)
	if err != nil {
		log.Printf("🔄 %s: header retry at skip %d failed: %v", src.Name, r.Skip, err)
		return t, skip, false
	}
	if !matchesSignature(s, retried) {
		return t, skip, false
	}
	log.Printf("🔄 %s: header found at skip %d instead of %d", src.Name, r.Skip, skip)
	return retried, r.Skip, true
}
