package model

import "time"

// SourceFile is an uploaded file: its name and full content.
type SourceFile struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// SummaryMode selects how product names appear in management summaries and
// aggregate tables.
type SummaryMode string

const (
	SummaryClassified SummaryMode = "classified"
	SummaryRaw        SummaryMode = "raw"
)

// Artifact is a generated output file.
type Artifact struct {
	FileName string `json:"file_name"`
	Kind     string `json:"kind"` // shipment, coupang_sorted, management, carrier, product_totals
	Content  []byte `json:"-"`
}

// FileReport describes what happened to one input file.
type FileReport struct {
	FileName    string        `json:"file_name"`
	Marketplace MarketplaceID `json:"marketplace,omitempty"`
	SkipRows    int           `json:"skip_rows"`
	Method      string        `json:"method,omitempty"`
	Lines       int           `json:"lines"`
	Error       string        `json:"error,omitempty"`
}

// PreviewRow is the short per-shipment view shown after a run.
type PreviewRow struct {
	CustomerOrderID string `json:"customer_order_id"`
	RecipientName   string `json:"recipient_name"`
	ProductSummary  string `json:"product_summary"`
	TotalQuantity   int    `json:"total_quantity"`
}

// ShipmentRun is the immutable result of one shipment consolidation run.
type ShipmentRun struct {
	RunID     string           `json:"run_id"`
	StartedAt time.Time        `json:"started_at"`
	Files     []FileReport     `json:"files"`
	Lines     []OrderLine      `json:"-"`
	Records   []ShipmentRecord `json:"records"`
	Preview   []PreviewRow     `json:"preview"`
	Artifacts []Artifact       `json:"artifacts"`
	Metrics   RunMetrics       `json:"metrics"`
}

// OrderCount is the number of consolidated shipments.
func (r *ShipmentRun) OrderCount() int { return len(r.Records) }

// ManagementRun is the immutable result of one order-management run.
type ManagementRun struct {
	RunID         string             `json:"run_id"`
	StartedAt     time.Time          `json:"started_at"`
	Mode          SummaryMode        `json:"mode"`
	Files         []FileReport       `json:"files"`
	CarrierFiles  []FileReport       `json:"carrier_files"`
	Records       []ManagementRecord `json:"records"`
	ProductTotals []ProductTotal     `json:"product_totals"`
	Matched       int                `json:"matched"`
	Artifacts     []Artifact         `json:"artifacts"`
	Metrics       RunMetrics         `json:"metrics"`
}

// Unmatched is the number of records without an invoice number.
func (r *ManagementRun) Unmatched() int { return len(r.Records) - r.Matched }
