// Package pipeline turns marketplace order exports into carrier upload sheets
// and order-management sheets.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/tabular"
	"go-order-pipeline/pkg/utils"
)

// Artifact kinds.
const (
	KindShipment      = "shipment"
	KindCoupangSorted = "coupang_sorted"
	KindManagement    = "management"
	KindProductTotals = "product_totals"
	KindCarrier       = "carrier"
)

// Options carries the collaborators of a run. Zero fields get defaults.
type Options struct {
	Reader   tabular.Reader
	Recorder Recorder
	Retry    HeaderRetry
	// Location places Now for output file names.
	Location *time.Location
	Now      func() time.Time

	validator *LineValidator
}

func (o Options) withDefaults() Options {
	if o.Reader == nil {
		o.Reader = tabular.NewReader()
	}
	if o.Retry.Skip == 0 {
		o.Retry = DefaultHeaderRetry()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.validator == nil {
		o.validator = NewLineValidator()
	}
	return o
}

func (o Options) now() time.Time { return o.Now().In(o.Location) }

// RunShipments consolidates a batch of order files into the carrier upload
// workbook. Coupang workbooks additionally get a reordered copy. When no file
// yields an order line the returned error wraps ErrEmptyBatch and the run
// carries the file reports but no artifacts.
func RunShipments(ctx context.Context, runID string, files []model.SourceFile, opts Options) (*model.ShipmentRun, error) {
	opts = opts.withDefaults()
	started := opts.now()
	log.Printf("🚀 Starting shipment run %s (%d files)", runID, len(files))
	tracker := NewRunTracker(runID, opts.Recorder)
	run := &model.ShipmentRun{RunID: runID, StartedAt: started}

	lines, reports, err := ingestBatch(ctx, files, opts, tracker)
	run.Files = reports
	if err != nil {
		run.Metrics = tracker.Fail()
		return run, err
	}
	if len(lines) == 0 {
		tracker.RecordError(StageIngestion, "empty_batch", "", fmt.Sprintf("none of %d files produced order lines", len(files)))
		run.Metrics = tracker.Fail()
		return run, fmt.Errorf("%w: %d files", ErrEmptyBatch, len(files))
	}
	run.Lines = lines

	tracker.StartStage(StageConsolidation)
	run.Records = Consolidate(lines)
	tracker.Metrics().Records = len(run.Records)
	tracker.EndStage(StageConsolidation, len(run.Records))

	tracker.StartStage(StageExport)
	content, err := WriteShipmentWorkbook(run.Records)
	if err != nil {
		tracker.RecordError(StageExport, "export_error", utils.ShipmentFileName(started), err.Error())
		tracker.FailStage(StageExport)
		run.Metrics = tracker.Fail()
		return run, fmt.Errorf("write shipment workbook: %w", err)
	}
	run.Artifacts = append(run.Artifacts, model.Artifact{
		FileName: utils.ShipmentFileName(started),
		Kind:     KindShipment,
		Content:  content,
	})
	run.Artifacts = append(run.Artifacts, sortedCoupangCopies(files, reports, started, tracker)...)
	tracker.EndStage(StageExport, len(run.Artifacts))

	run.Preview = previewRows(run.Records)
	run.Metrics = tracker.Complete()
	log.Printf("✅ Shipment run %s: %d shipments from %d lines", runID, len(run.Records), len(lines))
	return run, nil
}

// sortedCoupangCopies reorders every recognized coupang workbook by seller
// product code. A failed reorder only costs that copy.
func sortedCoupangCopies(files []model.SourceFile, reports []model.FileReport, now time.Time, tracker *RunTracker) []model.Artifact {
	var out []model.Artifact
	for i, src := range files {
		if i >= len(reports) || reports[i].Marketplace != model.MarketCoupang || utils.GetFileType(src.Name) != "excel" {
			continue
		}
		sorted, err := ReorderPreservingStyle(src.Content, CoupangSortColumn)
		if err != nil {
			tracker.RecordError(StageExport, "reorder_failed", src.Name, err.Error())
			continue
		}
		name := utils.CoupangSortedFileName(now)
		if len(out) > 0 {
			name = fmt.Sprintf("%s_%d.xlsx", strings.TrimSuffix(name, ".xlsx"), len(out)+1)
		}
		out = append(out, model.Artifact{FileName: name, Kind: KindCoupangSorted, Content: sorted})
	}
	return out
}

func previewRows(records []model.ShipmentRecord) []model.PreviewRow {
	out := make([]model.PreviewRow, 0, len(records))
	for _, r := range records {
		out = append(out, model.PreviewRow{
			CustomerOrderID: r.CustomerOrderID,
			RecipientName:   r.RecipientName,
			ProductSummary:  r.ProductSummary,
			TotalQuantity:   r.TotalQuantity,
		})
	}
	return out
}

// RunManagement builds the order-management sheet for a batch of order files,
// filling invoice numbers from the carrier exports. It also renders the
// per-product totals of the batch.
func RunManagement(ctx context.Context, runID string, orders, carriers []model.SourceFile, mode model.SummaryMode, opts Options) (*model.ManagementRun, error) {
	opts = opts.withDefaults()
	if mode == "" {
		mode = model.SummaryClassified
	}
	started := opts.now()
	log.Printf("🚀 Starting management run %s (%d order files, %d carrier files)", runID, len(orders), len(carriers))
	tracker := NewRunTracker(runID, opts.Recorder)
	run := &model.ManagementRun{RunID: runID, StartedAt: started, Mode: mode}

	tracker.StartStage(StageReconciliation)
	idx, carrierReports := loadInvoiceIndex(carriers, opts.Reader, tracker)
	run.CarrierFiles = carrierReports
	tracker.EndStage(StageReconciliation, idx.Len())

	lines, reports, err := ingestBatch(ctx, orders, opts, tracker)
	run.Files = reports
	if err != nil {
		run.Metrics = tracker.Fail()
		return run, err
	}
	if len(lines) == 0 {
		tracker.RecordError(StageIngestion, "empty_batch", "", fmt.Sprintf("none of %d files produced order lines", len(orders)))
		run.Metrics = tracker.Fail()
		return run, fmt.Errorf("%w: %d files", ErrEmptyBatch, len(orders))
	}

	tracker.StartStage(StageConsolidation)
	run.Records, run.Matched = ApplyInvoiceIndex(ConsolidateManagement(lines, mode), idx)
	run.ProductTotals = AggregateProducts(lines, mode)
	tracker.Metrics().Records = len(run.Records)
	tracker.EndStage(StageConsolidation, len(run.Records))

	tracker.StartStage(StageExport)
	mgmt, err := WriteManagementWorkbook(run.Records)
	if err != nil {
		tracker.RecordError(StageExport, "export_error", utils.ManagementFileName(started), err.Error())
		tracker.FailStage(StageExport)
		run.Metrics = tracker.Fail()
		return run, fmt.Errorf("write management workbook: %w", err)
	}
	totals, err := WriteProductTotalsWorkbook(run.ProductTotals)
	if err != nil {
		tracker.RecordError(StageExport, "export_error", utils.ProductTotalsFileName(started), err.Error())
		tracker.FailStage(StageExport)
		run.Metrics = tracker.Fail()
		return run, fmt.Errorf("write product totals workbook: %w", err)
	}
	run.Artifacts = []model.Artifact{
		{FileName: utils.ManagementFileName(started), Kind: KindManagement, Content: mgmt},
		{FileName: utils.ProductTotalsFileName(started), Kind: KindProductTotals, Content: totals},
	}
	tracker.EndStage(StageExport, len(run.Artifacts))

	run.Metrics = tracker.Complete()
	log.Printf("✅ Management run %s: %d orders, %d with invoice", runID, len(run.Records), run.Matched)
	return run, nil
}

// loadInvoiceIndex reads carrier exports and indexes them. Unreadable files and
// files without the indexed columns are reported and contribute nothing.
func loadInvoiceIndex(carriers []model.SourceFile, reader tabular.Reader, tracker *RunTracker) (*model.InvoiceIndex, []model.FileReport) {
	var (
		tables  []*model.Table
		reports []model.FileReport
	)
	for _, src := range carriers {
		report := model.FileReport{FileName: src.Name}
		t, err := reader.Read(src.Name, src.Content, 0)
		if err != nil {
			report.Error = err.Error()
			tracker.RecordError(StageReconciliation, "read_error", src.Name, err.Error())
		} else {
			report.Lines = t.Len()
			tables = append(tables, t)
		}
		reports = append(reports, report)
	}
	if len(tables) == 0 {
		return model.NewInvoiceIndex(), reports
	}
	idx, err := BuildInvoiceIndex(tables)
	if err != nil {
		tracker.RecordError(StageReconciliation, ErrorType(err), "", err.Error())
	}
	log.Printf("🔗 Invoice index: %d orders from %d carrier files", idx.Len(), len(tables))
	return idx, reports
}

// AnnotateCarrier fills invoice numbers into a carrier upload workbook from
// the carrier exports. It returns the annotated artifact and how many rows
// matched.
func AnnotateCarrier(runID string, delivery model.SourceFile, carriers []model.SourceFile, opts Options) (model.Artifact, int, []model.FileReport, error) {
	opts = opts.withDefaults()
	tracker := NewRunTracker(runID, opts.Recorder)

	tracker.StartStage(StageReconciliation)
	idx, reports := loadInvoiceIndex(carriers, opts.Reader, tracker)
	tracker.EndStage(StageReconciliation, idx.Len())

	tracker.StartStage(StageExport)
	content, matched, err := AnnotateCarrierWorkbook(delivery.Content, idx)
	if err != nil {
		tracker.RecordError(StageExport, ErrorType(err), delivery.Name, err.Error())
		tracker.FailStage(StageExport)
		tracker.Fail()
		return model.Artifact{}, 0, reports, fmt.Errorf("annotate %s: %w", delivery.Name, err)
	}
	tracker.EndStage(StageExport, matched)
	tracker.Complete()
	return model.Artifact{FileName: utils.CarrierFileName(delivery.Name), Kind: KindCarrier, Content: content}, matched, reports, nil
}
