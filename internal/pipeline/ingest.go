package pipeline

import (
	"context"
	"fmt"
	"log"

	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/tabular"
)

// IngestFile detects, reads and maps one order file.
func IngestFile(src model.SourceFile, reader tabular.Reader, retry HeaderRetry) ([]model.OrderLine, model.FileReport, error) {
	report := model.FileReport{FileName: src.Name}

	det, err := Detect(src.Name, src.Content, reader)
	if err != nil {
		report.Error = err.Error()
		return nil, report, &FileError{File: src.Name, Stage: "detect", Err: err}
	}
	report.Marketplace = det.Marketplace
	report.Method = det.Method
	schema, _ := SchemaFor(det.Marketplace)

	table, skip := det.Table, det.SkipRows
	var readErr error
	if table == nil {
		table, readErr = reader.Read(src.Name, src.Content, skip)
		if readErr != nil {
			table = nil
		}
	}
	table, skip, retried := retry.Apply(src, schema, reader, table, skip)
	report.SkipRows = skip
	if retried {
		report.Method += "+retry"
	}
	if table == nil {
		report.Error = readErr.Error()
		return nil, report, &FileError{File: src.Name, Stage: "read", Err: readErr}
	}

	lines, err := MapRows(det.Marketplace, table)
	if err != nil {
		report.Error = err.Error()
		return nil, report, &FileError{File: src.Name, Stage: "map", Err: err}
	}
	report.Lines = len(lines)
	return lines, report, nil
}

// ingestBatch ingests files in order. Per-file failures are recorded on the
// tracker and skipped; only cancellation stops the batch.
func ingestBatch(ctx context.Context, files []model.SourceFile, opts Options, tracker *RunTracker) ([]model.OrderLine, []model.FileReport, error) {
	tracker.StartStage(StageIngestion)
	m := tracker.Metrics()
	m.FilesTotal += len(files)

	var (
		lines   []model.OrderLine
		reports []model.FileReport
	)
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			tracker.FailStage(StageIngestion)
			return nil, reports, fmt.Errorf("ingestion cancelled: %w", err)
		}
		fileLines, report, err := IngestFile(src, opts.Reader, opts.Retry)
		reports = append(reports, report)
		if err != nil {
			if ErrorType(err) == "unrecognized_source" {
				m.FilesUnrecognized++
			} else {
				m.FilesRecognized++
				m.FilesFailed++
			}
			tracker.RecordError(StageIngestion, ErrorType(err), src.Name, err.Error())
			continue
		}
		m.FilesRecognized++
		log.Printf("📄 %s: %s (skip %d, %s), %d lines", src.Name, report.Marketplace, report.SkipRows, report.Method, report.Lines)
		lines = append(lines, fileLines...)
	}
	tracker.EndStage(StageIngestion, len(lines))

	tracker.StartStage(StageValidation)
	problems := opts.validator.ValidateLines(lines)
	for i, l := range lines {
		if l.Quantity == 0 {
			m.ZeroQuantityLines++
		}
		if err, bad := problems[i]; bad {
			tracker.RecordError(StageValidation, "invalid_line", l.SourceFile, fmt.Sprintf("order %q: %v", l.CustomerOrderID, err))
		}
	}
	m.OrderLines += len(lines)
	m.InvalidLines += len(problems)
	tracker.EndStage(StageValidation, len(lines))
	return lines, reports, nil
}
