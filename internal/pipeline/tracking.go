package pipeline

import (
	"fmt"
	"log"
	"time"

	"go-order-pipeline/internal/model"
)

// Stage names.
const (
	StageIngestion      = "ingestion"
	StageValidation     = "validation"
	StageConsolidation  = "consolidation"
	StageReconciliation = "reconciliation"
	StageExport         = "export"
)

// Recorder persists run progress. The store implements it; a nil Recorder
// keeps tracking in memory only.
type Recorder interface {
	UpdateRunStatus(runID, status string) error
	SaveRunError(runID, fileName, errorType, message string) error
}

// RunTracker collects metrics for one run. A run is synchronous, so the
// tracker is not safe for concurrent use.
type RunTracker struct {
	RunID    string
	recorder Recorder
	start    time.Time
	metrics  model.RunMetrics
}

// NewRunTracker starts tracking runID.
func NewRunTracker(runID string, recorder Recorder) *RunTracker {
	t := &RunTracker{
		RunID:    runID,
		recorder: recorder,
		start:    time.Now(),
		metrics:  model.RunMetrics{Stages: make(map[string]model.StageMetrics)},
	}
	t.status("running")
	return t
}

func (t *RunTracker) status(s string) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.UpdateRunStatus(t.RunID, s); err != nil {
		log.Printf("⚠️ run %s: failed to record status %s: %v", t.RunID, s, err)
	}
}

// StartStage marks the start of a stage.
func (t *RunTracker) StartStage(stage string) {
	t.metrics.Stages[stage] = model.StageMetrics{StartTime: time.Now(), Status: "running"}
	t.status(stage)
	log.Printf("📊 Stage '%s' started", stage)
}

// EndStage marks a stage completed after processing n records.
func (t *RunTracker) EndStage(stage string, n int) {
	sm := t.metrics.Stages[stage]
	sm.EndTime = time.Now()
	sm.Duration = sm.EndTime.Sub(sm.StartTime)
	sm.RecordsProcessed = n
	sm.Status = "completed"
	t.metrics.Stages[stage] = sm
	log.Printf("📊 Stage '%s' completed: %d records processed", stage, n)
}

// FailStage marks a stage failed.
func (t *RunTracker) FailStage(stage string) {
	sm := t.metrics.Stages[stage]
	sm.EndTime = time.Now()
	sm.Duration = sm.EndTime.Sub(sm.StartTime)
	sm.Status = "failed"
	t.metrics.Stages[stage] = sm
}

// RecordError adds an error detail and forwards it to the recorder.
func (t *RunTracker) RecordError(stage, errorType, fileName, message string) {
	d := model.ErrorDetail{
		Timestamp: time.Now(),
		Stage:     stage,
		FileName:  fileName,
		ErrorType: errorType,
		Message:   message,
		Severity:  determineSeverity(errorType),
	}
	t.metrics.Errors = append(t.metrics.Errors, d)
	if d.Severity == "high" {
		log.Printf("❌ [%s] %s: %s", stage, fileName, message)
	} else {
		log.Printf("⚠️ [%s] %s: %s", stage, fileName, message)
	}
	if t.recorder != nil {
		if err := t.recorder.SaveRunError(t.RunID, fileName, errorType, fmt.Sprintf("[%s] %s", stage, message)); err != nil {
			log.Printf("⚠️ run %s: failed to record error: %v", t.RunID, err)
		}
	}
}

// Metrics gives mutable access to the counters of the run.
func (t *RunTracker) Metrics() *model.RunMetrics { return &t.metrics }

// Complete marks the run completed and returns its final metrics.
func (t *RunTracker) Complete() model.RunMetrics {
	t.metrics.Duration = time.Since(t.start)
	t.status("completed")
	log.Printf("📊 Run %s completed in %v", t.RunID, t.metrics.Duration)
	return t.snapshot()
}

// Fail marks the run failed and returns its final metrics.
func (t *RunTracker) Fail() model.RunMetrics {
	t.metrics.Duration = time.Since(t.start)
	t.status("failed")
	log.Printf("❌ Run %s failed after %v", t.RunID, t.metrics.Duration)
	return t.snapshot()
}

func (t *RunTracker) snapshot() model.RunMetrics {
	m := t.metrics
	m.Stages = make(map[string]model.StageMetrics, len(t.metrics.Stages))
	for k, v := range t.metrics.Stages {
		m.Stages[k] = v
	}
	m.Errors = append([]model.ErrorDetail(nil), t.metrics.Errors...)
	return m
}

func determineSeverity(errorType string) string {
	switch errorType {
	case "empty_batch", "export_error":
		return "critical"
	case "missing_required_column", "read_error":
		return "high"
	case "unrecognized_source", "invalid_line", "reorder_failed":
		return "medium"
	default:
		return "low"
	}
}
