package model

import "time"

// RunMetrics summarizes one pipeline run.
type RunMetrics struct {
	FilesTotal        int                     `json:"files_total"`
	FilesRecognized   int                     `json:"files_recognized"`
	FilesUnrecognized int                     `json:"files_unrecognized"`
	FilesFailed       int                     `json:"files_failed"`
	OrderLines        int                     `json:"order_lines"`
	ZeroQuantityLines int                     `json:"zero_quantity_lines"`
	InvalidLines      int                     `json:"invalid_lines"`
	Records           int                     `json:"records"`
	Duration          time.Duration           `json:"duration"`
	Stages            map[string]StageMetrics `json:"stages"`
	Errors            []ErrorDetail           `json:"errors"`
}

// StageMetrics tracks one stage of a run.
type StageMetrics struct {
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
	RecordsProcessed int           `json:"records_processed"`
	Status           string        `json:"status"` // running, completed, failed
}

// ErrorDetail is a per-file or per-row problem recorded during a run.
type ErrorDetail struct {
	Timestamp time.Time `json:"timestamp"`
	Stage     string    `json:"stage"`
	FileName  string    `json:"file_name,omitempty"`
	ErrorType string    `json:"error_type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"` // low, medium, high, critical
}
