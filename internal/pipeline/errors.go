package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedSource means no marketplace matched by file name or columns.
	ErrUnrecognizedSource = errors.New("unrecognized source")
	// ErrMissingRequiredColumn means a detected schema lacks a column the
	// projection cannot do without.
	ErrMissingRequiredColumn = errors.New("missing required column")
	// ErrEmptyBatch means no file of the batch produced an order line.
	ErrEmptyBatch = errors.New("no usable order lines in batch")
)

// FileError is a per-file failure. It never aborts a batch on its own.
type FileError struct {
	File  string
	Stage string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.File, e.Stage, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ErrorType classifies err for run metrics and the error log.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrUnrecognizedSource):
		return "unrecognized_source"
	case errors.Is(err, ErrMissingRequiredColumn):
		return "missing_required_column"
	case errors.Is(err, ErrEmptyBatch):
		return "empty_batch"
	default:
		return "read_error"
	}
}
