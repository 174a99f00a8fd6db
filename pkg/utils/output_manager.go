package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputManager handles output file organization and naming
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateJobOutputDir creates the directory holding one run's outputs
func (om *OutputManager) CreateJobOutputDir(runID string) (string, error) {
	jobDir := filepath.Join(om.BaseOutputDir, runID)

	err := os.MkdirAll(jobDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}

	return jobDir, nil
}

// GetOutputFilePath generates a full path for an output file
func (om *OutputManager) GetOutputFilePath(runID, fileName string) (string, error) {
	jobDir, err := om.CreateJobOutputDir(runID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	cleanFileName := filepath.Base(fileName)

	return filepath.Join(jobDir, cleanFileName), nil
}

// WriteFile stores content under the run directory and returns its path
func (om *OutputManager) WriteFile(runID, fileName string, content []byte) (string, error) {
	path, err := om.GetOutputFilePath(runID, fileName)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// GetDownloadURL generates a download URL for a file
func (om *OutputManager) GetDownloadURL(runID, fileName string) string {
	cleanFileName := filepath.Base(fileName)
	return fmt.Sprintf("/api/v1/download/%s/%s", runID, cleanFileName)
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}

// GetFileType determines the file type based on extension
func GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx", ".xls":
		return "excel"
	case ".txt", ".tsv":
		return "text"
	default:
		return "unknown"
	}
}

// Batch slot of a dispatch: "09" for the morning pickup, "16" after noon.
func timeSlot(now time.Time) string {
	if now.Hour() < 12 {
		return "09"
	}
	return "16"
}

// ShipmentFileName names the consolidated carrier upload, e.g. 0314_09.xlsx.
func ShipmentFileName(now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", now.Format("0102"), timeSlot(now))
}

// CoupangSortedFileName names the reordered coupang original workbook.
func CoupangSortedFileName(now time.Time) string {
	return fmt.Sprintf("%s_%s_쿠팡_원본정렬.xlsx", now.Format("0102"), timeSlot(now))
}

// ManagementFileName names the order-management sheet, e.g. 주문관리_20240314.xlsx.
func ManagementFileName(now time.Time) string {
	return fmt.Sprintf("주문관리_%s.xlsx", now.Format("20060102"))
}

// ProductTotalsFileName names the per-product aggregate table.
func ProductTotalsFileName(now time.Time) string {
	return fmt.Sprintf("상품별집계_%s.xlsx", now.Format("20060102"))
}

// CarrierFileName names the carrier workbook copy with invoice numbers filled.
func CarrierFileName(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	return base + "_송장.xlsx"
}
