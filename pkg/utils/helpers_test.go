package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, ParseValue(" 42 "))
	assert.Equal(t, 2.5, ParseValue("2.5"))
	assert.Equal(t, "NaN", ParseValue("NaN"))
	assert.Equal(t, "abc", ParseValue("abc"))
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2", 2, true},
		{"2.0", 2, true},
		{"1,200", 1200, true},
		{"", 0, false},
		{"두개", 0, false},
		{"-1", 0, false},
		{"2147483647", 2147483647, true},
		{"2147483648", 0, false},
		{"1e30", 0, false},
		{"99999999999999999999", 0, false},
		{"NaN", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseQuantity(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "01012345678", DigitsOnly("010-1234-5678"))
	assert.Equal(t, "", DigitsOnly("없음"))
	assert.True(t, ContainsDigit("총 2개"))
	assert.False(t, ContainsDigit("OH"))
}

func TestGetFileType(t *testing.T) {
	assert.Equal(t, "csv", GetFileType("a.CSV"))
	assert.Equal(t, "excel", GetFileType("a.xlsx"))
	assert.Equal(t, "excel", GetFileType("a.xls"))
	assert.Equal(t, "text", GetFileType("a.tsv"))
	assert.Equal(t, "unknown", GetFileType("a"))
}

func TestOutputFileNames(t *testing.T) {
	morning := time.Date(2024, 3, 14, 11, 59, 0, 0, time.UTC)
	afternoon := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "0314_09.xlsx", ShipmentFileName(morning))
	assert.Equal(t, "0314_16.xlsx", ShipmentFileName(afternoon))
	assert.Equal(t, "0314_16_쿠팡_원본정렬.xlsx", CoupangSortedFileName(afternoon))
	assert.Equal(t, "주문관리_20240314.xlsx", ManagementFileName(morning))
	assert.Equal(t, "상품별집계_20240314.xlsx", ProductTotalsFileName(morning))
	assert.Equal(t, "0314_09_송장.xlsx", CarrierFileName("uploads/0314_09.xlsx"))
}

func TestOutputManager(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	require.NoError(t, om.EnsureOutputDirExists())

	path, err := om.WriteFile("run-1", "../escape.xlsx", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(om.BaseOutputDir, "run-1", "escape.xlsx"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assert.Equal(t, "/api/v1/download/run-1/escape.xlsx", om.GetDownloadURL("run-1", "escape.xlsx"))
}
