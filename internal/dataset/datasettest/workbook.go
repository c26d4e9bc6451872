// Package datasettest builds workbook fixtures for tests.
package datasettest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the header row of the published workbook, including the stray
// whitespace seen in the source file.
var Header = []any{" State", "Suburb ", " Socio-economic Ranking ", "Long", "Lat", "Postcode"}

// SampleRows are the Parramatta/Bondi rows plus a VIC suburb.
var SampleRows = [][]any{
	{"NSW", "Parramatta", 7, -33.8, 151.0, "2150"},
	{"NSW", "Bondi", 9, -33.9, 151.3, "2026"},
	{"VIC", "Carlton", 8, -37.8, 144.97, "3053"},
}

// WriteWorkbook writes a single-sheet workbook under t.TempDir and returns
// its path.
func WriteWorkbook(tb testing.TB, sheet string, header []any, rows [][]any) string {
	tb.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			tb.Fatalf("rename sheet: %v", err)
		}
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			tb.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			tb.Fatalf("write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(tb.TempDir(), "Socioeconomic.xlsx")
	if err := f.SaveAs(path); err != nil {
		tb.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteSample writes the sample workbook and returns its path.
func WriteSample(tb testing.TB) string {
	tb.Helper()
	return WriteWorkbook(tb, "", Header, SampleRows)
}
