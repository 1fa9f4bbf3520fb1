// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves rows into the first sheet of a new .xlsx file in a
// temporary directory and returns its path. Nil entries leave the cell unset.
func WriteWorkbook(t testing.TB, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// ReportWorkbook builds a workbook shaped like the inspection reports: a
// title block followed by the header at headerRow and the given data rows.
func ReportWorkbook(t testing.TB, headerRow int, header []any, data ...[]any) string {
	t.Helper()

	rows := make([][]any, headerRow, headerRow+1+len(data))
	if headerRow > 0 {
		rows[0] = []any{"Inspection report"}
	}
	rows = append(rows, header)
	rows = append(rows, data...)
	return WriteWorkbook(t, "report.xlsx", rows)
}
