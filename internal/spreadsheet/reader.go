// Package spreadsheet reads the first worksheet of an Excel workbook into a
// models.Sheet.
package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"report-catalog/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Extensions lists the file extensions Read accepts.
var Extensions = []string{".xlsx", ".xls"}

// Read loads the first sheet of the workbook at path. The row at headerRow
// (zero-based) supplies column names and every following non-blank row is
// data. Cells are kept as their formatted text; empty cells become NULL.
func Read(path string, headerRow int) (*models.Sheet, error) {
	if headerRow < 0 {
		return nil, fmt.Errorf("header row must be >= 0, got %d", headerRow)
	}

	var (
		raw [][]string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		raw, err = readXLSX(path)
	case ".xls":
		raw, err = readXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return FromRows(raw, headerRow), nil
}

// FromRows builds a sheet from raw text rows.
func FromRows(raw [][]string, headerRow int) *models.Sheet {
	if headerRow >= len(raw) {
		return models.NewSheet(nil, nil)
	}

	width := 0
	for _, row := range raw[headerRow:] {
		width = max(width, trimmedLen(row))
	}

	columns := ColumnNames(raw[headerRow], width)

	var rows [][]models.Cell
	for _, row := range raw[headerRow+1:] {
		if trimmedLen(row) == 0 {
			continue
		}
		cells := make([]models.Cell, width)
		for i := 0; i < width && i < len(row); i++ {
			if row[i] != "" {
				cells[i] = models.Text(row[i])
			}
		}
		rows = append(rows, cells)
	}
	return models.NewSheet(columns, rows)
}

// ColumnNames turns a header row into width column names that are unique
// ignoring case, as SQLite requires. Blank headers become "Unnamed: <index>"
// and repeats get a ".<n>" suffix.
func ColumnNames(header []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	repeats := make(map[string]int)
	for i := range names {
		base := ""
		if i < len(header) {
			base = strings.TrimSpace(header[i])
		}
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for used[strings.ToLower(name)] {
			repeats[base]++
			name = base + "." + strconv.Itoa(repeats[base])
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func trimmedLen(row []string) int {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return n
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(path string) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
