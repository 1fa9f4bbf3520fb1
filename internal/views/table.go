package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"report-catalog/internal/models"
)

// Column identifies one metadata column of the catalog table
type Column int

const (
	ColumnDateModified Column = iota
	ColumnFileName
	ColumnFederalDistrict
	ColumnControlLocation
	ColumnControlPeriod
)

// Columns lists the metadata columns in display order
var Columns = []Column{
	ColumnDateModified,
	ColumnFileName,
	ColumnFederalDistrict,
	ColumnControlLocation,
	ColumnControlPeriod,
}

func (c Column) String() string {
	switch c {
	case ColumnDateModified:
		return "Date Modified"
	case ColumnFileName:
		return "File Name"
	case ColumnFederalDistrict:
		return "Federal District"
	case ColumnControlLocation:
		return "Control Location"
	case ColumnControlPeriod:
		return "Control Period"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

// SortDirection is the order applied by CatalogTable.Sort
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Row is one line of the catalog table. Placeholder rows have no catalog
// record behind them.
type Row struct {
	Key         string
	Report      models.Report
	Placeholder bool
	Visible     bool
}

// ReportID returns the catalog id, or 0 for placeholder rows
func (r Row) ReportID() uint {
	if r.Placeholder {
		return 0
	}
	return r.Report.ID
}

// CanView reports whether the row can be opened in the editor
func (r Row) CanView() bool {
	return !r.Placeholder && r.Report.HasDataStore()
}

// Cell returns the displayed text of one metadata column
func (r Row) Cell(c Column) string {
	switch c {
	case ColumnDateModified:
		return r.Report.DateModified
	case ColumnFileName:
		return r.Report.FileName
	case ColumnFederalDistrict:
		return r.Report.FederalDistrict
	case ColumnControlLocation:
		return r.Report.ControlLocation
	case ColumnControlPeriod:
		return r.Report.ControlPeriod
	}
	return ""
}

// Cells returns all metadata cells in display order
func (r Row) Cells() []string {
	return lo.Map(Columns, func(c Column, _ int) string { return r.Cell(c) })
}

type sortState struct {
	column    Column
	direction SortDirection
}

// CatalogTable is the in-memory model behind the main window table. It owns
// row order, visibility and placeholder rows; the catalog store is never
// touched from here.
type CatalogTable struct {
	rows   []*Row
	byKey  map[string]*Row
	query  string
	sorted sortState
	fold   cases.Caser
	newKey func() string
}

// NewCatalogTable creates an empty table sorted ascending by modification date
func NewCatalogTable() *CatalogTable {
	return &CatalogTable{
		byKey:  make(map[string]*Row),
		sorted: sortState{column: ColumnDateModified, direction: Ascending},
		fold:   cases.Fold(),
		newKey: uuid.NewString,
	}
}

// Load replaces every row with one row per record. The active search and
// sort are applied again.
func (t *CatalogTable) Load(reports []models.Report) {
	t.rows = lo.Map(reports, func(r models.Report, _ int) *Row {
		return &Row{Key: recordKey(r.ID), Report: r, Visible: true}
	})
	t.byKey = lo.SliceToMap(t.rows, func(r *Row) (string, *Row) { return r.Key, r })
	t.apply()
}

// Rows returns every row in display order, hidden ones included
func (t *CatalogTable) Rows() []Row {
	return lo.Map(t.rows, func(r *Row, _ int) Row { return *r })
}

// VisibleRows returns the rows matching the current search
func (t *CatalogTable) VisibleRows() []Row {
	visible := lo.Filter(t.rows, func(r *Row, _ int) bool { return r.Visible })
	return lo.Map(visible, func(r *Row, _ int) Row { return *r })
}

// Row looks a row up by key
func (t *CatalogTable) Row(key string) (Row, bool) {
	r, ok := t.byKey[key]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// RowByID looks a record row up by catalog id
func (t *CatalogTable) RowByID(id uint) (Row, bool) {
	return t.Row(recordKey(id))
}

// Query returns the active search text
func (t *CatalogTable) Query() string {
	return t.query
}

// Search hides rows where the query is not a case-insensitive substring of
// any metadata cell. An empty query shows every row.
func (t *CatalogTable) Search(query string) {
	t.query = query
	t.filter()
}

// ClearSearch shows every row again
func (t *CatalogTable) ClearSearch() {
	t.Search("")
}

// Sort orders rows by the typed value of column. Ties keep catalog id order
// and placeholder rows stay at the end.
func (t *CatalogTable) Sort(column Column, direction SortDirection) {
	t.sorted = sortState{column: column, direction: direction}
	t.order()
}

// ResetSort restores the default order, ascending by modification date
func (t *CatalogTable) ResetSort() {
	t.Sort(ColumnDateModified, Ascending)
}

// SortState returns the active sort column and direction
func (t *CatalogTable) SortState() (Column, SortDirection) {
	return t.sorted.column, t.sorted.direction
}

// AddBlankRow appends a placeholder row and returns its key
func (t *CatalogTable) AddBlankRow() string {
	row := &Row{Key: t.newKey(), Placeholder: true}
	t.rows = append(t.rows, row)
	t.byKey[row.Key] = row
	row.Visible = t.matches(row)
	return row.Key
}

// Remove drops a row from the view. It reports whether the key was present.
func (t *CatalogTable) Remove(key string) bool {
	if _, ok := t.byKey[key]; !ok {
		return false
	}
	delete(t.byKey, key)
	t.rows = lo.Reject(t.rows, func(r *Row, _ int) bool { return r.Key == key })
	return true
}

// Len returns the number of rows, hidden ones included
func (t *CatalogTable) Len() int {
	return len(t.rows)
}

func (t *CatalogTable) apply() {
	t.order()
	t.filter()
}

func (t *CatalogTable) filter() {
	for _, r := range t.rows {
		r.Visible = t.matches(r)
	}
}

func (t *CatalogTable) matches(r *Row) bool {
	if t.query == "" {
		return true
	}
	needle := t.fold.String(t.query)
	return lo.SomeBy(r.Cells(), func(cell string) bool {
		return strings.Contains(t.fold.String(cell), needle)
	})
}

func (t *CatalogTable) order() {
	column, direction := t.sorted.column, t.sorted.direction
	slices.SortStableFunc(t.rows, func(a, b *Row) int {
		if a.Placeholder || b.Placeholder {
			return placeholderLast(a, b)
		}
		c := t.compare(column, a, b)
		if c == 0 {
			c = strings.Compare(a.Cell(column), b.Cell(column))
		}
		if c == 0 {
			c = cmp.Compare(a.Report.ID, b.Report.ID)
		}
		if direction == Descending {
			return -c
		}
		return c
	})
}

func placeholderLast(a, b *Row) int {
	switch {
	case a.Placeholder && b.Placeholder:
		return 0
	case a.Placeholder:
		return 1
	default:
		return -1
	}
}

func (t *CatalogTable) compare(column Column, a, b *Row) int {
	switch column {
	case ColumnDateModified:
		return compareTime(a.Report.ModifiedAt(), b.Report.ModifiedAt())
	case ColumnControlPeriod:
		pa, pb := period(a.Report), period(b.Report)
		if c := compareTime(pa.Start, pb.Start); c != 0 {
			return c
		}
		return compareTime(pa.End, pb.End)
	default:
		return strings.Compare(t.fold.String(a.Cell(column)), t.fold.String(b.Cell(column)))
	}
}

// period yields the zero period for values that do not parse.
func period(r models.Report) models.ControlPeriod {
	p, ok := r.Period()
	if !ok {
		return models.ControlPeriod{}
	}
	return p
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

func recordKey(id uint) string {
	return fmt.Sprintf("report:%d", id)
}
