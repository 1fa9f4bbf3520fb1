package views

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-catalog/internal/models"
)

func sampleReports() []models.Report {
	return []models.Report{
		{ID: 1, DateModified: "05.10.2023 10:00:00", FileName: "database_05102023_100000.db", FederalDistrict: "Volga", ControlLocation: "Kazan", ControlPeriod: "01.03.2023 - 05.03.2023", DBPath: "data/database_05102023_100000.db"},
		{ID: 2, DateModified: "01.11.2022 08:30:00", FileName: "database_01112022_083000.db", FederalDistrict: "Ural", ControlLocation: "Ekaterinburg", ControlPeriod: "10.01.2022 - 12.01.2022", DBPath: "data/database_01112022_083000.db"},
		{ID: 3, DateModified: "20.09.2023 17:45:10", FileName: "database_20092023_174510.db", FederalDistrict: "Северо-Западный", ControlLocation: "Pskov", ControlPeriod: "", DBPath: "data/database_20092023_174510.db"},
	}
}

func ids(rows []Row) []uint {
	return lo.Map(rows, func(r Row, _ int) uint { return r.ReportID() })
}

func TestLoadDefaultsToDateOrder(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []uint{2, 3, 1}, ids(table.Rows()))

	row, ok := table.RowByID(3)
	require.True(t, ok)
	assert.Equal(t, "Pskov", row.Cell(ColumnControlLocation))
	assert.True(t, row.CanView())
}

func TestSearchHidesNonMatchingRows(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	table.Search("KAZ")
	assert.Equal(t, []uint{1}, ids(table.VisibleRows()))
	assert.Len(t, table.Rows(), 3)

	table.Search("KAZ")
	assert.Equal(t, []uint{1}, ids(table.VisibleRows()))

	table.ClearSearch()
	assert.Len(t, table.VisibleRows(), 3)
}

func TestSearchFoldsUnicodeCase(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	table.Search("СЕВЕРО")
	assert.Equal(t, []uint{3}, ids(table.VisibleRows()))
}

func TestSearchSurvivesReload(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())
	table.Search("ural")

	table.Load(sampleReports())
	assert.Equal(t, "ural", table.Query())
	assert.Equal(t, []uint{2}, ids(table.VisibleRows()))
}

func TestSortDirectionsAreReversed(t *testing.T) {
	for _, column := range Columns {
		t.Run(column.String(), func(t *testing.T) {
			table := NewCatalogTable()
			table.Load(sampleReports())

			table.Sort(column, Ascending)
			asc := ids(table.Rows())
			table.Sort(column, Descending)
			desc := ids(table.Rows())

			assert.Equal(t, lo.Reverse(append([]uint(nil), asc...)), desc)
		})
	}
}

func TestSortUsesTypedValues(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	table.Sort(ColumnDateModified, Descending)
	assert.Equal(t, []uint{1, 3, 2}, ids(table.Rows()))

	table.Sort(ColumnControlPeriod, Ascending)
	assert.Equal(t, []uint{3, 2, 1}, ids(table.Rows()))

	table.Sort(ColumnFederalDistrict, Ascending)
	assert.Equal(t, []uint{2, 1, 3}, ids(table.Rows()))
}

func TestSortTiesKeepIDOrder(t *testing.T) {
	reports := sampleReports()
	reports[0].FederalDistrict = "Ural"
	table := NewCatalogTable()
	table.Load(reports)

	table.Sort(ColumnFederalDistrict, Ascending)
	assert.Equal(t, []uint{1, 2, 3}, ids(table.Rows()))
}

func TestSortReversesFoldedAndSharedKeys(t *testing.T) {
	reports := []models.Report{
		{ID: 1, DateModified: "05.10.2023 10:00:00", FederalDistrict: "volga", ControlLocation: "ss", ControlPeriod: "01.03.2023 - 09.03.2023"},
		{ID: 2, DateModified: "bad", FederalDistrict: "Volga", ControlLocation: "ß", ControlPeriod: "01.03.2023 - 05.03.2023"},
		{ID: 3, DateModified: "also bad", FederalDistrict: "Ural", ControlLocation: "Kazan", ControlPeriod: "10.01.2022 - 12.01.2022"},
	}

	cases := []struct {
		column Column
		asc    []uint
	}{
		{ColumnFederalDistrict, []uint{3, 2, 1}},
		{ColumnControlLocation, []uint{3, 1, 2}},
		{ColumnControlPeriod, []uint{3, 2, 1}},
		{ColumnDateModified, []uint{3, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.column.String(), func(t *testing.T) {
			table := NewCatalogTable()
			table.Load(reports)

			table.Sort(tc.column, Ascending)
			assert.Equal(t, tc.asc, ids(table.Rows()))
			table.Sort(tc.column, Descending)
			assert.Equal(t, lo.Reverse(append([]uint(nil), tc.asc...)), ids(table.Rows()))
		})
	}
}

func TestResetSortAndReloadKeepState(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	table.Sort(ColumnControlLocation, Descending)
	table.Load(sampleReports())
	column, direction := table.SortState()
	assert.Equal(t, ColumnControlLocation, column)
	assert.Equal(t, Descending, direction)
	assert.Equal(t, []uint{3, 1, 2}, ids(table.Rows()))

	table.ResetSort()
	assert.Equal(t, []uint{2, 3, 1}, ids(table.Rows()))
}

func TestBlankRows(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	key := table.AddBlankRow()
	row, ok := table.Row(key)
	require.True(t, ok)
	assert.True(t, row.Placeholder)
	assert.False(t, row.CanView())
	assert.Zero(t, row.ReportID())
	assert.Equal(t, 4, table.Len())

	table.Sort(ColumnDateModified, Descending)
	rows := table.Rows()
	assert.Equal(t, key, rows[len(rows)-1].Key)

	table.Search("kazan")
	assert.Len(t, table.VisibleRows(), 1)

	assert.True(t, table.Remove(key))
	assert.False(t, table.Remove(key))
	assert.Equal(t, 3, table.Len())
}

func TestRemoveRecordRow(t *testing.T) {
	table := NewCatalogTable()
	table.Load(sampleReports())

	row, ok := table.RowByID(1)
	require.True(t, ok)
	assert.True(t, table.Remove(row.Key))
	_, ok = table.RowByID(1)
	assert.False(t, ok)
	assert.Equal(t, []uint{2, 3}, ids(table.Rows()))
}

func TestColumnString(t *testing.T) {
	assert.Equal(t, "Federal District", ColumnFederalDistrict.String())
	assert.Equal(t, "Column(9)", Column(9).String())
}
