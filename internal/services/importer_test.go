package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-catalog/internal/datastore"
	"report-catalog/internal/models"
	"report-catalog/internal/spreadsheet"
)

func TestImportCreatesOneRecordAndOneStore(t *testing.T) {
	f := newFixture(t)

	report := f.importSample(t)

	wantPath := filepath.Join(f.dataDir, "database_07102023_140509.db")
	assert.Equal(t, wantPath, report.DBPath)
	assert.Equal(t, "database_07102023_140509.db", report.FileName)
	assert.Equal(t, "07.10.2023 14:05:09", report.DateModified)
	assert.Empty(t, report.FederalDistrict)
	assert.Empty(t, report.ControlLocation)
	assert.Empty(t, report.ControlPeriod)

	all, err := f.catalog.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *report, all[0])

	entries, err := os.ReadDir(f.dataDir)
	require.NoError(t, err)
	var stores []string
	for _, e := range entries {
		if e.Name() != "reports.db" && filepath.Ext(e.Name()) == ".db" {
			stores = append(stores, e.Name())
		}
	}
	assert.Equal(t, []string{"database_07102023_140509.db"}, stores)

	sheet, err := datastore.Load(f.ctx, report.DBPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Station", "Frequency, MHz", "Result"}, sheet.Columns)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, models.Text("101.5"), sheet.Rows[0][1])
}

func TestImportTruncatesToSeconds(t *testing.T) {
	f := newFixture(t)

	report, err := f.importer.ImportAt(f.ctx, sampleWorkbook(t), importTime.Add(750*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "07.10.2023 14:05:09", report.DateModified)
}

func TestImportSameSecondTwice(t *testing.T) {
	f := newFixture(t)
	f.importSample(t)

	_, err := f.importer.ImportAt(f.ctx, sampleWorkbook(t), importTime)
	assert.ErrorIs(t, err, datastore.ErrStoreExists)

	n, err := f.catalog.Count(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestImportUnsupportedFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := f.importer.ImportAt(f.ctx, path, importTime)
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)

	n, err := f.catalog.Count(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportUsesClock(t *testing.T) {
	f := newFixture(t)
	f.importer.SetClock(func() time.Time { return importTime.Add(24 * time.Hour) })

	report, err := f.importer.Import(f.ctx, sampleWorkbook(t))
	require.NoError(t, err)
	assert.Equal(t, "database_08102023_140509.db", report.FileName)
}

func TestImportHonoursCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.importer.ImportAt(ctx, sampleWorkbook(t), importTime)
	assert.ErrorIs(t, err, context.Canceled)
}
