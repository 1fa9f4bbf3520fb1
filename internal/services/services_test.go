package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-catalog/internal/catalog"
	"report-catalog/internal/config"
	"report-catalog/internal/logger"
	"report-catalog/internal/models"
	"report-catalog/internal/testutil"
)

const testHeaderRow = 16

var importTime = time.Date(2023, 10, 7, 14, 5, 9, 0, time.Local)

type fixture struct {
	ctx      context.Context
	dataDir  string
	catalog  *catalog.Store
	importer *ImportService
	records  *RecordService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), "data")
	store, err := catalog.Open(filepath.Join(dataDir, "reports.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	records := NewRecordService(store, nil)
	records.SetClock(func() time.Time { return importTime.Add(time.Hour) })

	return &fixture{
		ctx:      context.Background(),
		dataDir:  dataDir,
		catalog:  store,
		importer: NewImportService(store, dataDir, testHeaderRow, nil),
		records:  records,
	}
}

func sampleWorkbook(t *testing.T) string {
	return testutil.ReportWorkbook(t, testHeaderRow,
		[]any{"Station", "Frequency, MHz", "Result"},
		[]any{"Kazan-1", 101.5, "ok"},
		[]any{"Kazan-2", 98, nil},
		[]any{"Samara", "n/a", "violation"},
	)
}

func (f *fixture) importSample(t *testing.T) *models.Report {
	t.Helper()
	report, err := f.importer.ImportAt(f.ctx, sampleWorkbook(t), importTime)
	require.NoError(t, err)
	return report
}

func TestShutdownLogsCloseError(t *testing.T) {
	var buf bytes.Buffer
	svc, err := Open(&config.Config{DataDir: t.TempDir(), HeaderRow: testHeaderRow}, logger.NewZerolog(&buf, zerolog.InfoLevel))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Catalog.Close() })

	svc.closeCatalog = func() error { return errors.New("database is locked") }
	svc.Shutdown()

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"component":"Services"`)
	assert.Contains(t, buf.String(), "close catalog: database is locked")
}

func TestShutdownClosesCatalog(t *testing.T) {
	var buf bytes.Buffer
	svc, err := Open(&config.Config{DataDir: t.TempDir(), HeaderRow: testHeaderRow}, logger.NewZerolog(&buf, zerolog.InfoLevel))
	require.NoError(t, err)

	svc.Shutdown()

	assert.Contains(t, buf.String(), "catalog closed")
	_, err = svc.Catalog.List(context.Background())
	assert.Error(t, err)
}
