package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"report-catalog/internal/datastore"
	"report-catalog/internal/logger"
	"report-catalog/internal/models"
	"report-catalog/internal/spreadsheet"
)

// ImportService turns spreadsheets into per-file data stores and catalog
// records
type ImportService struct {
	catalog   CatalogStore
	dataDir   string
	headerRow int
	logger    logger.Logger
	now       Clock
}

// NewImportService creates an importer writing stores into dataDir
func NewImportService(catalog CatalogStore, dataDir string, headerRow int, log logger.Logger) *ImportService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &ImportService{
		catalog:   catalog,
		dataDir:   dataDir,
		headerRow: headerRow,
		logger:    log,
		now:       time.Now,
	}
}

// SetClock replaces the time source
func (s *ImportService) SetClock(now Clock) {
	s.now = now
}

// Import reads the spreadsheet at path, stores its rows in a new data store
// named after the current second, and registers a catalog record for it.
func (s *ImportService) Import(ctx context.Context, path string) (*models.Report, error) {
	return s.ImportAt(ctx, path, s.now())
}

// ImportAt is Import with an explicit timestamp.
func (s *ImportService) ImportAt(ctx context.Context, path string, at time.Time) (*models.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	at = at.Truncate(time.Second)
	startTime := time.Now()

	sheet, err := spreadsheet.Read(path, s.headerRow)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	dbPath := filepath.Join(s.dataDir, models.StoreFileName(at))
	if err := datastore.Create(ctx, dbPath, sheet); err != nil {
		return nil, fmt.Errorf("failed to create data store: %w", err)
	}

	report := &models.Report{
		DateModified: models.FormatDateModified(at),
		FileName:     models.FileNameOf(dbPath),
		DBPath:       dbPath,
	}
	if err := s.catalog.Create(ctx, report); err != nil {
		if _, rmErr := datastore.Remove(dbPath); rmErr != nil {
			s.logger.Error("Importer", rmErr, map[string]interface{}{"db_path": dbPath})
		}
		return nil, fmt.Errorf("failed to register report: %w", err)
	}

	rows, cols := sheet.Dimensions()
	s.logger.Info("Importer", "spreadsheet imported", map[string]interface{}{
		"source":   path,
		"db_path":  dbPath,
		"id":       report.ID,
		"rows":     rows,
		"columns":  cols,
		"duration": time.Since(startTime).String(),
	})
	return report, nil
}
