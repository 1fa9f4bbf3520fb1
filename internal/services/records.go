package services

import (
	"context"
	"fmt"
	"time"

	"report-catalog/internal/datastore"
	"report-catalog/internal/logger"
	"report-catalog/internal/models"
)

// DeleteResult describes what a delete actually did
type DeleteResult struct {
	Report      *models.Report
	Deleted     bool
	FileRemoved bool
	// FileErr is set when the data file could not be removed. The catalog
	// record has been put back in that case.
	FileErr  error
	Restored bool
}

// RecordService handles catalog record lookups, deletion and editing
type RecordService struct {
	catalog    CatalogStore
	logger     logger.Logger
	now        Clock
	removeFile func(path string) (bool, error)
}

// NewRecordService creates a record service on top of the catalog
func NewRecordService(catalog CatalogStore, log logger.Logger) *RecordService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &RecordService{
		catalog:    catalog,
		logger:     log,
		now:        time.Now,
		removeFile: datastore.Remove,
	}
}

// SetClock replaces the time source used for modification stamps
func (s *RecordService) SetClock(now Clock) {
	s.now = now
}

// List returns every catalog record
func (s *RecordService) List(ctx context.Context) ([]models.Report, error) {
	reports, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		s.logger.Debug("Records", r.String(), nil)
	}
	return reports, nil
}

// Get returns one record or ErrReportNotFound
func (s *RecordService) Get(ctx context.Context, id uint) (*models.Report, error) {
	report, err := s.catalog.Get(ctx, id)
	if IsNotFound(err) {
		return nil, fmt.Errorf("%w: id %d", ErrReportNotFound, id)
	}
	return report, err
}

// LoadSheet reads the data store behind a record
func (s *RecordService) LoadSheet(ctx context.Context, report *models.Report) (*models.Sheet, error) {
	if report == nil || !report.HasDataStore() {
		return nil, ErrNoDataStore
	}
	return datastore.Load(ctx, report.DBPath)
}

// Delete removes the record and its data file. Deleting an unknown id does
// nothing. When the file cannot be removed the record is inserted again so
// the catalog still points at the surviving file.
func (s *RecordService) Delete(ctx context.Context, id uint) (DeleteResult, error) {
	report, err := s.catalog.Get(ctx, id)
	if IsNotFound(err) {
		s.logger.Debug("Records", "delete of unknown report ignored", map[string]interface{}{"id": id})
		return DeleteResult{}, nil
	}
	if err != nil {
		return DeleteResult{}, err
	}

	deleted, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	result := DeleteResult{Report: report, Deleted: deleted}

	if report.DBPath == "" || !datastore.Exists(report.DBPath) {
		return result, nil
	}

	removed, err := s.removeFile(report.DBPath)
	if err != nil {
		result.FileErr = err
		s.logger.Error("Records", err, map[string]interface{}{
			"id":      id,
			"db_path": report.DBPath,
			"action":  "restoring catalog record",
		})
		restored := *report
		if err := s.catalog.Create(ctx, &restored); err != nil {
			return result, fmt.Errorf("restore report %d: %w", id, err)
		}
		result.Restored = true
		return result, nil
	}

	result.FileRemoved = removed
	s.logger.Info("Records", "data file removed", map[string]interface{}{"db_path": report.DBPath})
	return result, nil
}

// OpenEditor starts an editing session for the record with the given id.
// dbPath is the data file the caller knows for the row; it is used when the
// record itself has gone missing, in which case the session reports
// Missing() and starts with empty fields.
func (s *RecordService) OpenEditor(ctx context.Context, id uint, dbPath string) (*EditorSession, error) {
	session := &EditorSession{
		catalog:  s.catalog,
		logger:   s.logger,
		now:      s.now,
		reportID: id,
		dbPath:   dbPath,
		state:    StateLoading,
	}

	report, err := s.catalog.Get(ctx, id)
	switch {
	case IsNotFound(err):
		session.missing = true
		s.logger.Warning("Editor", "report not found, editing with empty fields", map[string]interface{}{"id": id})
	case err != nil:
		return nil, err
	default:
		session.load(report)
	}

	if session.dbPath == "" {
		if session.missing {
			return nil, fmt.Errorf("%w: id %d", ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("%w: id %d", ErrNoDataStore, id)
	}

	sheet, err := datastore.Load(ctx, session.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	session.sheet = sheet
	session.state = StateEditing
	return session, nil
}
