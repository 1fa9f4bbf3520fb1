// Package catalog is the central store with one row per imported
// spreadsheet.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"report-catalog/internal/logger"
	"report-catalog/internal/models"
)

var ErrNotFound = errors.New("report not found")

const component = "Catalog"

// Store wraps the catalog database. It is safe to share one Store across the
// application; it owns the connection until Close.
type Store struct {
	db     *gorm.DB
	logger logger.Logger
}

// Open creates or opens the catalog at path and migrates the reports table.
func Open(path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec("PRAGMA busy_timeout=5000"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.AutoMigrate(&models.Report{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}

	log.Info(component, "catalog opened", map[string]interface{}{"path": path})
	return &Store{db: db, logger: log}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// List returns every record ordered by id.
func (s *Store) List(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := s.db.WithContext(ctx).Order("id").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Get fetches one record.
func (s *Store) Get(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return &report, nil
}

// FindByDateModified returns the first record with the given timestamp
// string.
func (s *Store) FindByDateModified(ctx context.Context, dateModified string) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Where("date_modified = ?", dateModified).Order("id").First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: date_modified %q", ErrNotFound, dateModified)
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &report, nil
}

// Create inserts report and sets its ID. A non-zero ID is kept, which is how
// a deleted record is restored.
func (s *Store) Create(ctx context.Context, report *models.Report) error {
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	s.logger.Info(component, "report created", map[string]interface{}{
		"id":      report.ID,
		"db_path": report.DBPath,
	})
	return nil
}

// Save writes every column of report, inserting it when the ID is unknown.
func (s *Store) Save(ctx context.Context, report *models.Report) error {
	if err := s.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("save report %d: %w", report.ID, err)
	}
	s.logger.Info(component, "report saved", map[string]interface{}{
		"id":             report.ID,
		"control_period": report.ControlPeriod,
	})
	return nil
}

// Delete removes a record and reports whether one existed.
func (s *Store) Delete(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete report %d: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		s.logger.Info(component, "report deleted", map[string]interface{}{"id": id})
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Report{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}
