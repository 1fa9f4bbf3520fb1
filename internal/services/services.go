package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"report-catalog/internal/catalog"
	"report-catalog/internal/config"
	"report-catalog/internal/logger"
	"report-catalog/internal/models"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrNoDataStore    = errors.New("report has no data file")
	ErrInvalidPeriod  = errors.New("start date is after end date")
	ErrMissingPeriod  = errors.New("control period dates are required")
	ErrSessionClosed  = errors.New("editor session is closed")
)

// CatalogStore is the subset of the catalog the services depend on
type CatalogStore interface {
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, id uint) (*models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	Save(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// Clock returns the current time
type Clock func() time.Time

// Services bundles the catalog and the services built on it
type Services struct {
	Catalog  *catalog.Store
	Importer *ImportService
	Records  *RecordService

	logger       logger.Logger
	closeCatalog func() error
}

// Open opens the catalog described by cfg and wires the services to it
func Open(cfg *config.Config, log logger.Logger) (*Services, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NoOpLogger{}
	}

	store, err := catalog.Open(cfg.CatalogPath(), log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Catalog:      store,
		Importer:     NewImportService(store, cfg.DataDir, cfg.HeaderRow, log),
		Records:      NewRecordService(store, log),
		logger:       log,
		closeCatalog: store.Close,
	}, nil
}

// Close closes the catalog
func (s *Services) Close() error {
	if err := s.closeCatalog(); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}
	return nil
}

// Shutdown satisfies shutdown.Shutdownable
func (s *Services) Shutdown() {
	if err := s.Close(); err != nil {
		s.logger.Error("Services", err, nil)
		return
	}
	s.logger.Info("Services", "catalog closed", nil)
}

// IsNotFound reports whether err means a catalog record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) || errors.Is(err, ErrReportNotFound)
}
