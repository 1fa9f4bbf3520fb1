package services

import (
	"context"
	"fmt"
	"time"

	"report-catalog/internal/datastore"
	"report-catalog/internal/logger"
	"report-catalog/internal/models"
)

// EditorState is the lifecycle stage of an EditorSession
type EditorState int

const (
	StateLoading EditorState = iota
	StateEditing
	StateSaving
	StateAccepted
	StateCancelled
)

func (s EditorState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateAccepted:
		return "accepted"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("EditorState(%d)", int(s))
	}
}

// EditorSession holds the in-memory edits of one catalog record and its
// data table until they are saved or discarded. Nothing is written before
// Save.
type EditorSession struct {
	catalog CatalogStore
	logger  logger.Logger
	now     Clock

	reportID uint
	dbPath   string
	original *models.Report
	missing  bool

	federalDistrict string
	controlLocation string
	start           *time.Time
	end             *time.Time
	sheet           *models.Sheet

	state EditorState
}

func (e *EditorSession) load(report *models.Report) {
	copied := *report
	e.original = &copied
	e.federalDistrict = report.FederalDistrict
	e.controlLocation = report.ControlLocation
	if report.DBPath != "" {
		e.dbPath = report.DBPath
	}
	if p, ok := report.Period(); ok {
		e.start, e.end = &p.Start, &p.End
	}
}

func (e *EditorSession) ReportID() uint          { return e.reportID }
func (e *EditorSession) DBPath() string          { return e.dbPath }
func (e *EditorSession) State() EditorState      { return e.state }
func (e *EditorSession) FederalDistrict() string { return e.federalDistrict }
func (e *EditorSession) ControlLocation() string { return e.controlLocation }

// Missing reports whether the catalog record could not be found on load.
func (e *EditorSession) Missing() bool {
	return e.missing
}

// Period returns the edited dates; either may be nil when unset.
func (e *EditorSession) Period() (start, end *time.Time) {
	return e.start, e.end
}

// Sheet returns the working copy of the data table.
func (e *EditorSession) Sheet() *models.Sheet {
	return e.sheet
}

func (e *EditorSession) SetFederalDistrict(v string) error {
	return e.edit(func() { e.federalDistrict = v })
}

func (e *EditorSession) SetControlLocation(v string) error {
	return e.edit(func() { e.controlLocation = v })
}

func (e *EditorSession) SetStart(t *time.Time) error {
	return e.edit(func() { e.start = copyTime(t) })
}

func (e *EditorSession) SetEnd(t *time.Time) error {
	return e.edit(func() { e.end = copyTime(t) })
}

// SetCell changes one grid cell.
func (e *EditorSession) SetCell(row, col int, value string) error {
	if e.state != StateEditing {
		return ErrSessionClosed
	}
	return e.sheet.Set(row, col, value)
}

// Save validates the period and, when it is valid, replaces the data table
// and writes the catalog record. On a validation or store error the session
// stays in StateEditing.
func (e *EditorSession) Save(ctx context.Context) (*models.Report, error) {
	if e.state != StateEditing {
		return nil, ErrSessionClosed
	}
	if e.start == nil || e.end == nil {
		return nil, ErrMissingPeriod
	}
	period := models.NewControlPeriod(*e.start, *e.end)
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}

	e.state = StateSaving

	report := models.Report{ID: e.reportID}
	if e.original != nil {
		report = *e.original
	}
	report.DateModified = models.FormatDateModified(e.now())
	report.FileName = models.FileNameOf(e.dbPath)
	report.FederalDistrict = e.federalDistrict
	report.ControlLocation = e.controlLocation
	report.ControlPeriod = period.String()
	report.DBPath = e.dbPath

	if err := datastore.Replace(ctx, e.dbPath, e.sheet); err != nil {
		e.state = StateEditing
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := e.catalog.Save(ctx, &report); err != nil {
		e.state = StateEditing
		return nil, err
	}

	e.original = &report
	e.missing = false
	e.state = StateAccepted
	e.logger.Info("Editor", "report saved", map[string]interface{}{
		"id":             report.ID,
		"control_period": report.ControlPeriod,
	})
	return &report, nil
}

// Cancel discards every edit.
func (e *EditorSession) Cancel() {
	if e.state == StateAccepted || e.state == StateCancelled {
		return
	}
	e.state = StateCancelled
	e.sheet = nil
	e.logger.Debug("Editor", "edits discarded", map[string]interface{}{"id": e.reportID})
}

func (e *EditorSession) edit(apply func()) error {
	if e.state != StateEditing {
		return ErrSessionClosed
	}
	apply()
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
