package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"report-catalog/internal/logger"
	"report-catalog/internal/models"
	"report-catalog/internal/services"
	"report-catalog/internal/views"
)

// Event names emitted by the controller
const (
	EventRecordsChanged = "records_changed"
	EventReloaded       = "reloaded"
)

// EventHandler represents a function that handles application events
type EventHandler func(data interface{}) error

// MainController connects the catalog window to the import and record
// services. Every successful mutation emits EventRecordsChanged, which
// reloads the table from the catalog.
type MainController struct {
	importer *services.ImportService
	records  *services.RecordService
	logger   logger.Logger
	now      services.Clock

	table    *views.CatalogTable
	mainView *views.MainView
	editor   *views.EditorDialog

	mu  sync.Mutex
	ctx context.Context

	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// NewMainController creates a new main controller
func NewMainController(importer *services.ImportService, records *services.RecordService, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	controller := &MainController{
		importer:      importer,
		records:       records,
		logger:        log,
		now:           time.Now,
		table:         views.NewCatalogTable(),
		ctx:           context.Background(),
		eventHandlers: make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetContext sets the context passed to store operations
func (mc *MainController) SetContext(ctx context.Context) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.ctx = ctx
}

func (mc *MainController) opCtx() context.Context {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.ctx
}

// SetClock replaces the time source used for editor defaults
func (mc *MainController) SetClock(now services.Clock) {
	mc.now = now
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

// Table returns the table model behind the main view
func (mc *MainController) Table() *views.CatalogTable {
	return mc.table
}

// Reload replaces the table contents with the catalog records
func (mc *MainController) Reload() error {
	reports, err := mc.records.List(mc.opCtx())
	if err != nil {
		mc.handleError("Reload failed", err)
		return err
	}

	mc.table.Load(reports)
	mc.render()
	mc.emitEvent(EventReloaded, len(reports))
	return nil
}

// Import asks for a spreadsheet and imports it. The row the request came
// from does not matter: every import creates a new record.
func (mc *MainController) Import() {
	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowSpreadsheetDialog(func(path string, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		mc.ImportFile(path)
	})
}

// ImportFile imports one spreadsheet. An empty path is skipped silently.
func (mc *MainController) ImportFile(path string) (*models.Report, error) {
	if path == "" {
		mc.logger.Debug("MainController", "import skipped, no file selected", nil)
		return nil, nil
	}

	mc.updateStatus("Importing...")
	report, err := mc.importer.Import(mc.opCtx(), path)
	if err != nil {
		mc.handleError("Import failed", err)
		mc.updateStatus("Import failed")
		return nil, err
	}

	mc.updateStatus(fmt.Sprintf("Imported %s", report.FileName))
	mc.emitEvent(EventRecordsChanged, report)
	return report, nil
}

// View opens the record editor for a row
func (mc *MainController) View(row views.Row) (*services.EditorSession, error) {
	if !row.CanView() {
		return nil, services.ErrNoDataStore
	}

	session, err := mc.records.OpenEditor(mc.opCtx(), row.ReportID(), row.Report.DBPath)
	if err != nil {
		mc.handleError("Cannot open record", err)
		return nil, err
	}

	if mc.mainView != nil {
		mc.editor = views.NewEditorDialog(mc.mainView.GetWindow(), session, mc.now())
		mc.editor.SetSaveHandler(func() { mc.SaveEditor(session) })
		mc.editor.SetCancelHandler(func() { mc.CancelEditor(session) })
		mc.editor.Show()
		if session.Missing() {
			mc.editor.ShowWarning("Warning", fmt.Sprintf("Record %d was not found. Saving will create it.", row.ReportID()))
		}
	}
	return session, nil
}

// SaveEditor validates and saves an editor session. Period problems are
// reported as warnings and leave the editor open.
func (mc *MainController) SaveEditor(session *services.EditorSession) error {
	report, err := session.Save(mc.opCtx())
	switch {
	case errors.Is(err, services.ErrInvalidPeriod):
		mc.warnEditor("Start date must not be after the end date.")
		return err
	case errors.Is(err, services.ErrMissingPeriod):
		mc.warnEditor("Both control period dates are required.")
		return err
	case err != nil:
		mc.logger.Error("MainController", err, map[string]interface{}{"id": session.ReportID()})
		if mc.editor != nil {
			mc.editor.ShowError(err)
		}
		return err
	}

	mc.closeEditor()
	mc.updateStatus(fmt.Sprintf("Saved record %d", report.ID))
	mc.emitEvent(EventRecordsChanged, report)
	return nil
}

// CancelEditor discards an editor session
func (mc *MainController) CancelEditor(session *services.EditorSession) {
	session.Cancel()
	mc.closeEditor()
}

// Delete asks for confirmation and deletes the row
func (mc *MainController) Delete(row views.Row) {
	if mc.mainView == nil {
		return
	}
	message := "Delete this empty row?"
	if !row.Placeholder {
		message = fmt.Sprintf("Delete the record from %s and its data file?", row.Report.DateModified)
	}
	mc.mainView.ShowConfirm("Confirm deletion", message, func(ok bool) {
		if ok {
			mc.DeleteConfirmed(row)
		}
	})
}

// DeleteConfirmed deletes a row without asking. The row leaves the table
// right away; the table is not reloaded.
func (mc *MainController) DeleteConfirmed(row views.Row) (services.DeleteResult, error) {
	if row.Placeholder {
		mc.table.Remove(row.Key)
		mc.render()
		return services.DeleteResult{}, nil
	}

	result, err := mc.records.Delete(mc.opCtx(), row.ReportID())
	if err != nil {
		mc.handleError("Delete failed", err)
		return result, err
	}

	mc.table.Remove(row.Key)
	mc.render()

	if result.FileErr != nil {
		mc.handleError("Data file could not be removed", result.FileErr)
	} else {
		mc.updateStatus(fmt.Sprintf("Deleted record %d", row.ReportID()))
	}
	return result, nil
}

// Search filters the table
func (mc *MainController) Search(query string) {
	mc.table.Search(query)
	mc.render()
}

// ClearSearch shows every row again
func (mc *MainController) ClearSearch() {
	mc.table.ClearSearch()
	mc.render()
}

// AddBlankRow appends a placeholder row
func (mc *MainController) AddBlankRow() string {
	key := mc.table.AddBlankRow()
	mc.render()
	return key
}

// Sort orders the table by column
func (mc *MainController) Sort(column views.Column, direction views.SortDirection) {
	mc.table.Sort(column, direction)
	mc.render()
}

// ResetSort restores the default order
func (mc *MainController) ResetSort() {
	mc.table.ResetSort()
	mc.render()
}

// HandleAction dispatches a per-row button
func (mc *MainController) HandleAction(action views.Action, row views.Row) {
	switch action {
	case views.ActionImport:
		mc.Import()
	case views.ActionView:
		mc.View(row)
	case views.ActionDelete:
		mc.Delete(row)
	}
}

func (mc *MainController) render() {
	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowRows(mc.table.VisibleRows(), mc.table.Len())
	mc.mainView.SetSortDescription(mc.table.SortState())
}

func (mc *MainController) closeEditor() {
	if mc.editor != nil {
		mc.editor.Close()
		mc.editor = nil
	}
}

func (mc *MainController) warnEditor(message string) {
	mc.logger.Warning("MainController", message, nil)
	if mc.editor != nil {
		mc.editor.ShowWarning("Warning", message)
	}
}

func (mc *MainController) updateStatus(status string) {
	if mc.mainView != nil {
		mc.mainView.UpdateStatus(status)
	}
}

// Event system methods

func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener(EventRecordsChanged, mc.onRecordsChanged)
}

func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetActionHandler(mc.HandleAction)
	mc.mainView.SetSearchHandler(mc.Search)
	mc.mainView.SetClearSearchHandler(mc.ClearSearch)
	mc.mainView.SetAddRowHandler(func() { mc.AddBlankRow() })
	mc.mainView.SetSortHandler(mc.Sort)
	mc.mainView.SetResetSortHandler(mc.ResetSort)
}

// AddEventListener adds an event handler for a specific event type
func (mc *MainController) AddEventListener(eventType string, handler EventHandler) {
	mc.addEventListener(eventType, handler)
}

func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()

	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent runs the handlers of an event in registration order
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := append([]EventHandler(nil), mc.eventHandlers[eventType]...)
	mc.eventMu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			mc.logger.Error("MainController", err, map[string]interface{}{"event": eventType})
		}
	}
}

func (mc *MainController) onRecordsChanged(interface{}) error {
	return mc.Reload()
}

// handleError logs an error and shows it to the user
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{"context": title})
	if mc.mainView != nil {
		mc.mainView.ShowError(fmt.Errorf("%s: %w", title, err))
	}
}
