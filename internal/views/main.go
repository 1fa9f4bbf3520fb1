package views

import (
	"fmt"

	"report-catalog/internal/spreadsheet"
	"report-catalog/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Action is a per-row button of the catalog table
type Action int

const (
	ActionImport Action = iota
	ActionView
	ActionDelete
)

var actionLabels = []string{"Import", "View", "Delete"}

var columnWidths = []float32{170, 230, 170, 170, 190, 80, 80, 80}

// sortMenuColumns are the columns offered in the Tools menu
var sortMenuColumns = []Column{ColumnFederalDistrict, ColumnControlLocation, ColumnDateModified}

const helpText = `Main window
  Search: show rows containing the text in any column
  Clear: show every row again
  Add Row: append an empty row to the table
  Import: choose an Excel file and add it to the catalog
  View: open the record editor for the row
  Delete: remove the record and its data file after confirmation
  Tools menu: sort by federal district, control location or date

Record editor
  Edit the federal district, control location and control period
  Edit any cell of the imported table
  Save writes all changes, Cancel discards them

Shortcuts
  Ctrl+N  add row
  Ctrl+A  help
  Ctrl+Q  quit`

// MainView is the catalog window: toolbar, record table and status bar
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	table         *widget.Table
	statusBar     *components.StatusBar

	rows []Row

	// Event handlers - connected to controller
	actionHandler    func(Action, Row)
	searchHandler    func(string)
	clearHandler     func()
	addRowHandler    func()
	sortHandler      func(Column, SortDirection)
	resetSortHandler func()
	exitHandler      func()
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()
	view.setupMenu()
	view.setupShortcuts()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
	mv.table = mv.newRecordTable()
}

func (mv *MainView) newRecordTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) { return len(mv.rows), len(Columns) + len(actionLabels) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewStack(label, widget.NewButton("", nil))
		},
		mv.updateCell,
	)
	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		if id.Col < len(Columns) {
			label.SetText(Columns[id.Col].String())
			return
		}
		label.SetText("")
	}
	for i, w := range columnWidths {
		table.SetColumnWidth(i, w)
	}
	return table
}

func (mv *MainView) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	objects := o.(*fyne.Container).Objects
	label := objects[0].(*widget.Label)
	button := objects[1].(*widget.Button)

	if id.Row >= len(mv.rows) {
		label.Hide()
		button.Hide()
		return
	}
	row := mv.rows[id.Row]

	if id.Col < len(Columns) {
		button.Hide()
		label.SetText(row.Cell(Columns[id.Col]))
		label.Show()
		return
	}

	action := Action(id.Col - len(Columns))
	label.Hide()
	button.SetText(actionLabels[action])
	button.OnTapped = func() {
		if mv.actionHandler != nil {
			mv.actionHandler(action, row)
		}
	}
	if action == ActionView && !row.CanView() {
		button.Disable()
	} else {
		button.Enable()
	}
	button.Show()
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),   // top
		mv.statusBar.GetContainer(), // bottom
		nil,                         // left
		nil,                         // right
		mv.table,                    // center
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetSearchHandler(func(query string) {
		if mv.searchHandler != nil {
			mv.searchHandler(query)
		}
	})

	mv.toolbar.SetClearHandler(func() {
		if mv.clearHandler != nil {
			mv.clearHandler()
		}
	})

	mv.toolbar.SetAddRowHandler(mv.addRow)
	mv.toolbar.SetHelpHandler(mv.ShowHelp)
	mv.toolbar.SetExitHandler(mv.exit)
}

func (mv *MainView) setupMenu() {
	sortMenu := func(label string, direction SortDirection) *fyne.MenuItem {
		item := fyne.NewMenuItem(label, nil)
		items := make([]*fyne.MenuItem, 0, len(sortMenuColumns))
		for _, column := range sortMenuColumns {
			items = append(items, fyne.NewMenuItem(column.String(), func() {
				if mv.sortHandler != nil {
					mv.sortHandler(column, direction)
				}
			}))
		}
		item.ChildMenu = fyne.NewMenu("", items...)
		return item
	}

	reset := fyne.NewMenuItem("Reset Sort", func() {
		if mv.resetSortHandler != nil {
			mv.resetSortHandler()
		}
	})

	tools := fyne.NewMenu("Tools",
		sortMenu("Sort Ascending", Ascending),
		sortMenu("Sort Descending", Descending),
		fyne.NewMenuItemSeparator(),
		reset,
	)
	mv.window.SetMainMenu(fyne.NewMainMenu(tools))
}

func (mv *MainView) setupShortcuts() {
	canvas := mv.window.Canvas()
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		mv.addRow()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		mv.ShowHelp()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		mv.exit()
	})
}

func (mv *MainView) addRow() {
	if mv.addRowHandler != nil {
		mv.addRowHandler()
	}
}

func (mv *MainView) exit() {
	if mv.exitHandler != nil {
		mv.exitHandler()
		return
	}
	mv.window.Close()
}

// Event handler setters - called by controller

// SetActionHandler sets the handler for the per-row buttons
func (mv *MainView) SetActionHandler(handler func(Action, Row)) {
	mv.actionHandler = handler
}

// SetSearchHandler sets the handler for search requests
func (mv *MainView) SetSearchHandler(handler func(string)) {
	mv.searchHandler = handler
}

// SetClearSearchHandler sets the handler for clearing the search
func (mv *MainView) SetClearSearchHandler(handler func()) {
	mv.clearHandler = handler
}

// SetAddRowHandler sets the handler for adding a blank row
func (mv *MainView) SetAddRowHandler(handler func()) {
	mv.addRowHandler = handler
}

// SetSortHandler sets the handler for the Tools menu sort entries
func (mv *MainView) SetSortHandler(handler func(Column, SortDirection)) {
	mv.sortHandler = handler
}

// SetResetSortHandler sets the handler for Reset Sort
func (mv *MainView) SetResetSortHandler(handler func()) {
	mv.resetSortHandler = handler
}

// SetExitHandler sets the handler for Exit and Ctrl+Q
func (mv *MainView) SetExitHandler(handler func()) {
	mv.exitHandler = handler
}

// UI update methods - called by controller

// ShowRows replaces the displayed rows
func (mv *MainView) ShowRows(rows []Row, total int) {
	fyne.Do(func() {
		mv.rows = rows
		mv.table.Refresh()
		mv.statusBar.SetCounts(len(rows), total)
	})
}

// DisplayedRows returns the rows currently shown
func (mv *MainView) DisplayedRows() []Row {
	return mv.rows
}

// SetSortDescription shows the active sort in the status bar
func (mv *MainView) SetSortDescription(column Column, direction SortDirection) {
	order := "ascending"
	if direction == Descending {
		order = "descending"
	}
	fyne.Do(func() {
		mv.statusBar.SetSort(fmt.Sprintf("Sorted by %s, %s", column, order))
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ShowWarning displays a warning dialog
func (mv *MainView) ShowWarning(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// ShowSpreadsheetDialog asks for an Excel file. The callback receives an
// empty path when nothing was chosen.
func (mv *MainView) ShowSpreadsheetDialog(callback func(path string, err error)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				callback("", err)
				return
			}
			path := reader.URI().Path()
			reader.Close()
			callback(path, nil)
		}, mv.window)
		d.SetFilter(storage.NewExtensionFileFilter(spreadsheet.Extensions))
		d.Show()
	})
}

// ShowHelp displays the help dialog
func (mv *MainView) ShowHelp() {
	fyne.Do(func() {
		text := widget.NewLabel(helpText)
		text.TextStyle = fyne.TextStyle{Monospace: true}
		dialog.ShowCustom("Help", "Close", container.NewVScroll(text), mv.window)
	})
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetContainer returns the main container
func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}

// GetToolbar returns the toolbar component
func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

// GetStatusBar returns the status bar component
func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}
