package views

import (
	"fmt"
	"time"

	"report-catalog/internal/services"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const editorCellWidth = 140

// EditorDialog is the modal record editor. Every change is pushed into the
// session immediately; nothing is persisted until the save handler calls
// session.Save.
type EditorDialog struct {
	window  fyne.Window
	session *services.EditorSession
	dialog  *dialog.CustomDialog

	districtEntry *widget.Entry
	locationEntry *widget.Entry
	startEntry    *widget.DateEntry
	endEntry      *widget.DateEntry
	grid          *widget.Table
	saveButton    *widget.Button
	cancelButton  *widget.Button

	saveHandler   func()
	cancelHandler func()
}

// NewEditorDialog creates the editor for an open session. Unset period dates
// default to today.
func NewEditorDialog(window fyne.Window, session *services.EditorSession, today time.Time) *EditorDialog {
	ed := &EditorDialog{
		window:  window,
		session: session,
	}

	ed.initializeComponents(today)
	ed.buildLayout()
	ed.setupEventHandlers()

	return ed
}

func (ed *EditorDialog) initializeComponents(today time.Time) {
	ed.districtEntry = widget.NewEntry()
	ed.districtEntry.SetText(ed.session.FederalDistrict())

	ed.locationEntry = widget.NewEntry()
	ed.locationEntry.SetText(ed.session.ControlLocation())

	start, end := ed.session.Period()
	if start == nil {
		start = &today
		_ = ed.session.SetStart(start)
	}
	if end == nil {
		end = &today
		_ = ed.session.SetEnd(end)
	}
	ed.startEntry = widget.NewDateEntry()
	ed.startEntry.SetDate(start)
	ed.endEntry = widget.NewDateEntry()
	ed.endEntry.SetDate(end)

	ed.grid = ed.newGrid()

	ed.saveButton = widget.NewButton("Save", nil)
	ed.saveButton.Importance = widget.HighImportance
	ed.cancelButton = widget.NewButton("Cancel", nil)
}

func (ed *EditorDialog) newGrid() *widget.Table {
	sheet := ed.session.Sheet()
	grid := widget.NewTable(
		func() (int, int) { return sheet.Dimensions() },
		func() fyne.CanvasObject { return widget.NewEntry() },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			entry := o.(*widget.Entry)
			entry.OnChanged = nil
			entry.SetText(sheet.Cell(id.Row, id.Col).String())
			row, col := id.Row, id.Col
			entry.OnChanged = func(text string) {
				_ = ed.session.SetCell(row, col, text)
			}
		},
	)
	grid.ShowHeaderRow = true
	grid.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	grid.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		name := ""
		if id.Col >= 0 && id.Col < len(sheet.Columns) {
			name = sheet.Columns[id.Col]
		}
		o.(*widget.Label).SetText(name)
	}
	_, cols := sheet.Dimensions()
	for c := 0; c < cols; c++ {
		grid.SetColumnWidth(c, editorCellWidth)
	}
	return grid
}

func (ed *EditorDialog) buildLayout() {
	form := widget.NewForm(
		widget.NewFormItem("Federal District", ed.districtEntry),
		widget.NewFormItem("Control Location", ed.locationEntry),
		widget.NewFormItem("Start Date", ed.startEntry),
		widget.NewFormItem("End Date", ed.endEntry),
	)

	buttons := container.NewHBox(layout.NewSpacer(), ed.cancelButton, ed.saveButton)

	content := container.NewBorder(form, buttons, nil, nil, ed.grid)

	title := "Record"
	if id := ed.session.ReportID(); id != 0 {
		title = fmt.Sprintf("Record %d", id)
	}
	ed.dialog = dialog.NewCustomWithoutButtons(title, content, ed.window)
	ed.dialog.Resize(fyne.NewSize(900, 600))
}

func (ed *EditorDialog) setupEventHandlers() {
	ed.districtEntry.OnChanged = func(text string) {
		_ = ed.session.SetFederalDistrict(text)
	}
	ed.locationEntry.OnChanged = func(text string) {
		_ = ed.session.SetControlLocation(text)
	}
	ed.startEntry.OnChanged = func(t *time.Time) {
		_ = ed.session.SetStart(t)
	}
	ed.endEntry.OnChanged = func(t *time.Time) {
		_ = ed.session.SetEnd(t)
	}

	ed.saveButton.OnTapped = func() {
		if ed.saveHandler != nil {
			ed.saveHandler()
		}
	}
	ed.cancelButton.OnTapped = func() {
		if ed.cancelHandler != nil {
			ed.cancelHandler()
		}
	}
}

// SetSaveHandler sets the handler for the Save button
func (ed *EditorDialog) SetSaveHandler(handler func()) {
	ed.saveHandler = handler
}

// SetCancelHandler sets the handler for the Cancel button
func (ed *EditorDialog) SetCancelHandler(handler func()) {
	ed.cancelHandler = handler
}

// Session returns the session being edited
func (ed *EditorDialog) Session() *services.EditorSession {
	return ed.session
}

// ShowWarning displays a warning on top of the editor
func (ed *EditorDialog) ShowWarning(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, ed.window)
	})
}

// ShowError displays an error on top of the editor
func (ed *EditorDialog) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, ed.window)
	})
}

// Show displays the editor
func (ed *EditorDialog) Show() {
	fyne.Do(func() {
		ed.dialog.Show()
	})
}

// Close hides the editor
func (ed *EditorDialog) Close() {
	fyne.Do(func() {
		ed.dialog.Hide()
	})
}
