package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the search box and the main window buttons
type Toolbar struct {
	container    *fyne.Container
	searchEntry  *widget.Entry
	SearchButton *widget.Button
	ClearButton  *widget.Button
	AddRowButton *widget.Button
	helpButton   *widget.Button
	exitButton   *widget.Button

	// Event handlers
	searchHandler func(string)
	clearHandler  func()
	addRowHandler func()
	helpHandler   func()
	exitHandler   func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.searchEntry = widget.NewEntry()
	t.searchEntry.SetPlaceHolder("Search...")

	t.SearchButton = widget.NewButtonWithIcon("Search", theme.SearchIcon(), nil)
	t.SearchButton.Importance = widget.HighImportance

	t.ClearButton = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), nil)

	t.AddRowButton = widget.NewButtonWithIcon("Add Row", theme.ContentAddIcon(), nil)
	t.AddRowButton.Importance = widget.HighImportance

	t.helpButton = widget.NewButtonWithIcon("Help", theme.HelpIcon(), nil)
	t.exitButton = widget.NewButtonWithIcon("Exit", theme.LogoutIcon(), nil)
}

func (t *Toolbar) buildLayout() {
	searchSection := container.NewBorder(nil, nil, nil,
		container.NewHBox(t.SearchButton, t.ClearButton),
		t.searchEntry,
	)

	actionSection := container.NewHBox(
		t.AddRowButton,
		widget.NewSeparator(),
		t.helpButton,
		t.exitButton,
	)

	t.container = container.NewBorder(nil, nil, nil, actionSection, searchSection)
}

func (t *Toolbar) setupEventHandlers() {
	t.SearchButton.OnTapped = t.search
	t.searchEntry.OnSubmitted = func(string) { t.search() }

	t.ClearButton.OnTapped = func() {
		t.searchEntry.SetText("")
		if t.clearHandler != nil {
			t.clearHandler()
		}
	}

	t.AddRowButton.OnTapped = func() {
		if t.addRowHandler != nil {
			t.addRowHandler()
		}
	}

	t.helpButton.OnTapped = func() {
		if t.helpHandler != nil {
			t.helpHandler()
		}
	}

	t.exitButton.OnTapped = func() {
		if t.exitHandler != nil {
			t.exitHandler()
		}
	}
}

func (t *Toolbar) search() {
	if t.searchHandler != nil {
		t.searchHandler(t.searchEntry.Text)
	}
}

// SetSearchHandler sets the handler run with the query on search
func (t *Toolbar) SetSearchHandler(handler func(string)) {
	t.searchHandler = handler
}

// SetClearHandler sets the handler run after the search box is cleared
func (t *Toolbar) SetClearHandler(handler func()) {
	t.clearHandler = handler
}

// SetAddRowHandler sets the add blank row handler
func (t *Toolbar) SetAddRowHandler(handler func()) {
	t.addRowHandler = handler
}

// SetHelpHandler sets the help dialog handler
func (t *Toolbar) SetHelpHandler(handler func()) {
	t.helpHandler = handler
}

// SetExitHandler sets the exit handler
func (t *Toolbar) SetExitHandler(handler func()) {
	t.exitHandler = handler
}

// SearchEntry exposes the search box
func (t *Toolbar) SearchEntry() *widget.Entry {
	return t.searchEntry
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
