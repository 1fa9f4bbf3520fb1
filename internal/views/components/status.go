package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the last action and the record counters
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countLabel  *widget.Label
	sortLabel   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.countLabel = widget.NewLabel("No records")
	sb.sortLabel = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.countLabel,
		widget.NewSeparator(),
		sb.sortLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetCounts shows how many rows are visible out of the total
func (sb *StatusBar) SetCounts(visible, total int) {
	switch {
	case total == 0:
		sb.countLabel.SetText("No records")
	case visible == total:
		sb.countLabel.SetText(fmt.Sprintf("Records: %d", total))
	default:
		sb.countLabel.SetText(fmt.Sprintf("Records: %d of %d", visible, total))
	}
}

// GetCounts returns the counter text
func (sb *StatusBar) GetCounts() string {
	return sb.countLabel.Text
}

// SetSort shows the active sort order
func (sb *StatusBar) SetSort(description string) {
	sb.sortLabel.SetText(description)
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.countLabel.SetText("No records")
	sb.sortLabel.SetText("")
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
