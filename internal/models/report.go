package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DateModifiedLayout is the layout of Report.DateModified.
	DateModifiedLayout = "02.01.2006 15:04:05"
	// PeriodDateLayout is the layout of each half of Report.ControlPeriod.
	PeriodDateLayout = "02.01.2006"
	// StoreTokenLayout names per-file data stores.
	StoreTokenLayout = "02012006_150405"

	periodSeparator = " - "
)

// Report is one row of the catalog: an imported spreadsheet and its
// descriptive metadata.
type Report struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DateModified    string `gorm:"column:date_modified" json:"date_modified"`
	FileName        string `gorm:"column:file_name" json:"file_name"`
	FederalDistrict string `gorm:"column:federal_district" json:"federal_district"`
	ControlLocation string `gorm:"column:control_location" json:"control_location"`
	ControlPeriod   string `gorm:"column:control_period" json:"control_period"`
	DBPath          string `gorm:"column:db_path" json:"db_path"`
}

// TableName keeps the table name compatible with catalogs created by
// earlier versions of the tool.
func (Report) TableName() string {
	return "reports"
}

// HasDataStore reports whether the record points at a per-file store.
func (r Report) HasDataStore() bool {
	return r.DBPath != ""
}

// ModifiedAt parses DateModified. The zero time is returned for empty or
// malformed values.
func (r Report) ModifiedAt() time.Time {
	t, err := time.ParseInLocation(DateModifiedLayout, r.DateModified, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Period parses ControlPeriod.
func (r Report) Period() (ControlPeriod, bool) {
	return ParseControlPeriod(r.ControlPeriod)
}

// FormatDateModified renders t the way DateModified is stored.
func FormatDateModified(t time.Time) string {
	return t.Format(DateModifiedLayout)
}

// StoreToken renders the timestamp token used in data store file names.
func StoreToken(t time.Time) string {
	return t.Format(StoreTokenLayout)
}

// StoreFileName is the file name of the data store created at t.
func StoreFileName(t time.Time) string {
	return "database_" + StoreToken(t) + ".db"
}

// FileNameOf derives Report.FileName from a data store path.
func FileNameOf(dbPath string) string {
	if dbPath == "" {
		return ""
	}
	return filepath.Base(dbPath)
}

// ControlPeriod is the date range a control took place in. Only the calendar
// date of Start and End is meaningful.
type ControlPeriod struct {
	Start time.Time
	End   time.Time
}

// NewControlPeriod truncates both ends to calendar dates.
func NewControlPeriod(start, end time.Time) ControlPeriod {
	return ControlPeriod{Start: dateOnly(start), End: dateOnly(end)}
}

// Valid reports whether Start is not after End.
func (p ControlPeriod) Valid() bool {
	return !dateOnly(p.Start).After(dateOnly(p.End))
}

func (p ControlPeriod) String() string {
	return p.Start.Format(PeriodDateLayout) + periodSeparator + p.End.Format(PeriodDateLayout)
}

// ParseControlPeriod parses "dd.mm.yyyy - dd.mm.yyyy". It does not check
// ordering.
func ParseControlPeriod(s string) (ControlPeriod, bool) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), periodSeparator)
	if !ok {
		return ControlPeriod{}, false
	}
	from, err := time.ParseInLocation(PeriodDateLayout, strings.TrimSpace(start), time.Local)
	if err != nil {
		return ControlPeriod{}, false
	}
	to, err := time.ParseInLocation(PeriodDateLayout, strings.TrimSpace(end), time.Local)
	if err != nil {
		return ControlPeriod{}, false
	}
	return ControlPeriod{Start: from, End: to}, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (r Report) String() string {
	return fmt.Sprintf("ID: %d, Date Modified: %s, File Name: %s, Federal District: %s, Control Location: %s, Control Period: %s, DB Path: %s",
		r.ID, r.DateModified, r.FileName, r.FederalDistrict, r.ControlLocation, r.ControlPeriod, r.DBPath)
}
