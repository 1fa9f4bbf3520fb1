package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"report-catalog/internal/models"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// ReportDetail is the output of the show command
type ReportDetail struct {
	Report  models.Report `json:"report"`
	Rows    int           `json:"rows"`
	Columns []string      `json:"columns"`
}

// DeleteOutcome is the output of the delete command
type DeleteOutcome struct {
	ID          uint   `json:"id"`
	Deleted     bool   `json:"deleted"`
	FileRemoved bool   `json:"file_removed"`
	Restored    bool   `json:"restored"`
	FileError   string `json:"file_error,omitempty"`
}

var reportHeader = []string{"ID", "DATE MODIFIED", "FILE NAME", "FEDERAL DISTRICT", "CONTROL LOCATION", "CONTROL PERIOD"}

// Reports prints a list of catalog records
func (f *OutputFormatter) Reports(reports []models.Report) error {
	if reports == nil {
		reports = []models.Report{}
	}
	if f.Format == "json" {
		return f.json(reports)
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(reportHeader, "\t"))
	for _, r := range reports {
		fmt.Fprintln(tw, strings.Join(reportCells(r), "\t"))
	}
	return tw.Flush()
}

// Report prints one record
func (f *OutputFormatter) Report(r models.Report) error {
	if f.Format == "json" {
		return f.json(r)
	}
	return f.fields(reportFields(r))
}

// Detail prints one record with the shape of its data
func (f *OutputFormatter) Detail(d ReportDetail) error {
	if f.Format == "json" {
		if d.Columns == nil {
			d.Columns = []string{}
		}
		return f.json(d)
	}
	fields := reportFields(d.Report)
	fields = append(fields,
		[2]string{"Rows", fmt.Sprint(d.Rows)},
		[2]string{"Columns", fmt.Sprint(len(d.Columns))},
	)
	if err := f.fields(fields); err != nil {
		return err
	}
	for i, c := range d.Columns {
		fmt.Fprintf(f.Writer, "  %d. %s\n", i+1, c)
	}
	return nil
}

// Deleted prints the result of a delete
func (f *OutputFormatter) Deleted(o DeleteOutcome) error {
	if f.Format == "json" {
		return f.json(o)
	}
	switch {
	case !o.Deleted:
		_, err := fmt.Fprintf(f.Writer, "record %d not found, nothing deleted\n", o.ID)
		return err
	case o.Restored:
		_, err := fmt.Fprintf(f.Writer, "record %d kept: data file could not be removed: %s\n", o.ID, o.FileError)
		return err
	default:
		_, err := fmt.Fprintf(f.Writer, "deleted record %d\n", o.ID)
		return err
	}
}

func (f *OutputFormatter) json(v interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *OutputFormatter) fields(fields [][2]string) error {
	tw := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
	for _, kv := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", kv[0], kv[1])
	}
	return tw.Flush()
}

func reportCells(r models.Report) []string {
	return []string{
		fmt.Sprint(r.ID),
		r.DateModified,
		r.FileName,
		r.FederalDistrict,
		r.ControlLocation,
		r.ControlPeriod,
	}
}

func reportFields(r models.Report) [][2]string {
	return [][2]string{
		{"ID", fmt.Sprint(r.ID)},
		{"Date Modified", r.DateModified},
		{"File Name", r.FileName},
		{"Federal District", r.FederalDistrict},
		{"Control Location", r.ControlLocation},
		{"Control Period", r.ControlPeriod},
		{"DB Path", r.DBPath},
	}
}
