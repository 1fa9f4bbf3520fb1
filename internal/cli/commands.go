package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"report-catalog/internal/catalog"
	"report-catalog/internal/services"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a spreadsheet as a new catalog record",
		Long: `Import reads the first sheet of an .xlsx or .xls workbook, stores its rows
in a new database in the data directory and registers a catalog record
pointing at it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withServices(func(svc *services.Services) error {
				report, err := svc.Importer.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Report(*report)
			})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withServices(func(svc *services.Services) error {
				reports, err := svc.Records.List(cmd.Context())
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Reports(reports)
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|date-modified>",
		Short: "Delete a record and its data file",
		Long: `Delete removes the catalog record and its database file without asking
for confirmation. The record is selected by id or by its exact
modification timestamp (dd.mm.yyyy HH:MM:SS). Deleting a record that does
not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withServices(func(svc *services.Services) error {
				id, err := resolveID(cmd, svc.Catalog, args[0])
				if err != nil {
					return err
				}

				result, err := svc.Records.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}

				outcome := DeleteOutcome{
					ID:          id,
					Deleted:     result.Deleted,
					FileRemoved: result.FileRemoved,
					Restored:    result.Restored,
				}
				if result.FileErr != nil {
					outcome.FileError = result.FileErr.Error()
				}
				return rootOpts.formatter(cmd).Deleted(outcome)
			})
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record and the shape of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withServices(func(svc *services.Services) error {
				id, err := resolveID(cmd, svc.Catalog, args[0])
				if err != nil {
					return err
				}

				report, err := svc.Records.Get(cmd.Context(), id)
				if err != nil {
					return err
				}

				detail := ReportDetail{Report: *report}
				if report.HasDataStore() {
					sheet, err := svc.Records.LoadSheet(cmd.Context(), report)
					if err != nil {
						return err
					}
					detail.Rows, _ = sheet.Dimensions()
					detail.Columns = sheet.Columns
				}
				return rootOpts.formatter(cmd).Detail(detail)
			})
		},
	}
}

// resolveID accepts a numeric id or a date_modified value. An unknown
// timestamp resolves to id 0, which matches no record.
func resolveID(cmd *cobra.Command, store *catalog.Store, arg string) (uint, error) {
	if id, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return uint(id), nil
	}

	report, err := store.FindByDateModified(cmd.Context(), arg)
	if err == nil {
		return report.ID, nil
	}
	if services.IsNotFound(err) {
		return 0, nil
	}
	return 0, fmt.Errorf("look up %q: %w", arg, err)
}
