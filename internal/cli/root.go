// Package cli implements the report-catalog command line. Without a
// subcommand it starts the desktop application.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"report-catalog/internal/config"
	"report-catalog/internal/logger"
	"report-catalog/internal/services"
)

// Launcher starts the GUI
type Launcher func(ctx context.Context, cfg *config.Config, log logger.Logger) error

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	DataDir    string
	HeaderRow  int
	LogLevel   string
	Format     string // "json" | "text"

	cfg *config.Config
	log logger.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. launch runs when no subcommand
// is given.
func NewRootCommand(launch Launcher) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "report-catalog",
		Short: "Catalog of imported inspection report spreadsheets",
		Long: `report-catalog imports Excel reports into per-file SQLite databases and
keeps a catalog of them with their federal district, control location and
control period.

Run without arguments to open the desktop application.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if launch == nil {
				return cmd.Help()
			}
			return launch(cmd.Context(), opts.cfg, opts.log)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default report-catalog.yaml next to the binary or in the working directory)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding reports.db and the imported databases")
	cmd.PersistentFlags().IntVar(&opts.HeaderRow, "header-row", -1, "zero-based spreadsheet row holding the column names")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warning|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.HeaderRow >= 0 {
		cfg.HeaderRow = o.HeaderRow
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	o.cfg = cfg
	o.log = logger.New(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		Out:   cmd.ErrOrStderr(),
	})
	return nil
}

// withServices opens the catalog for the duration of fn
func (o *RootOptions) withServices(fn func(*services.Services) error) error {
	svc, err := services.Open(o.cfg, o.log)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
