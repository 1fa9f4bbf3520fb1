package main

import (
	"context"
	"fmt"
	"os"

	"report-catalog/internal/app"
	"report-catalog/internal/cli"
	"report-catalog/internal/config"
	"report-catalog/internal/logger"
)

func main() {
	root := cli.NewRootCommand(launchGUI)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// launchGUI runs the desktop application until its window is closed
func launchGUI(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info("Main", "starting application", map[string]interface{}{
		"version":   app.AppVersion,
		"log_level": cfg.LogLevel,
	})

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("application initialization failed: %w", err)
	}

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("application execution failed: %w", err)
	}

	log.Info("Main", "application terminated", nil)
	return nil
}
