package app

import (
	"context"
	"fmt"

	"report-catalog/internal/config"
	"report-catalog/internal/controllers"
	"report-catalog/internal/logger"
	"report-catalog/internal/services"
	"report-catalog/internal/shutdown"
	"report-catalog/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Report Catalog"
	AppID      = "com.reportcatalog.desktop"
	AppVersion = "1.0.0"
)

// Application wires the catalog services to the Fyne window
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	services   *services.Services
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

// NewApplication opens the catalog and builds the main window
func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	svc, err := services.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()
	window.SetMaster()

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("logger", shutdown.Func(func() {
		log.Info("Application", "shutdown complete", nil)
	}))
	shutdownMgr.Register("catalog", svc)

	controller := controllers.NewMainController(svc.Importer, svc.Records, log)
	controller.SetContext(shutdownMgr.Context())
	view := views.NewMainView(window)
	controller.SetMainView(view)
	view.SetExitHandler(func() { fyneApp.Quit() })

	log.Info("Application", "application initialized", map[string]interface{}{
		"version":    AppVersion,
		"data_dir":   cfg.DataDir,
		"header_row": cfg.HeaderRow,
	})

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		services:   svc,
		controller: controller,
		view:       view,
		shutdown:   shutdownMgr,
	}, nil
}

// Run shows the window and blocks until the GUI exits or ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go func() {
		select {
		case <-ctx.Done():
			a.shutdown.Shutdown()
			fyne.Do(a.fyneApp.Quit)
		case <-a.shutdown.Done():
		}
	}()

	if err := a.controller.Reload(); err != nil {
		a.logger.Warning("Application", "initial catalog load failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
