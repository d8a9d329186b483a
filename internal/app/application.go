package app

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/BloodDesk/internal/backend"
	"github.com/Rorical/BloodDesk/internal/config"
	"github.com/Rorical/BloodDesk/internal/core"
	"github.com/Rorical/BloodDesk/internal/dispatcher"
	"github.com/Rorical/BloodDesk/internal/eventbus"
	"github.com/Rorical/BloodDesk/internal/logging"
	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/internal/rejection"
	"github.com/Rorical/BloodDesk/internal/update"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.RequestService
	model      *AppModel
	logger     *slog.Logger
	closeLog   func() error
}

type AppModel struct {
	appModel   models.AppModel
	modal      *rejection.Modal
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication(cfg *config.Config) (*Application, error) {
	logger, closeLog, err := logging.New(cfg.GetLogLevel(), cfg.GetLogFormat(), cfg.GetLogFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	be, describe, err := backend.FromConfig(cfg, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(busErr eventbus.EventBusError) {
		logger.Warn("event bus error", "operation", busErr.Operation, "error", busErr.Err)
	})

	disp := dispatcher.NewEventDispatcher(eb)
	service := core.NewRequestService(be, eb, logger, describe)

	model := &AppModel{
		appModel:   createInitialAppModel(cfg, service),
		dispatcher: disp,
	}
	notifier := rejection.NotifyFunc(func(message string) {
		update.ShowNotice(&model.appModel, message, true)
	})
	model.modal = rejection.NewModal(disp.Context(), service.ConfirmerFor, notifier, logger)

	logger.Info("application created", "profile", cfg.ActiveProfile, "backend", describe)

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		logger:     logger,
		closeLog:   closeLog,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	app.logger.Info("application stopped")
	if err := app.closeLog(); err != nil {
		fmt.Printf("Failed to close log: %v\n", err)
	}
}

func createInitialAppModel(cfg *config.Config, service *core.RequestService) models.AppModel {
	// No initial requests in UI - they come from core as single source of truth
	return models.AppModel{
		Requests:         make([]models.BloodRequest, 0),
		Status:           "Loading",
		Loading:          true,
		Operator:         cfg.GetOperator(),
		ProfileName:      cfg.ActiveProfile,
		BackendAvailable: service.IsReady(),
	}
}
