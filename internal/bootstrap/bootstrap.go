package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	breakinadapter "cigbreak/internal/modules/breaksession/adapter/in"
	breakoutadapter "cigbreak/internal/modules/breaksession/adapter/out"
	breakout "cigbreak/internal/modules/breaksession/port/out"
	breakservice "cigbreak/internal/modules/breaksession/service"
	breakusecase "cigbreak/internal/modules/breaksession/usecase"
	clipinadapter "cigbreak/internal/modules/clip/adapter/in"
	clipoutadapter "cigbreak/internal/modules/clip/adapter/out"
	clipout "cigbreak/internal/modules/clip/port/out"
	clipservice "cigbreak/internal/modules/clip/service"
	clipusecase "cigbreak/internal/modules/clip/usecase"
	reminderinadapter "cigbreak/internal/modules/reminder/adapter/in"
	reminderoutadapter "cigbreak/internal/modules/reminder/adapter/out"
	reminderdto "cigbreak/internal/modules/reminder/dto"
	reminderout "cigbreak/internal/modules/reminder/port/out"
	reminderservice "cigbreak/internal/modules/reminder/service"
	reminderusecase "cigbreak/internal/modules/reminder/usecase"
	statsinadapter "cigbreak/internal/modules/stats/adapter/in"
	statsoutadapter "cigbreak/internal/modules/stats/adapter/out"
	statsout "cigbreak/internal/modules/stats/port/out"
	statsservice "cigbreak/internal/modules/stats/service"
	statsusecase "cigbreak/internal/modules/stats/usecase"
	"cigbreak/internal/platform/clock"
	"cigbreak/internal/platform/config"
	"cigbreak/internal/platform/id"
	"cigbreak/internal/platform/logger"
	"cigbreak/internal/platform/schedule"
	uiapp "cigbreak/internal/ui/app"
)

type App struct {
	ClipCLI   clipinadapter.CLIHandler
	StatsCLI  statsinadapter.CLIHandler
	BreakTUI  breakinadapter.TUIHandler
	Reminders reminderinadapter.Handler
	// Alerts carries reminders for in-process display. It is nil unless the
	// terminal notifier is configured.
	Alerts <-chan reminderdto.Alert

	Config config.Config
	Log    *slog.Logger

	closers []io.Closer
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	log = logger.OrDiscard(log)
	clk := clock.SystemClock{}
	sched := schedule.Real{}
	app := &App{Config: cfg, Log: log}

	var catalog clipout.CatalogStore
	if cfg.CatalogPath != "" {
		catalog = clipoutadapter.NewFileCatalogStore(cfg.CatalogPath)
	} else {
		catalog = clipoutadapter.NewEmbeddedCatalogStore()
	}
	clipUC := clipusecase.NewInteractor(clipservice.NewClipService(catalog, clipservice.NewSelector(nil), log.With("module", "clip")))

	kv, err := app.keyValueStore(cfg, clk)
	if err != nil {
		return nil, err
	}
	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(kv, log.With("module", "stats")))

	var player breakout.Player
	if cfg.OpenBrowser {
		player = breakoutadapter.NewBrowserPlayer()
	}
	breakLog := log.With("module", "breaksession")
	breakUC := breakusecase.NewInteractor(
		breakservice.NewBreakService(clipUC, sched, clk, id.UUID{}, cfg.SegmentDuration(), breakLog),
		clipUC,
		statsUC,
		player,
		breakLog,
	)

	notifier := app.notifier(cfg)
	reminderUC := reminderusecase.NewInteractor(
		reminderservice.NewReminderService(notifier, sched, log.With("module", "reminder")),
		statsUC,
	)

	app.ClipCLI = clipinadapter.NewCLIHandler(clipUC)
	app.StatsCLI = statsinadapter.NewCLIHandler(statsUC)
	app.BreakTUI = breakinadapter.NewTUIHandler(breakUC)
	app.Reminders = reminderinadapter.NewHandler(reminderUC)
	return app, nil
}

func (a *App) keyValueStore(cfg config.Config, clk clock.Clock) (statsout.KeyValueStore, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		store, err := statsoutadapter.NewSQLiteKeyValueStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return statsoutadapter.NewFileKeyValueStore(cfg.KVDir), nil
	}
}

func (a *App) notifier(cfg config.Config) reminderout.Notifier {
	switch cfg.Notifier {
	case config.NotifierDesktop:
		return reminderoutadapter.NewDesktopNotifier()
	case config.NotifierNone:
		return reminderoutadapter.NoopNotifier{}
	default:
		ch := reminderoutadapter.NewChannelNotifier(4)
		a.Alerts = ch.C()
		return ch
	}
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// OpenLogFile builds a logger that appends to the configured log file, for
// surfaces that own the terminal.
func OpenLogFile(cfg config.Config) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := logger.New(logger.Config{
		Writer:  f,
		Format:  cfg.LogFormat,
		Level:   logger.ParseLevel(cfg.LogLevel),
		NoColor: true,
	})
	return log, f, nil
}

func RunTUI(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := uiapp.NewModel(
		app.Config.SegmentDuration(),
		app.ClipCLI,
		app.StatsCLI,
		app.BreakTUI,
		app.Reminders,
		app.BreakTUI.Events(ctx),
		app.Alerts,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	app.Reminders.Disable(ctx)
	return err
}
