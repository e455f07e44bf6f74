package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/lectio/internal/config"
	"github.com/five82/lectio/internal/controller"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/logging"
	"github.com/five82/lectio/internal/prefs"
	"github.com/five82/lectio/internal/source"
	"github.com/five82/lectio/internal/state"
	"github.com/five82/lectio/internal/ui"
)

// Options configure the lectio application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lectio/prefs.toml
	Source     string // overrides the configured file source when set
	LogLevel   string // overrides the configured log level when set
}

// Env holds the dependencies shared by the TUI and the headless commands.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
	Client    *guideapi.Client
}

// Setup loads configuration and builds the logger and backend client.
// Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if s := strings.TrimSpace(opts.Source); s != "" {
		cfg.Source = strings.ToLower(s)
	}
	if l := strings.TrimSpace(opts.LogLevel); l != "" {
		cfg.LogLevel = strings.ToLower(l)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogPath(), Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := guideapi.NewClient(guideapi.Options{
		ServerURL:       cfg.ServerURL,
		SessionCookie:   cfg.SessionCookie,
		CookieName:      cfg.CookieName,
		RequestTimeout:  cfg.RequestTimeout,
		GenerateTimeout: cfg.GenerateTimeout,
		Logger:          logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger.Info("lectio starting",
		zap.String("server", client.BaseURL()),
		zap.String("source", cfg.Source),
	)

	return &Env{
		Config:    cfg,
		Prefs:     prefs.Load(prefsPath),
		PrefsPath: prefsPath,
		Logger:    logger,
		Client:    client,
	}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// NewSource builds the configured file source. The picker is also returned
// on its own so the UI can initialise it in the background; it is nil for the
// modal source.
func (e *Env) NewSource() (source.Adapter, *source.Picker, error) {
	kind, err := source.ParseKind(e.Config.Source)
	if err != nil {
		return nil, nil, err
	}
	if kind == source.KindPicker {
		picker := source.NewPicker(source.PickerOptions{
			Tokens:       e.Client,
			DeveloperKey: e.Config.DeveloperKey,
			Limit:        e.Config.PickerLimit,
			Logger:       e.Logger,
		})
		return picker, picker, nil
	}
	return source.NewModal(e.Client), nil, nil
}

// NewController wires a controller to the backend and the given source.
func (e *Env) NewController(src source.Adapter) *controller.Controller {
	return controller.New(controller.Options{
		Generator: e.Client,
		Source:    src,
		Logger:    e.Logger,
	})
}

// Run boots the lectio TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	src, picker, err := env.NewSource()
	if err != nil {
		return err
	}

	store := &state.Store{}
	interval := env.Config.HealthInterval

	// Start background poller
	StartPoller(ctx, store, env.Client, interval, env.Logger)

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: env.NewController(src),
		Picker:     picker,
		Store:      store,
		ServerURL:  env.Client.BaseURL(),
		LogPath:    env.Config.LogPath(),
		ThemeName:  env.Prefs.Theme,
		PrefsPath:  env.PrefsPath,
		Logger:     env.Logger,
	}
	err = ui.Run(uiOpts)
	env.Logger.Info("lectio exiting", zap.Error(err))
	return err
}
