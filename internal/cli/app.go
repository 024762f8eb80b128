package cli

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"facekey/internal/config"
	"facekey/internal/dispatch"
	"facekey/internal/input"
	"facekey/internal/logging"
	"facekey/internal/store"
)

// setupLogger is replaced in tests to keep log files out of the user's
// state directory.
var setupLogger = logging.SetupLogger

// app holds the process-wide components. They are created once and live
// until Close.
type app struct {
	cfg      *config.Config
	exec     *input.Executor
	settings *store.Store
	profiles *store.Store
	disp     *dispatch.Dispatcher
}

func newApp(cfg *config.Config) (*app, error) {
	open, err := input.OpenerFor(cfg.Input.Backend, logging.GetLogger("dryrun"))
	if err != nil {
		return nil, errors.Wrap(err, "configuring input")
	}

	a := &app{
		cfg:      cfg,
		exec:     input.NewExecutor(open),
		settings: store.New(cfg.DataDir, store.Settings),
		profiles: store.New(cfg.DataDir, store.Profiles),
	}
	a.disp = dispatch.New(a.exec, a.settings, a.profiles)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Str("input_backend", cfg.Input.Backend).
		Msg("Host initialized")
	return a, nil
}

// document returns the store for a document name.
func (a *app) document(name string) *store.Store {
	if name == store.Profiles {
		return a.profiles
	}
	return a.settings
}

func (a *app) Close() {
	if err := a.exec.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close input backend")
	}
}
