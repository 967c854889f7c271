package main

import (
	"github.com/rs/zerolog"
	"github.com/zkmkarlsruhe/dnschanger/internal/app"
	"github.com/zkmkarlsruhe/dnschanger/internal/config"
	"github.com/zkmkarlsruhe/dnschanger/internal/logging"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

// environment is everything the GUI and the CLI commands share.
type environment struct {
	config *config.Config
	log    zerolog.Logger
	store  *store.Store
	core   *app.App
}

// setup loads settings and entries and wires the host implementations.
// entriesFile overrides the configured entries file when not empty. The
// returned environment always carries a usable logger.
func setup(entriesFile string) (*environment, error) {
	env := &environment{log: logging.Setup("info")}

	cfg, err := config.Load()
	if err != nil {
		env.log.Warn().Err(err).Msg("Failed to load settings, using defaults without saving them")
		cfg = config.Fallback()
	}
	env.config = cfg
	env.log = logging.Setup(cfg.LogLevel)

	if entriesFile == "" {
		entriesFile = cfg.EntriesFile
	}
	env.store = store.New(entriesFile, cfg.CorruptPolicy, env.log)
	if _, err := env.store.Load(); err != nil {
		return env, err
	}

	runner := system.NewExecRunner(cfg.Timeout(), env.log)
	env.core = app.New(
		env.store,
		system.NewConfigurator(runner, env.log),
		system.NewInspector(runner, cfg.LookupHost, env.log),
		env.log,
	)
	return env, nil
}
