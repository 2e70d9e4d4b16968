package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// newLogger builds the command logger from --log-level and --log-file.
// Full-screen commands pass quiet=true: without a log file they must not
// write to the terminal they draw on.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w       io.Writer = os.Stderr
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, cleanup, nil
}

// gameSettings is everything the flags decide before a game starts.
type gameSettings struct {
	base   config.Match3Config // As loaded, before the preset
	cfg    config.Match3Config // Preset applied
	preset config.DifficultyPreset
	levels []levels.Level
}

// loadGameSettings reads config, difficulty and levels from the flags and
// hands them to the match3 package for games created through the registry.
func loadGameSettings(logger *log.Logger) (gameSettings, error) {
	base, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return gameSettings{}, err
	}
	logger.Debug("config loaded", "source", config.ConfigSource(flagConfig))

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return gameSettings{}, err
	}

	list, err := loadLevels()
	if err != nil {
		return gameSettings{}, err
	}

	s := gameSettings{base: base, cfg: withPreset(base, preset), preset: preset, levels: list}
	match3.SetConfig(s.cfg)
	match3.SetLevels(list)
	match3.SetLogger(logger)
	return s, nil
}

// withPreset returns a copy of cfg with the difficulty preset applied.
func withPreset(cfg config.Match3Config, preset config.DifficultyPreset) config.Match3Config {
	config.ApplyMatch3Preset(&cfg, preset)
	return cfg
}

// loadLevels returns the campaign from --levels or the built-in one.
func loadLevels() ([]levels.Level, error) {
	if flagLevels == "" {
		return levels.Campaign()
	}
	list, err := levels.NewLoader(flagLevels).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no valid levels in %s", flagLevels)
	}
	return list, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}
