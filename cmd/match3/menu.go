package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker menu",
	Long: `Start in interactive menu mode.

Pick campaign, endless, or a campaign level to start on, and cycle the
difficulty preset with Left/Right. After a game ends you return to the
menu. Tab opens the high score table.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  match3 menu
  match3 menu --difficulty easy
  match3 menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, cleanup, err := newLogger(true)
	if err != nil {
		return err
	}
	defer cleanup()

	settings, err := loadGameSettings(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	cfg := runtimeConfig()
	preset := settings.preset

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, settings.levels, preset, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Preset

		// Check if user quit
		if menuResult.Quit {
			return nil
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		sel := menuResult.Selection
		if sel == nil {
			return nil
		}

		// Settings are read when the game is created
		match3.SetConfig(withPreset(settings.base, sel.Preset))
		match3.SetStartLevel(sel.StartLevel)

		game, err := registry.Create(sel.GameID())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh board for each game unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting", "game", sel.GameID(), "level", sel.StartLevel, "preset", string(sel.Preset))
		if err := tui.Run(game, store, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
