package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var flagStartLevel string

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a game",
	Long: `Start playing right away. The mode defaults to campaign.

Controls:
  Arrows/WASD/hjkl - Move the cursor (with a tile selected: swap that way)
  Space/Enter      - Select a tile, or swap it with the selected one
  Mouse click      - Same as moving there and pressing Space
  ?                - Show a hint
  X                - Shuffle (endless mode, limited)
  Esc/B            - Deselect
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.match3/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer colors, unlimited endless shuffles
  normal - Config as loaded
  hard   - More colors, refills avoid free matches
  fixed  - Endless mode never adds colors

Examples:
  match3 play
  match3 play --level 03-narrow-shaft
  match3 play endless --difficulty hard
  match3 play --config ./my-match3.yaml --seed 7`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(match3.ModeCampaign), string(match3.ModeEndless)},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStartLevel, "level", "", "Campaign level ID to start on")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := match3.IDCampaign
	if len(args) == 1 {
		switch match3.Mode(args[0]) {
		case match3.ModeCampaign:
		case match3.ModeEndless:
			gameID = match3.IDEndless
		default:
			return fmt.Errorf("unknown mode %q (use campaign or endless)", args[0])
		}
	}

	logger, cleanup, err := newLogger(true)
	if err != nil {
		return err
	}
	defer cleanup()

	settings, err := loadGameSettings(logger)
	if err != nil {
		return err
	}

	if flagStartLevel != "" {
		if !hasLevel(settings, flagStartLevel) {
			return fmt.Errorf("unknown level %q (run 'match3 levels list')", flagStartLevel)
		}
		match3.SetStartLevel(flagStartLevel)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	logger.Info("starting", "game", gameID, "preset", string(settings.preset))
	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func hasLevel(s gameSettings, id string) bool {
	for _, l := range s.levels {
		if l.ID == id {
			return true
		}
	}
	return false
}
