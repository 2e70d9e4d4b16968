package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLevel string
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs",
	Long: `Display the best runs for a game mode. The mode defaults to the
campaign (match3); use match3_endless for endless mode.

Examples:
  match3 scores
  match3 scores match3_endless
  match3 scores --level 01-first-steps --limit 5
  match3 scores --stats
  match3 scores match3_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Only show runs of this campaign level")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show totals for every game mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the game mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := match3.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'match3 list' to see game modes)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresStats:
		return printStats(out, store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all scores for %s\n", title)
		return nil
	}

	runs, err := store.TopRuns(gameID, flagScoresLevel, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(out, "Best Runs - %s\n", title)
	if flagScoresLevel != "" {
		fmt.Fprintf(out, "Level: %s\n", flagScoresLevel)
	}
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-18s  %-5s  %-5s  %-10s  %s\n", "Rank", "Score", "Level", "Moves", "Chain", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-18s  %-5s  %-5s  %-10s  %s\n", "----", "-----", "-----", "-----", "-----", "------", "----")
	for i, r := range runs {
		level := r.Level
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-18s  %-5d  %-5d  %-10s  %s\n",
			i+1, r.Score, level, r.Moves, r.BestChain, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	if chain, err := store.BestChain(gameID); err == nil && chain > 0 {
		fmt.Fprintf(out, "Longest chain: %d\n", chain)
	}
	return nil
}

// printStats prints one line of totals per game mode that has scores.
func printStats(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-16s  %-5s  %-8s  %-8s  %-5s  %s\n", "Mode", "Games", "Best", "Average", "Chain", "Last played")
	fmt.Fprintf(out, "  %-16s  %-5s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "----", "-------", "-----", "-----------")
	for _, id := range ids {
		gs := all[id]
		fmt.Fprintf(out, "  %-16s  %-5d  %-8d  %-8.0f  %-5d  %s\n",
			id, gs.GamesCount, gs.HighScore, gs.AvgScore, gs.BestChain, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
