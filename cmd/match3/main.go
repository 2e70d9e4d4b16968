// match3 is a terminal match-3 puzzle game with a campaign, an endless
// mode, an SSH server for remote play and a headless autoplayer.
//
// Usage:
//
//	match3 play [campaign|endless]   - Play directly
//	match3 menu                      - Pick mode, level and difficulty interactively
//	match3 serve                     - Start SSH server for remote play
//	match3 scores [game]             - Show the best runs
//	match3 levels list|check         - Inspect campaign level files
//	match3 simulate                  - Autoplay a board and print cascade statistics
//	match3 config show|init          - Print or write match3.yaml
//	match3 list                      - List registered game modes
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/scores.db)
//	--config <path>       - Custom match3.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Load the campaign from a directory
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file (TUI commands log nowhere otherwise)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tiles, chain cascades, in your terminal",
	Long: `Match-3 is a terminal puzzle game. Swap two neighbouring tiles to line
up three or more of a kind; cleared tiles fall and refill, and new lines
formed by the fall score again with a growing chain multiplier.

Available commands:
  play      - Play the campaign or endless mode directly
  menu      - Interactive mode, level and difficulty picker
  serve     - Start SSH server for remote play
  scores    - View the best runs
  levels    - List or check campaign level files
  simulate  - Autoplay a board and print cascade statistics
  config    - Print or write match3.yaml
  list      - Show registered game modes

Examples:
  match3 play
  match3 play endless --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 simulate --moves 500 --strategy random`,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints the error
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with campaign level files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
