package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the game configuration",
	Long: `Inspect the match3.yaml in effect.

Config search order:
  1. --config <path>
  2. ~/.match3/configs/match3.yaml
  3. ./configs/match3.yaml
  4. Built-in defaults

Examples:
  match3 config show
  match3 config show --difficulty hard
  match3 config init
  match3 config init ./configs/match3.yaml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with the difficulty applied",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the current configuration to a file for editing",
	Long: `Write the loaded configuration (without the difficulty preset) as
YAML. The default path is ~/.match3/configs/match3.yaml, which every
later run picks up.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	base, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(withPreset(base, preset))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n# difficulty: %s\n", config.ConfigSource(flagConfig), preset)
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("cannot find the home directory; pass a path")
	}

	if !flagConfigForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	base, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	if err := config.SaveMatch3(path, base); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
