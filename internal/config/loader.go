package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDir         = ".match3"
	match3FileName = "match3.yaml"
)

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Files are layered over the defaults, so a file only needs the keys it changes.
func LoadMatch3(customPath string) (Match3Config, error) {
	base := embeddedMatch3()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseOver(base, data)
		if err != nil {
			return base, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return base, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken optional files are skipped, not fatal
	for _, path := range searchPaths(match3FileName) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := parseOver(base, data)
		if err != nil || cfg.Validate() != nil {
			continue
		}
		return cfg, nil
	}

	return base, nil
}

// ConfigSource reports which file LoadMatch3 would read, or "embedded".
func ConfigSource(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths(match3FileName) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "embedded"
}

// embeddedMatch3 parses the embedded default YAML.
func embeddedMatch3() Match3Config {
	cfg, err := parseOver(DefaultMatch3Config(), defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// parseOver unmarshals data on top of a copy of base.
func parseOver(base Match3Config, data []byte) (Match3Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// searchPaths lists the optional config locations in priority order.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// UserConfigPath returns where the per-user match3.yaml lives, or empty
// if the home directory is unknown.
func UserConfigPath() string {
	return userConfigPath(match3FileName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, appDir, "configs", filename)
}

// SaveMatch3 writes cfg as YAML, creating parent directories as needed.
func SaveMatch3(path string, cfg Match3Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Board.TileKinds = 5
		cfg.Refill.ShuffleWhenStuck = true
		cfg.Endless.Shuffles = -1
	case DifficultyHard:
		cfg.Board.TileKinds = 7
		cfg.Refill.Policy = "avoid_matches"
		cfg.Endless.Shuffles = 1
	}
}
