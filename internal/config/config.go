// Package config provides YAML-based game configuration loading and
// difficulty management for the match-3 game.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Refill     RefillConfig     `yaml:"refill"`
	Endless    EndlessConfig    `yaml:"endless"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid shape.
type BoardConfig struct {
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	TileKinds        int  `yaml:"tile_kinds"`
	MinMatchLength   int  `yaml:"min_match_length"`
	StrictInvariants bool `yaml:"strict_invariants"`
}

// ScoringConfig defines how cleared tiles are scored.
type ScoringConfig struct {
	PointsPerTile   int `yaml:"points_per_tile"`
	ChainStep       int `yaml:"chain_step"` // Added to the multiplier per cascade pass
	MaxCascadeDepth int `yaml:"max_cascade_depth"`
}

// RefillConfig defines how emptied slots are refilled.
type RefillConfig struct {
	Policy           string `yaml:"policy"` // "allow_chains" or "avoid_matches"
	ShuffleWhenStuck bool   `yaml:"shuffle_when_stuck"`
}

// EndlessConfig defines the endless mode rules.
type EndlessConfig struct {
	MoveLimit int `yaml:"move_limit"` // 0 = unlimited
	Shuffles  int `yaml:"shuffles"`   // Manual shuffles allowed per run, -1 = unlimited
}

// AnimationConfig defines how engine notifications are replayed on screen.
type AnimationConfig struct {
	StepTicks      int `yaml:"step_ticks"`       // Ticks each replay step stays on screen
	InputLockTicks int `yaml:"input_lock_ticks"` // Minimum ticks input stays locked after a swap
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraKinds int `yaml:"extra_kinds"` // Tile kinds added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset parses a preset name. Empty input selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// EngineConfig converts the file configuration into engine parameters.
// The result is validated the same way engine.New validates it.
func (c Match3Config) EngineConfig() (engine.Config, error) {
	policy, ok := engine.ParseRefillPolicy(c.Refill.Policy)
	if !ok {
		return engine.Config{}, fmt.Errorf("config: refill.policy: unknown policy %q", c.Refill.Policy)
	}

	ec := engine.Config{
		Width:            c.Board.Width,
		Height:           c.Board.Height,
		MinMatchLength:   c.Board.MinMatchLength,
		PointsPerTile:    c.Scoring.PointsPerTile,
		MaxCascadeDepth:  c.Scoring.MaxCascadeDepth,
		ChainStep:        c.Scoring.ChainStep,
		TileKinds:        c.Board.TileKinds,
		RefillPolicy:     policy,
		ShuffleWhenStuck: c.Refill.ShuffleWhenStuck,
		StrictInvariants: c.Board.StrictInvariants,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return ec, nil
}

// Validate checks the whole configuration, including the parts the engine
// never sees.
func (c Match3Config) Validate() error {
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	switch {
	case c.Endless.MoveLimit < 0:
		return fmt.Errorf("config: endless.move_limit must not be negative")
	case c.Animation.StepTicks < 0:
		return fmt.Errorf("config: animation.step_ticks must not be negative")
	case c.Animation.InputLockTicks < 0:
		return fmt.Errorf("config: animation.input_lock_ticks must not be negative")
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("config: difficulty.initial_level must be between 0 and 1")
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "moves":
	default:
		return fmt.Errorf("config: difficulty.progression.type: unknown type %q", c.Difficulty.Progression.Type)
	}
	return nil
}
