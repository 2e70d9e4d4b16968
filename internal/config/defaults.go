package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
// It mirrors defaults/match3.yaml and is used when the embedded file
// cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:            8,
			Height:           8,
			TileKinds:        6,
			MinMatchLength:   3,
			StrictInvariants: true,
		},
		Scoring: ScoringConfig{
			PointsPerTile:   10,
			ChainStep:       1,
			MaxCascadeDepth: 20,
		},
		Refill: RefillConfig{
			Policy:           "allow_chains",
			ShuffleWhenStuck: true,
		},
		Endless: EndlessConfig{
			MoveLimit: 0,
			Shuffles:  3,
		},
		Animation: AnimationConfig{
			StepTicks:      4,
			InputLockTicks: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				ExtraKinds: 2,
			},
		},
	}
}
