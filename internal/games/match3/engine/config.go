package engine

// Board size limits.
const (
	MinBoardSize = 3
	MaxBoardSize = 20
	MinTileKinds = 3
)

// RefillPolicy decides how types are rolled for refilled slots.
type RefillPolicy int

const (
	// RefillAllowChains rolls freely; spawned tiles may complete runs and
	// start a chain.
	RefillAllowChains RefillPolicy = iota
	// RefillAvoidMatches re-rolls a spawned tile that would immediately
	// complete a run with its already-settled neighbours.
	RefillAvoidMatches
)

// String returns the policy name used in config files.
func (p RefillPolicy) String() string {
	switch p {
	case RefillAllowChains:
		return "allow_chains"
	case RefillAvoidMatches:
		return "avoid_matches"
	default:
		return "unknown"
	}
}

// ParseRefillPolicy parses a config-file policy name.
// Empty input selects RefillAllowChains.
func ParseRefillPolicy(s string) (RefillPolicy, bool) {
	switch s {
	case "", "allow_chains":
		return RefillAllowChains, true
	case "avoid_matches":
		return RefillAvoidMatches, true
	default:
		return RefillAllowChains, false
	}
}

// Config holds the engine parameters. It is validated once in New.
type Config struct {
	Width           int
	Height          int
	MinMatchLength  int
	PointsPerTile   int
	MaxCascadeDepth int
	// ChainStep is added to the score multiplier for every pass after the
	// first: pass p scores x(1 + (p-1)*ChainStep).
	ChainStep        int
	TileKinds        int
	RefillPolicy     RefillPolicy
	ShuffleWhenStuck bool
	StrictInvariants bool
}

// DefaultConfig returns an 8x8 board with six tile kinds.
func DefaultConfig() Config {
	return Config{
		Width:            8,
		Height:           8,
		MinMatchLength:   3,
		PointsPerTile:    10,
		MaxCascadeDepth:  20,
		ChainStep:        1,
		TileKinds:        6,
		RefillPolicy:     RefillAllowChains,
		ShuffleWhenStuck: true,
		StrictInvariants: true,
	}
}

// Validate checks every field and returns the first violation as a
// KindConfiguration error naming the offending key.
func (c Config) Validate() error {
	switch {
	case c.Width < MinBoardSize || c.Width > MaxBoardSize:
		return configError("width", c.Width, "board width must be between 3 and 20")
	case c.Height < MinBoardSize || c.Height > MaxBoardSize:
		return configError("height", c.Height, "board height must be between 3 and 20")
	case c.MinMatchLength < 3:
		return configError("min_match_length", c.MinMatchLength, "minimum match length must be at least 3")
	case c.MinMatchLength > c.Width && c.MinMatchLength > c.Height:
		return configError("min_match_length", c.MinMatchLength, "minimum match length does not fit the board")
	case c.PointsPerTile <= 0:
		return configError("points_per_tile", c.PointsPerTile, "points per tile must be positive")
	case c.MaxCascadeDepth < 1:
		return configError("max_cascade_depth", c.MaxCascadeDepth, "max cascade depth must be at least 1")
	case c.ChainStep < 0:
		return configError("chain_step", c.ChainStep, "chain step must not be negative")
	case c.TileKinds < MinTileKinds || c.TileKinds > MaxTileKinds:
		return configError("tile_kinds", c.TileKinds, "tile kinds must be between 3 and 8")
	case c.RefillPolicy != RefillAllowChains && c.RefillPolicy != RefillAvoidMatches:
		return configError("refill_policy", int(c.RefillPolicy), "unknown refill policy")
	}
	return nil
}

// Multiplier returns the chain multiplier applied to the given pass (1-based).
func (c Config) Multiplier(pass int) int {
	if pass < 1 {
		pass = 1
	}
	return 1 + (pass-1)*c.ChainStep
}

func configError(key string, value any, msg string) *Error {
	return newError(KindConfiguration, ReasonNone, msg, "key", key, "value", value)
}
