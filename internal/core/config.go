package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	GameOver  bool   // Whether the game has ended
	Won       bool   // Game ended because the goal was reached
	Paused    bool   // Whether the game is paused
	Level     string // Level identifier, empty for endless play
	Moves     int    // Moves consumed so far
	BestChain int    // Deepest cascade seen this run
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Run outcomes, shared by games and score storage.
const (
	OutcomeCleared    = "cleared"
	OutcomeOutOfMoves = "out_of_moves"
	OutcomeAbandoned  = "abandoned"
	// OutcomeFailed marks a run stopped by a board error.
	OutcomeFailed = "failed"
)

// RunSummary describes one finished run: a campaign level attempt or an
// endless game.
type RunSummary struct {
	Level     string // Empty in endless play
	Seed      int64
	Score     int
	Moves     int
	BestChain int
	Outcome   string
}
