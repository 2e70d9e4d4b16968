package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     string // Level ID, empty for endless
	LevelNum  int    // 1-indexed, 0 for endless
	Target    int
	Score     int // Whole run, cleared levels included
	Moves     int // Moves on the current board
	MovesLeft int // -1 when unlimited
	Kinds     int
	BestChain int
	Board     []string // Layout letter rows
	Cursor    engine.Coord
	Selected  *engine.Coord
	Hint      *engine.Swap
	Message   string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.inputLocked():
		state = StateAnimating
	}

	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.State().Score,
		MovesLeft: g.movesLeft(),
		BestChain: g.bestChain,
		Cursor:    g.cursor,
		State:     state,
	}
	if g.flashVisible() {
		snap.Message = g.flash
	}
	if g.mode == ModeCampaign {
		snap.Level = g.level.ID
		snap.LevelNum = g.levelIndex + 1
		snap.Target = g.level.TargetScore
	}
	if g.eng != nil {
		snap.Moves = g.eng.Moves()
		snap.Kinds = g.eng.TileKinds()
		snap.Board = g.eng.Board().Rows()
	}
	if g.selected {
		sel := g.selection
		snap.Selected = &sel
	}
	if g.hintTicks > 0 {
		hint := g.hint
		snap.Hint = &hint
	}
	return snap
}
