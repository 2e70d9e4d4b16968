// Package match3 is the playable match-3 game: campaign levels and an
// endless mode on top of the engine package.
package match3

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game IDs used by the registry and the score store.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
)

// settings are the package-level knobs the CLI sets before games are
// created through the registry. Each Game takes a copy in New.
type settings struct {
	cfg        config.Match3Config
	levels     []levels.Level
	startLevel string
	logger     *log.Logger
}

var (
	settingsMu sync.Mutex
	current    = settings{cfg: config.DefaultMatch3Config()}
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.Match3Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	current.cfg = cfg
}

// SetLevels replaces the campaign. nil restores the built-in levels.
func SetLevels(list []levels.Level) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	current.levels = list
}

// SetStartLevel sets the campaign level the next game starts on.
// Empty means start from the beginning.
func SetStartLevel(id string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	current.startLevel = id
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() string {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return current.startLevel
}

// SetLogger sets the logger handed to engines of games created afterwards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	current.logger = l
}

func snapshotSettings() settings {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	s := current
	// Start level applies to one game only
	current.startLevel = ""
	return s
}

// Game implements the match-3 puzzle game.
type Game struct {
	mode     Mode
	settings settings
	logger   *log.Logger
	spawner  engine.Spawner // nil = engine's seeded roll

	seed     int64
	tick     uint64
	tickRate int

	eng        *engine.Engine
	rec        *engine.Recorder
	base       engine.Config
	difficulty *config.DifficultyManager

	campaign   []levels.Level
	levelIndex int
	level      levels.Level

	bankedScore  int // Score of cleared campaign levels
	bankedMoves  int
	bestChain    int // Deepest cascade this run
	levelChain   int // Deepest cascade on the current level
	shufflesLeft int

	cursor    engine.Coord
	selected  bool
	selection engine.Coord
	hint      engine.Swap
	hintTicks int
	flash     string
	flashTick uint64

	replay    replay
	lockUntil uint64

	screenW int
	screenH int
	layout  layout

	gameOver        bool
	won             bool
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
	failure         string
	outcome         string

	runs []core.RunSummary
}

// New creates a new campaign mode game.
func New() *Game {
	return newGame(ModeCampaign)
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return newGame(ModeEndless)
}

// Options configures one game directly instead of through the package
// settings. Concurrent sessions (SSH) build their games this way.
type Options struct {
	Config     config.Match3Config
	Levels     []levels.Level // nil = built-in campaign
	StartLevel string
	Logger     *log.Logger
}

// NewWithOptions creates a game in the given mode from opts.
func NewWithOptions(mode Mode, opts Options) *Game {
	return newGameFrom(mode, settings{
		cfg:        opts.Config,
		levels:     opts.Levels,
		startLevel: opts.StartLevel,
		logger:     opts.Logger,
	})
}

func newGame(mode Mode) *Game {
	return newGameFrom(mode, snapshotSettings())
}

func newGameFrom(mode Mode, s settings) *Game {
	logger := s.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		mode:     mode,
		settings: s,
		logger:   logger.With("game", string(mode)),
		rec:      &engine.Recorder{},
	}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3 Campaign"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.bankedScore = 0
	g.bankedMoves = 0
	g.bestChain = 0
	g.shufflesLeft = g.settings.cfg.Endless.Shuffles
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.failure = ""
	g.outcome = ""
	g.runs = nil
	g.eng = nil

	base, err := g.settings.cfg.EngineConfig()
	if err != nil {
		g.fail(err)
		g.checkScreenSize()
		return
	}
	g.base = base

	if g.mode == ModeCampaign {
		g.campaign = g.settings.levels
		if g.campaign == nil {
			g.campaign, err = levels.Campaign()
			if err != nil {
				g.fail(err)
				g.checkScreenSize()
				return
			}
		}
		if len(g.campaign) == 0 {
			g.failure = "No campaign levels"
			g.outcome = core.OutcomeFailed
			g.gameOver = true
			g.checkScreenSize()
			return
		}
		g.levelIndex = g.startIndex()
		// Start level applies to the first Reset only
		g.settings.startLevel = ""
	} else {
		g.difficulty = config.NewDifficultyManager(g.settings.cfg.Difficulty)
	}

	g.loadLevel()
}

// startIndex resolves the selected start level to a campaign index.
func (g *Game) startIndex() int {
	for i, l := range g.campaign {
		if l.ID == g.settings.startLevel {
			return i
		}
	}
	return 0
}

// levelSeed derives a per-level seed so replays of one level do not
// depend on what happened on earlier levels.
func (g *Game) levelSeed() int64 {
	return g.seed + int64(g.levelIndex)*7919
}

// loadLevel creates the engine for the current level (or the endless board).
func (g *Game) loadLevel() {
	opts := []engine.Option{
		engine.WithSeed(g.levelSeed()),
		engine.WithPublisher(g.rec),
		engine.WithLogger(g.logger),
	}
	if g.spawner != nil {
		opts = append(opts, engine.WithSpawner(g.spawner))
	}

	var (
		eng *engine.Engine
		err error
	)
	if g.mode == ModeCampaign {
		g.level = g.campaign[g.levelIndex]
		eng, err = g.level.NewEngine(g.base, opts...)
	} else {
		// The first board already uses the preset's starting kinds.
		ec := g.base
		if g.difficulty != nil {
			ec.TileKinds = g.difficulty.TileKinds(g.base.TileKinds, 0, 0)
		}
		eng, err = engine.New(ec, opts...)
	}
	g.rec.Reset()
	if err != nil {
		g.fail(err)
		g.checkScreenSize()
		return
	}

	g.eng = eng
	g.levelChain = 0
	g.cursor = engine.C(0, 0)
	g.selected = false
	g.hintTicks = 0
	g.flash = ""
	g.replay = replay{}
	g.lockUntil = 0

	if g.mode == ModeCampaign {
		g.logger.Info("level started", "level", g.level.ID, "target", g.level.TargetScore, "moves", g.level.MoveLimit)
	}
	g.checkScreenSize()
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize recomputes the layout and checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := engine.DefaultConfig().Width, engine.DefaultConfig().Height
	if g.eng != nil {
		w, h = g.eng.Board().Width(), g.eng.Board().Height()
	}
	g.layout = newLayout(g.screenW, g.screenH, w, h)
	g.tooSmall = !g.layout.fits
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.hintTicks > 0 {
		g.hintTicks--
	}
	g.replay.advance()

	// Handle level cleared pause
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= 2*g.tickRate {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if g.inputLocked() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

// inputLocked reports whether a move is still being shown.
func (g *Game) inputLocked() bool {
	return g.replay.active() || g.tick < g.lockUntil
}

// handleInput maps one frame of input to cursor, selection and swaps.
func (g *Game) handleInput(in core.InputFrame) {
	if p, ok := in.Click(); ok {
		if cell, inside := g.layout.cellAt(p.X, p.Y); inside {
			g.cursor = cell
			g.confirm()
			return
		}
	}

	switch {
	case in.Has(core.ActionBack):
		g.selected = false
	case in.Has(core.ActionHint):
		g.showHint()
	case in.Has(core.ActionShuffle):
		g.manualShuffle()
	case in.Has(core.ActionConfirm):
		g.confirm()
	case in.Has(core.ActionUp):
		g.move(0, -1)
	case in.Has(core.ActionDown):
		g.move(0, 1)
	case in.Has(core.ActionLeft):
		g.move(-1, 0)
	case in.Has(core.ActionRight):
		g.move(1, 0)
	}
}

// move shifts the cursor, or swaps the selected tile in that direction.
func (g *Game) move(dx, dy int) {
	b := g.eng.Board()
	if g.selected {
		target := g.selection.Add(dx, dy)
		if b.InBounds(target) {
			g.trySwap(g.selection, target)
		}
		return
	}
	g.cursor = engine.C(
		core.Clamp(g.cursor.X+dx, 0, b.Width()-1),
		core.Clamp(g.cursor.Y+dy, 0, b.Height()-1),
	)
}

// confirm selects the tile under the cursor or swaps it with the selection.
func (g *Game) confirm() {
	switch {
	case !g.selected:
		g.selected = true
		g.selection = g.cursor
	case g.selection == g.cursor:
		g.selected = false
	case g.selection.Manhattan(g.cursor) == 1:
		g.trySwap(g.selection, g.cursor)
	default:
		g.selection = g.cursor
	}
}

// trySwap hands a swap to the engine and starts the replay of what happened.
func (g *Game) trySwap(a, b engine.Coord) {
	before := g.eng.Board().Types()
	res, err := g.eng.RequestSwap(a, b)
	events := g.rec.Drain()

	g.selected = false
	g.hintTicks = 0
	g.cursor = b
	g.replay = newReplay(before, events, g.eng.Board().Types(), g.settings.cfg.Animation.StepTicks)

	if err != nil {
		if engine.KindOf(err) == engine.KindInvalidSwap {
			g.setFlash(invalidMessage(engine.ReasonOf(err)))
			return
		}
		g.fail(err)
		return
	}

	g.lockUntil = g.tick + uint64(g.settings.cfg.Animation.InputLockTicks)
	if res.CascadeDepth > g.levelChain {
		g.levelChain = res.CascadeDepth
	}
	if res.CascadeDepth > g.bestChain {
		g.bestChain = res.CascadeDepth
	}

	switch {
	case res.Truncated:
		g.setFlash("Cascade stopped")
	case res.Shuffled:
		g.setFlash("No moves left - shuffled")
	case res.CascadeDepth >= 2:
		g.setFlash(chainMessage(res.CascadeDepth))
	}

	g.afterMove()
}

// afterMove applies the mode rules once a move resolved.
func (g *Game) afterMove() {
	score, moves := g.eng.Score(), g.eng.Moves()

	if g.mode == ModeCampaign {
		switch {
		case score >= g.level.TargetScore:
			g.levelCleared = true
			g.levelClearTicks = 0
			g.finishRun(core.OutcomeCleared)
			g.logger.Info("level cleared", "level", g.level.ID, "score", score, "moves", moves)
		case moves >= g.level.MoveLimit:
			g.endGame(core.OutcomeOutOfMoves, "Out of moves")
		case !engine.HasMoves(g.eng.Board(), g.base.MinMatchLength):
			g.endGame(core.OutcomeOutOfMoves, "No moves left")
		}
		return
	}

	if g.difficulty != nil {
		kinds := g.difficulty.TileKinds(g.base.TileKinds, score, moves)
		if kinds != g.eng.TileKinds() && g.eng.SetTileKinds(kinds) == nil {
			g.setFlash("New tile color!")
			g.logger.Debug("tile kinds raised", "kinds", kinds, "score", score)
		}
	}

	switch {
	case g.settings.cfg.Endless.MoveLimit > 0 && moves >= g.settings.cfg.Endless.MoveLimit:
		g.endGame(core.OutcomeOutOfMoves, "Move limit reached")
	case !engine.HasMoves(g.eng.Board(), g.base.MinMatchLength) && g.shufflesLeft == 0:
		g.endGame(core.OutcomeOutOfMoves, "No moves left")
	}
}

// showHint highlights the first available swap for a few seconds.
func (g *Game) showHint() {
	s, ok := g.eng.Hint()
	if !ok {
		g.setFlash("No moves available")
		return
	}
	g.hint = s
	g.hintTicks = 3 * g.tickRate
}

// manualShuffle reshuffles the endless board while shuffles remain.
func (g *Game) manualShuffle() {
	if g.mode != ModeEndless {
		return
	}
	if g.shufflesLeft == 0 {
		g.setFlash("No shuffles left")
		return
	}

	before := g.eng.Board().Types()
	if err := g.eng.Shuffle(); err != nil {
		g.rec.Drain()
		g.fail(err)
		return
	}
	g.replay = newReplay(before, g.rec.Drain(), g.eng.Board().Types(), g.settings.cfg.Animation.StepTicks)
	if g.shufflesLeft > 0 {
		g.shufflesLeft--
	}
	g.selected = false
	g.hintTicks = 0
	g.setFlash("Shuffled")
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.campaign)-1 {
		// Completed all levels
		g.won = true
		g.outcome = core.OutcomeCleared
		return
	}

	g.bankedScore += g.eng.Score()
	g.bankedMoves += g.eng.Moves()
	g.levelIndex++
	g.loadLevel()
}

// endGame stops the run with the given outcome.
func (g *Game) endGame(outcome, msg string) {
	g.gameOver = true
	g.failure = msg
	g.finishRun(outcome)
	g.logger.Info("game over", "outcome", outcome, "score", g.State().Score)
}

// fail stops the game on an error that is not the player's fault.
func (g *Game) fail(err error) {
	g.logger.Error("game stopped", "err", err)
	g.gameOver = true
	g.failure = "Board error"
	if g.eng != nil {
		g.finishRun(core.OutcomeFailed)
	}
	g.outcome = core.OutcomeFailed
}

// finishRun records the current level (or endless game) as finished.
func (g *Game) finishRun(outcome string) {
	g.outcome = outcome
	sum := core.RunSummary{
		Seed:    g.levelSeed(),
		Score:   g.eng.Score(),
		Moves:   g.eng.Moves(),
		Outcome: outcome,
	}
	if g.mode == ModeCampaign {
		sum.Level = g.level.ID
		sum.BestChain = g.levelChain
	} else {
		sum.BestChain = g.bestChain
	}
	g.runs = append(g.runs, sum)
}

// DrainRuns returns the runs finished since the last call.
func (g *Game) DrainRuns() []core.RunSummary {
	runs := g.runs
	g.runs = nil
	return runs
}

// Abandon records the run in progress as abandoned if it has any moves.
func (g *Game) Abandon() {
	if g.eng == nil || g.gameOver || g.won || g.levelCleared || g.eng.Moves() == 0 {
		return
	}
	g.gameOver = true
	g.failure = "Abandoned"
	g.finishRun(core.OutcomeAbandoned)
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashTick = g.tick
}

// flashVisible reports whether the last message is still on screen.
func (g *Game) flashVisible() bool {
	return g.flash != "" && g.tick-g.flashTick < uint64(2*g.tickRate)
}

// movesLeft returns the remaining move budget, or -1 when unlimited.
func (g *Game) movesLeft() int {
	limit := g.settings.cfg.Endless.MoveLimit
	if g.mode == ModeCampaign {
		limit = g.level.MoveLimit
	}
	if limit <= 0 || g.eng == nil {
		return -1
	}
	return core.Max(0, limit-g.eng.Moves())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:     g.bankedScore,
		Moves:     g.bankedMoves,
		GameOver:  g.gameOver || g.won,
		Won:       g.won,
		Paused:    g.paused || g.tooSmall || g.levelCleared,
		BestChain: g.bestChain,
	}
	if g.eng != nil {
		st.Score += g.eng.Score()
		st.Moves += g.eng.Moves()
	}
	if g.mode == ModeCampaign {
		st.Level = g.level.ID
	}
	return st
}

func invalidMessage(r engine.Reason) string {
	switch r {
	case engine.ReasonNoMatch:
		return "No match"
	case engine.ReasonNotAdjacent:
		return "Tiles must be neighbours"
	case engine.ReasonOutOfBounds:
		return "Off the board"
	default:
		return "Invalid move"
	}
}
