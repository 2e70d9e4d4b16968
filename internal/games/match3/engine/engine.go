// Package engine implements a deterministic match-3 puzzle core: the board
// model, swap validation, run matching and cascade resolution.
// It has no notion of time or rendering; a move resolves synchronously and
// the steps are reported as events for whoever wants to animate them.
package engine

import (
	"io"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
)

// Phase is the resolver state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidatingSwap
	PhaseReverting
	PhaseMatching
	PhaseRemoving
	PhaseGravity
	PhaseRefilling
	PhaseStable
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidatingSwap:
		return "validating_swap"
	case PhaseReverting:
		return "reverting"
	case PhaseMatching:
		return "matching"
	case PhaseRemoving:
		return "removing"
	case PhaseGravity:
		return "gravity"
	case PhaseRefilling:
		return "refilling"
	case PhaseStable:
		return "stable"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PassResult summarizes one Matching -> Refilling pass.
type PassResult struct {
	Pass       int
	Multiplier int
	Score      int
	Groups     []Match
	Removed    int
	Spawned    int
}

// Placement is a position with the type it holds after resolution.
type Placement struct {
	Pos  Coord
	Type TileType
}

// Result describes the outcome of a RequestSwap call.
type Result struct {
	Swap          Swap
	CascadeDepth  int
	ScoreDelta    int
	MovesConsumed int
	Passes        []PassResult
	Touched       []Placement // row-major, final types; every slot after a shuffle
	Truncated     bool        // depth guard stopped the cascade
	Shuffled      bool        // board was reshuffled after it got stuck
}

// Engine owns one board and resolves moves on it.
type Engine struct {
	cfg     Config
	board   *Board
	rng     *rand.Rand
	spawner Spawner
	pub     Publisher
	logger  *log.Logger

	phase Phase
	busy  bool
	fatal *Error
	kinds int
	score int
	moves int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher sets the notification sink.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) {
		if p != nil {
			e.pub = p
		}
	}
}

// WithLogger sets the logger used for warnings and fatal board errors.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSpawner replaces random refill rolls with s. Useful for scripted
// levels and reproducible chains.
func WithSpawner(s Spawner) Option {
	return func(e *Engine) {
		e.spawner = s
	}
}

// WithSeed seeds the engine's random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the engine's random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func newEngine(cfg Config, opts []Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		pub:    Discard,
		logger: log.New(io.Discard),
		kinds:  cfg.TileKinds,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New validates cfg and creates an engine with a random board that holds
// no matches.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := newEngine(cfg, opts)
	if err := cfg.Validate(); err != nil {
		e.report(err.(*Error), Swap{})
		return nil, err
	}
	e.board = newBoard(cfg.Width, cfg.Height)
	if !fillMatchless(e.board, e.rng, e.kinds, cfg.MinMatchLength) {
		e.logger.Warn("initial board has no available moves",
			"width", cfg.Width, "height", cfg.Height, "kinds", e.kinds)
	}
	if err := e.checkInvariants("init"); err != nil {
		return nil, err
	}
	return e, nil
}

// NewWithLayout creates an engine on a fixed board given as layout rows.
// The layout must match the configured size, contain no Empty slot and
// no existing match.
func NewWithLayout(cfg Config, rows []string, opts ...Option) (*Engine, error) {
	e := newEngine(cfg, opts)
	if err := cfg.Validate(); err != nil {
		e.report(err.(*Error), Swap{})
		return nil, err
	}
	b, err := NewBoardFromLayout(rows)
	if err != nil {
		e.report(err.(*Error), Swap{})
		return nil, err
	}
	if b.w != cfg.Width || b.h != cfg.Height {
		err := configError("layout", len(rows), "layout size differs from configured board")
		e.report(err, Swap{})
		return nil, err
	}
	if b.CountEmpty() > 0 {
		err := configError("layout", b.CountEmpty(), "layout contains empty slots")
		e.report(err, Swap{})
		return nil, err
	}
	if HasMatch(b, cfg.MinMatchLength) {
		err := configError("layout", len(FindMatches(b, cfg.MinMatchLength)), "layout already contains matches")
		e.report(err, Swap{})
		return nil, err
	}
	e.board = b
	return e, nil
}

// Board returns the engine's board. Its exported methods are read-only.
func (e *Engine) Board() *Board {
	return e.board
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Phase returns the current resolver phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the total score accumulated over the session.
func (e *Engine) Score() int {
	return e.score
}

// Moves returns the number of moves consumed over the session.
func (e *Engine) Moves() int {
	return e.moves
}

// Err returns the fatal error that stopped the engine, if any.
func (e *Engine) Err() error {
	if e.fatal == nil {
		return nil
	}
	return e.fatal
}

// TileKinds returns the number of types currently rolled on refill.
func (e *Engine) TileKinds() int {
	return e.kinds
}

// SetTileKinds changes how many types are rolled on refill. Tiles already
// on the board are left alone.
func (e *Engine) SetTileKinds(n int) error {
	if n < MinTileKinds || n > MaxTileKinds {
		err := configError("tile_kinds", n, "tile kinds must be between 3 and 8")
		e.report(err, Swap{})
		return err
	}
	e.kinds = n
	return nil
}

// Hint returns the first available move in row-major order.
func (e *Engine) Hint() (Swap, bool) {
	moves := FindMoves(e.board, e.cfg.MinMatchLength)
	if len(moves) == 0 {
		return Swap{}, false
	}
	return moves[0], true
}

// Shuffle reshuffles the board on request. It fails while a move is
// resolving or after a fatal error.
func (e *Engine) Shuffle() error {
	if e.fatal != nil {
		return e.fatal
	}
	if e.busy {
		err := newError(KindBusy, ReasonNone, "shuffle requested while resolving")
		e.report(err, Swap{})
		return err
	}
	attempts := e.shuffle()
	e.pub.Publish(BoardShuffledEvent{Attempts: attempts})
	return e.checkInvariants("shuffle")
}

// RequestSwap is the only mutating entry point. It validates the swap,
// applies it, and resolves all cascades before returning. An unproductive
// swap is undone and reported as KindInvalidSwap with ReasonNoMatch.
func (e *Engine) RequestSwap(a, b Coord) (Result, error) {
	s := Swap{A: a, B: b}
	res := Result{Swap: s}

	if e.fatal != nil {
		return res, e.fatal
	}
	if e.busy {
		err := newError(KindBusy, ReasonNone, "move requested while resolving", "swap", s.String())
		e.report(err, s)
		return res, err
	}
	e.busy = true
	defer func() {
		e.busy = false
		if e.fatal == nil {
			e.setPhase(PhaseIdle)
		}
	}()

	e.setPhase(PhaseValidatingSwap)
	if err := ValidateSwap(s, e.board); err != nil {
		e.setPhase(PhaseReverting)
		e.report(err.(*Error), s)
		return res, err
	}

	e.board.exchange(a, b)
	e.pub.Publish(SwapPerformedEvent{Swap: s})
	if err := e.checkInvariants("swap"); err != nil {
		return res, err
	}

	e.setPhase(PhaseMatching)
	matches := FindMatches(e.board, e.cfg.MinMatchLength)
	if len(matches) == 0 {
		e.setPhase(PhaseReverting)
		e.board.exchange(a, b)
		e.pub.Publish(SwapRevertedEvent{Swap: s})
		if err := e.checkInvariants("revert"); err != nil {
			return res, err
		}
		err := newError(KindInvalidSwap, ReasonNoMatch, "swap does not form a match", "swap", s.String())
		e.report(err, s)
		return res, err
	}

	touched := map[Coord]bool{a: true, b: true}
	if err := e.resolve(matches, &res, touched); err != nil {
		return res, err
	}

	e.setPhase(PhaseStable)
	res.MovesConsumed = 1
	e.moves++
	e.score += res.ScoreDelta
	res.Touched = e.placements(touched)
	e.pub.Publish(BoardStableEvent{
		CascadeDepth:    res.CascadeDepth,
		TotalScoreDelta: res.ScoreDelta,
		MovesConsumed:   res.MovesConsumed,
		Truncated:       res.Truncated,
	})

	if e.cfg.ShuffleWhenStuck && !res.Truncated && !HasMoves(e.board, e.cfg.MinMatchLength) {
		attempts := e.shuffle()
		res.Shuffled = true
		e.logger.Debug("board stuck, reshuffled", "attempts", attempts)
		e.pub.Publish(BoardShuffledEvent{Attempts: attempts})
		if err := e.checkInvariants("shuffle"); err != nil {
			return res, err
		}
		// Every slot may have moved.
		res.Touched = e.placements(e.allCoords())
	}

	return res, nil
}

// resolve runs Removing -> Gravity -> Refilling -> Matching until a pass
// finds nothing or the depth guard trips.
func (e *Engine) resolve(matches []Match, res *Result, touched map[Coord]bool) error {
	for pass := 1; len(matches) > 0; pass++ {
		pr := PassResult{Pass: pass, Multiplier: e.cfg.Multiplier(pass), Groups: matches}

		e.setPhase(PhaseRemoving)
		e.remove(&pr, touched)
		if err := e.checkInvariants("remove"); err != nil {
			return err
		}

		e.setPhase(PhaseGravity)
		e.gravity(pass, touched)
		if err := e.checkInvariants("gravity"); err != nil {
			return err
		}

		e.setPhase(PhaseRefilling)
		pr.Spawned = e.refill(pass, touched)
		e.clearTransient()
		if err := e.checkInvariants("refill"); err != nil {
			return err
		}

		res.Passes = append(res.Passes, pr)
		res.CascadeDepth = pass
		res.ScoreDelta += pr.Score

		e.setPhase(PhaseMatching)
		matches = FindMatches(e.board, e.cfg.MinMatchLength)
		if len(matches) > 0 && pass >= e.cfg.MaxCascadeDepth {
			res.Truncated = true
			err := newError(KindCascadeOverflow, ReasonNone, "cascade depth limit reached",
				"depth", pass, "pending_groups", len(matches))
			e.report(err, res.Swap)
			return nil
		}
	}
	return nil
}

// remove scores every group of the pass and clears its tiles.
func (e *Engine) remove(pr *PassResult, touched map[Coord]bool) {
	for _, g := range pr.Groups {
		delta := g.Len() * e.cfg.PointsPerTile * pr.Multiplier
		pr.Score += delta
		e.pub.Publish(MatchFormedEvent{Group: g, ScoreDelta: delta, Pass: pr.Pass, Multiplier: pr.Multiplier})
		for _, p := range g.Positions {
			t := e.board.slot(p)
			if t.Type == Empty {
				continue
			}
			e.pub.Publish(TileRemovedEvent{Pos: p, Type: t.Type, Pass: pr.Pass})
			t.Matched = true
			t.Type = Empty
			touched[p] = true
			pr.Removed++
		}
	}
}

// gravity compacts each column downward, keeping the vertical order of the
// remaining tiles. Empty tiles end up at the top of the column.
func (e *Engine) gravity(pass int, touched map[Coord]bool) {
	col := make([]*Tile, e.board.h)
	for x := range e.board.w {
		var falls []Fall
		write := e.board.h - 1
		for y := e.board.h - 1; y >= 0; y-- {
			t := e.board.slot(C(x, y))
			if t.Type == Empty {
				continue
			}
			if y != write {
				t.Moving = true
				falls = append(falls, Fall{Tile: t.ID, From: C(x, y), To: C(x, write)})
			}
			col[write] = t
			write--
		}
		if len(falls) == 0 {
			continue
		}
		// Empty tiles keep their top-to-bottom order above the stack
		top := 0
		for y := range e.board.h {
			if t := e.board.slot(C(x, y)); t.Type == Empty {
				col[top] = t
				top++
			}
		}
		for y := range e.board.h {
			e.board.place(C(x, y), col[y])
		}
		for _, f := range falls {
			touched[f.To] = true
		}
		e.pub.Publish(ColumnCompactedEvent{Column: x, Falls: falls, Pass: pass})
	}
}

// refill gives every Empty slot a fresh type, top of each column first.
func (e *Engine) refill(pass int, touched map[Coord]bool) int {
	spawned := 0
	for x := range e.board.w {
		for y := range e.board.h {
			c := C(x, y)
			t := e.board.slot(c)
			if t.Type != Empty {
				continue
			}
			t.Type = e.spawnType(c)
			touched[c] = true
			spawned++
			e.pub.Publish(TileSpawnedEvent{Pos: c, Type: t.Type, Pass: pass})
		}
	}
	return spawned
}

func (e *Engine) clearTransient() {
	for _, t := range e.board.slots {
		t.Moving = false
		t.Matched = false
	}
}

func (e *Engine) placements(touched map[Coord]bool) []Placement {
	out := make([]Placement, 0, len(touched))
	for c := range touched {
		out = append(out, Placement{Pos: c, Type: e.board.TypeAt(c)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos.less(out[j].Pos)
	})
	return out
}

func (e *Engine) allCoords() map[Coord]bool {
	all := make(map[Coord]bool, e.board.Width()*e.board.Height())
	for y := 0; y < e.board.Height(); y++ {
		for x := 0; x < e.board.Width(); x++ {
			all[C(x, y)] = true
		}
	}
	return all
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	e.logger.Debug("phase", "from", e.phase.String(), "to", p.String())
	e.phase = p
}

// checkInvariants runs the structural check when strict mode is on and
// turns a violation into the engine's fatal error.
func (e *Engine) checkInvariants(stage string) error {
	if !e.cfg.StrictInvariants {
		return nil
	}
	err := e.board.CheckInvariants()
	if err == nil {
		return nil
	}
	be := err.(*Error)
	if be.Context == nil {
		be.Context = make(map[string]any)
	}
	be.Context["stage"] = stage
	e.fatal = be
	e.phase = PhaseFailed
	e.report(be, Swap{})
	return be
}

// report is the single reporting channel: every error is logged at a
// level matching its kind and published. Invalid moves travel as
// InvalidMoveEvent, everything else as ErrorReportedEvent.
func (e *Engine) report(err *Error, s Swap) {
	fields := err.logFields()
	switch err.Kind {
	case KindBoardState, KindConfiguration:
		e.logger.Error(err.Message, fields...)
	case KindCascadeOverflow:
		e.logger.Warn(err.Message, fields...)
	default:
		e.logger.Debug(err.Message, fields...)
	}

	if err.Kind == KindInvalidSwap {
		e.pub.Publish(InvalidMoveEvent{Swap: s, Reason: err.Reason, Err: err})
		return
	}
	e.pub.Publish(ErrorReportedEvent{Err: err})
}
