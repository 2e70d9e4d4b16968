package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// The engine resolves a whole move synchronously and reports what it did
// as notifications. The replay turns those notifications back into a
// short sequence of boards so the player can watch the cascade.

// frameKind says what a replay frame shows.
type frameKind int

const (
	frameSwap    frameKind = iota // Tiles exchanged (or exchanged back)
	frameClear                    // Matched tiles about to disappear
	frameSettle                   // Columns compacted and refilled
	frameShuffle                  // Board reshuffled
)

// replayFrame is one board picture with highlighted cells.
type replayFrame struct {
	kind  frameKind
	types [][]engine.TileType
	marks map[engine.Coord]bool
	pass  int
	mult  int
}

// replay steps through frames, holding each for stepTicks ticks.
type replay struct {
	frames    []replayFrame
	index     int
	ticks     int
	stepTicks int
}

// newReplay rebuilds the intermediate boards of a move from its events.
// A zero stepTicks disables the replay.
func newReplay(before [][]engine.TileType, events []engine.Event, after [][]engine.TileType, stepTicks int) replay {
	if stepTicks <= 0 {
		return replay{}
	}
	return replay{
		frames:    buildFrames(before, events, after),
		stepTicks: stepTicks,
	}
}

// active reports whether frames remain to be shown.
func (r *replay) active() bool {
	return r.index < len(r.frames)
}

// current returns the frame on screen, if any.
func (r *replay) current() (replayFrame, bool) {
	if !r.active() {
		return replayFrame{}, false
	}
	return r.frames[r.index], true
}

// advance moves the replay forward by one tick.
func (r *replay) advance() {
	if !r.active() {
		return
	}
	r.ticks++
	if r.ticks >= r.stepTicks {
		r.ticks = 0
		r.index++
	}
}

// frameBuilder folds events over a working copy of the board.
type frameBuilder struct {
	cur     [][]engine.TileType
	frames  []replayFrame
	matched map[engine.Coord]bool
	spawned map[engine.Coord]bool
	pass    int
	mult    int
	cleared bool
}

func buildFrames(before [][]engine.TileType, events []engine.Event, after [][]engine.TileType) []replayFrame {
	fb := &frameBuilder{cur: copyTypes(before)}

	for _, ev := range events {
		switch e := ev.(type) {
		case engine.SwapPerformedEvent:
			fb.exchange(e.Swap)
		case engine.SwapRevertedEvent:
			fb.exchange(e.Swap)
		case engine.MatchFormedEvent:
			if e.Pass != fb.pass {
				fb.flushSettle()
				fb.pass = e.Pass
				fb.mult = e.Multiplier
				fb.cleared = false
				fb.matched = make(map[engine.Coord]bool)
			}
			for _, p := range e.Group.Positions {
				fb.matched[p] = true
			}
		case engine.TileRemovedEvent:
			if !fb.cleared {
				fb.push(frameClear, fb.matched)
				fb.cleared = true
			}
			fb.set(e.Pos, engine.Empty)
		case engine.ColumnCompactedEvent:
			fb.fall(e.Falls)
		case engine.TileSpawnedEvent:
			fb.set(e.Pos, e.Type)
			if fb.spawned == nil {
				fb.spawned = make(map[engine.Coord]bool)
			}
			fb.spawned[e.Pos] = true
		case engine.BoardStableEvent:
			fb.flushSettle()
		case engine.BoardShuffledEvent:
			fb.flushSettle()
			fb.cur = copyTypes(after)
			fb.push(frameShuffle, nil)
		}
	}
	fb.flushSettle()

	// The last picture must be the board the engine ended with
	if n := len(fb.frames); n == 0 || !equalTypes(fb.frames[n-1].types, after) {
		fb.cur = copyTypes(after)
		fb.push(frameSettle, nil)
	}
	return fb.frames
}

func (fb *frameBuilder) push(kind frameKind, marks map[engine.Coord]bool) {
	fb.frames = append(fb.frames, replayFrame{
		kind:  kind,
		types: copyTypes(fb.cur),
		marks: marks,
		pass:  fb.pass,
		mult:  fb.mult,
	})
}

func (fb *frameBuilder) flushSettle() {
	if fb.spawned == nil {
		return
	}
	fb.push(frameSettle, fb.spawned)
	fb.spawned = nil
}

func (fb *frameBuilder) exchange(s engine.Swap) {
	a, b := s.A, s.B
	if !fb.inBounds(a) || !fb.inBounds(b) {
		return
	}
	fb.cur[a.Y][a.X], fb.cur[b.Y][b.X] = fb.cur[b.Y][b.X], fb.cur[a.Y][a.X]
	fb.push(frameSwap, map[engine.Coord]bool{a: true, b: true})
}

// fall applies one column's gravity moves. Sources are read before any
// destination is written so overlapping moves stay correct.
func (fb *frameBuilder) fall(falls []engine.Fall) {
	moved := make([]engine.TileType, len(falls))
	for i, f := range falls {
		if fb.inBounds(f.From) {
			moved[i] = fb.cur[f.From.Y][f.From.X]
			fb.cur[f.From.Y][f.From.X] = engine.Empty
		}
	}
	for i, f := range falls {
		fb.set(f.To, moved[i])
	}
}

func (fb *frameBuilder) set(c engine.Coord, t engine.TileType) {
	if fb.inBounds(c) {
		fb.cur[c.Y][c.X] = t
	}
}

func (fb *frameBuilder) inBounds(c engine.Coord) bool {
	return c.Y >= 0 && c.Y < len(fb.cur) && c.X >= 0 && c.X < len(fb.cur[c.Y])
}

func copyTypes(src [][]engine.TileType) [][]engine.TileType {
	dst := make([][]engine.TileType, len(src))
	for y := range src {
		dst[y] = append([]engine.TileType(nil), src[y]...)
	}
	return dst
}

func equalTypes(a, b [][]engine.TileType) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}
