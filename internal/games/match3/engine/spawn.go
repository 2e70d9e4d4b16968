package engine

import "math/rand"

const (
	maxFillAttempts    = 64
	maxShuffleAttempts = 100
)

// rollType returns a random playable type among the first kinds types.
func rollType(rng *rand.Rand, kinds int) TileType {
	return TileType(1 + rng.Intn(kinds))
}

// completesRun reports whether placing tt at c would finish a run of
// minLen with the tiles already to its left or above it. Used while
// filling a fresh board in row-major order.
func completesRun(b *Board, c Coord, tt TileType, minLen int) bool {
	left := 0
	for p := c.Add(-1, 0); b.TypeAt(p) == tt; p = p.Add(-1, 0) {
		left++
	}
	if left >= minLen-1 {
		return true
	}
	up := 0
	for p := c.Add(0, -1); b.TypeAt(p) == tt; p = p.Add(0, -1) {
		up++
	}
	return up >= minLen-1
}

// fillMatchless assigns every slot a type so that the board holds no run.
// It retries until the board also has at least one available move and
// reports whether it managed to.
func fillMatchless(b *Board, rng *rand.Rand, kinds, minLen int) bool {
	for range maxFillAttempts {
		for y := range b.h {
			for x := range b.w {
				c := C(x, y)
				t := b.slot(c)
				t.Type = Empty
				tt := rollType(rng, kinds)
				// At most two types are blocked (left and up), so with at
				// least three kinds a free type always exists.
				for i := 0; completesRun(b, c, tt, minLen) && i < kinds; i++ {
					tt = TileType(int(tt)%kinds + 1)
				}
				t.Type = tt
			}
		}
		if HasMoves(b, minLen) {
			return true
		}
	}
	return false
}

// Spawner picks the type for a refilled slot. The default spawner rolls
// uniformly from the engine's random source.
type Spawner interface {
	Spawn(c Coord, kinds int) TileType
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(c Coord, kinds int) TileType

// Spawn calls f(c, kinds).
func (f SpawnerFunc) Spawn(c Coord, kinds int) TileType {
	return f(c, kinds)
}

func (e *Engine) roll(c Coord) TileType {
	if e.spawner != nil {
		return e.spawner.Spawn(c, e.kinds)
	}
	return rollType(e.rng, e.kinds)
}

// spawnType picks the type for a refilled slot according to the policy.
func (e *Engine) spawnType(c Coord) TileType {
	t := e.board.slot(c)
	tt := e.roll(c)
	if e.cfg.RefillPolicy != RefillAvoidMatches {
		return tt
	}
	for range 2 * e.kinds {
		t.Type = tt
		if !runThrough(e.board, c, e.cfg.MinMatchLength) {
			break
		}
		tt = e.roll(c)
	}
	t.Type = Empty
	return tt
}

// shuffle permutes the types on the board in place until it holds no run
// and at least one move. Tiles keep their slots; only types move.
// Falls back to a fresh matchless fill if no permutation works.
func (e *Engine) shuffle() int {
	types := make([]TileType, len(e.board.slots))
	for i, t := range e.board.slots {
		types[i] = t.Type
	}
	minLen := e.cfg.MinMatchLength
	for attempt := 1; attempt <= maxShuffleAttempts; attempt++ {
		e.rng.Shuffle(len(types), func(i, j int) {
			types[i], types[j] = types[j], types[i]
		})
		for i, t := range e.board.slots {
			t.Type = types[i]
		}
		if !HasMatch(e.board, minLen) && HasMoves(e.board, minLen) {
			return attempt
		}
	}
	fillMatchless(e.board, e.rng, e.kinds, minLen)
	return maxShuffleAttempts + 1
}
