package engine

import "sort"

// Orientation is the direction of a straight run.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Run is a maximal straight line of same-type tiles.
type Run struct {
	Start       Coord
	Length      int
	Orientation Orientation
	Type        TileType
}

// Positions lists the run's coordinates from Start outward.
func (r Run) Positions() []Coord {
	out := make([]Coord, r.Length)
	for i := range r.Length {
		if r.Orientation == Horizontal {
			out[i] = r.Start.Add(i, 0)
		} else {
			out[i] = r.Start.Add(0, i)
		}
	}
	return out
}

// Match is one scoring group: the union of overlapping runs of one type.
// An L, T or cross shape is a single Match, so the shared tile counts once.
type Match struct {
	Type      TileType
	Positions []Coord // row-major, no duplicates
	Runs      []Run
}

// Len returns the number of distinct positions in the group.
func (m Match) Len() int {
	return len(m.Positions)
}

// Contains reports whether c is part of the group.
func (m Match) Contains(c Coord) bool {
	for _, p := range m.Positions {
		if p == c {
			return true
		}
	}
	return false
}

// FindRuns scans rows left-to-right, then columns top-to-bottom, and
// returns every maximal run of at least minLen same-type non-Empty tiles.
func FindRuns(b *Board, minLen int) []Run {
	var runs []Run

	for y := range b.h {
		start := 0
		for x := 1; x <= b.w; x++ {
			if x < b.w && b.slot(C(x, y)).Type == b.slot(C(start, y)).Type {
				continue
			}
			tt := b.slot(C(start, y)).Type
			if n := x - start; n >= minLen && tt != Empty {
				runs = append(runs, Run{Start: C(start, y), Length: n, Orientation: Horizontal, Type: tt})
			}
			start = x
		}
	}

	for x := range b.w {
		start := 0
		for y := 1; y <= b.h; y++ {
			if y < b.h && b.slot(C(x, y)).Type == b.slot(C(x, start)).Type {
				continue
			}
			tt := b.slot(C(x, start)).Type
			if n := y - start; n >= minLen && tt != Empty {
				runs = append(runs, Run{Start: C(x, start), Length: n, Orientation: Vertical, Type: tt})
			}
			start = y
		}
	}

	return runs
}

// FindMatches groups the board's runs into matches. Runs sharing at least
// one position end up in the same group. Groups come back ordered by their
// first run in scan order. An empty result means the board is stable.
func FindMatches(b *Board, minLen int) []Match {
	runs := FindRuns(b, minLen)
	if len(runs) == 0 {
		return nil
	}

	parent := make([]int, len(runs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// Lower index stays root so group order follows scan order
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	owner := make(map[Coord]int)
	for i, r := range runs {
		for _, p := range r.Positions() {
			if j, ok := owner[p]; ok {
				union(i, j)
				continue
			}
			owner[p] = i
		}
	}

	groupOf := make(map[int]int)
	var matches []Match
	for i, r := range runs {
		root := find(i)
		gi, ok := groupOf[root]
		if !ok {
			gi = len(matches)
			groupOf[root] = gi
			matches = append(matches, Match{Type: r.Type})
		}
		matches[gi].Runs = append(matches[gi].Runs, r)
	}

	for gi := range matches {
		seen := make(map[Coord]bool)
		for _, r := range matches[gi].Runs {
			for _, p := range r.Positions() {
				if !seen[p] {
					seen[p] = true
					matches[gi].Positions = append(matches[gi].Positions, p)
				}
			}
		}
		sort.Slice(matches[gi].Positions, func(i, j int) bool {
			return matches[gi].Positions[i].less(matches[gi].Positions[j])
		})
	}

	return matches
}

// HasMatch reports whether the board contains any qualifying run.
func HasMatch(b *Board, minLen int) bool {
	return len(FindRuns(b, minLen)) > 0
}

// runThrough reports whether c lies on a horizontal or vertical run of at
// least minLen tiles of its own type.
func runThrough(b *Board, c Coord, minLen int) bool {
	tt := b.TypeAt(c)
	if tt == Empty {
		return false
	}
	return lineLength(b, c, 1, 0, tt) >= minLen || lineLength(b, c, 0, 1, tt) >= minLen
}

// lineLength counts same-type tiles through c along (dx, dy) in both directions.
func lineLength(b *Board, c Coord, dx, dy int, tt TileType) int {
	n := 1
	for p := c.Add(dx, dy); b.TypeAt(p) == tt; p = p.Add(dx, dy) {
		n++
	}
	for p := c.Add(-dx, -dy); b.TypeAt(p) == tt; p = p.Add(-dx, -dy) {
		n++
	}
	return n
}

// FindMoves lists every adjacent swap that would produce at least one match.
// The board passed in is not modified. Swaps are returned normalized in
// row-major order of their first endpoint, right neighbour before down.
func FindMoves(b *Board, minLen int) []Swap {
	scratch := b.Clone()
	var moves []Swap
	for y := range scratch.h {
		for x := range scratch.w {
			a := C(x, y)
			for _, n := range [2]Coord{a.Add(1, 0), a.Add(0, 1)} {
				if !scratch.InBounds(n) || scratch.TypeAt(a) == scratch.TypeAt(n) {
					continue
				}
				scratch.exchange(a, n)
				if runThrough(scratch, a, minLen) || runThrough(scratch, n, minLen) {
					moves = append(moves, Swap{A: a, B: n})
				}
				scratch.exchange(a, n)
			}
		}
	}
	return moves
}

// HasMoves reports whether any swap on the board would produce a match.
func HasMoves(b *Board, minLen int) bool {
	return len(FindMoves(b, minLen)) > 0
}
