package engine

import "fmt"

// Swap is a proposed exchange of the tiles at A and B. Order does not matter.
type Swap struct {
	A Coord
	B Coord
}

// String returns a string representation of the swap.
func (s Swap) String() string {
	return fmt.Sprintf("%s<->%s", s.A, s.B)
}

// Normalized returns the swap with its endpoints in row-major order.
func (s Swap) Normalized() Swap {
	if s.B.less(s.A) {
		return Swap{A: s.B, B: s.A}
	}
	return s
}

// ValidateSwap checks a proposed move against the board without mutating
// anything. Checks run in order and the first failure is returned:
//   - both positions in bounds
//   - positions are orthogonally adjacent
//   - a tile exists at both positions
//   - positions differ
func ValidateSwap(s Swap, b *Board) error {
	if !b.InBounds(s.A) || !b.InBounds(s.B) {
		return newError(KindInvalidSwap, ReasonOutOfBounds, "swap position outside board",
			"swap", s.String())
	}
	if s.A.Manhattan(s.B) != 1 {
		return newError(KindInvalidSwap, ReasonNotAdjacent, "swap positions are not adjacent",
			"swap", s.String(), "distance", s.A.Manhattan(s.B))
	}
	if b.slot(s.A) == nil || b.slot(s.B) == nil {
		return newError(KindInvalidSwap, ReasonMissingTile, "no tile at swap position",
			"swap", s.String())
	}
	if s.A.Equal(s.B) {
		return newError(KindInvalidSwap, ReasonSamePosition, "swap positions are identical",
			"swap", s.String())
	}
	return nil
}
