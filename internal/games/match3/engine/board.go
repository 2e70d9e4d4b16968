package engine

import (
	"fmt"
	"strings"
)

// Board is a fixed-size grid of tiles stored row-major: index = y*W + x.
// Every slot always holds exactly one tile; a cleared slot holds a tile of
// type Empty. All writes go through place so the Index never lags behind.
type Board struct {
	w, h   int
	slots  []*Tile
	index  *Index
	nextID TileID
}

// newBoard allocates a w x h board of Empty tiles.
func newBoard(w, h int) *Board {
	b := &Board{
		w:     w,
		h:     h,
		slots: make([]*Tile, w*h),
		index: newIndex(w, h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.nextID++
			b.place(C(x, y), &Tile{ID: b.nextID})
		}
	}
	return b
}

// NewBoardFromLayout builds a board from rows of layout letters
// (see TileType.Rune). Row 0 is the top of the board.
func NewBoardFromLayout(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, newError(KindConfiguration, ReasonNone, "layout has no rows")
	}
	w := len([]rune(rows[0]))
	if w == 0 {
		return nil, newError(KindConfiguration, ReasonNone, "layout has empty rows")
	}
	b := newBoard(w, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, newError(KindConfiguration, ReasonNone, "layout rows differ in width",
				"row", y, "width", len(runes), "expected", w)
		}
		for x, r := range runes {
			tt, ok := ParseTileType(r)
			if !ok {
				return nil, newError(KindConfiguration, ReasonNone, "unknown layout letter",
					"row", y, "col", x, "letter", string(r))
			}
			b.slot(C(x, y)).Type = tt
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.w
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.h
}

// Index returns the position index kept in sync with this board.
func (b *Board) Index() *Index {
	return b.index
}

// InBounds returns true if the coordinate is within the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.w && c.Y >= 0 && c.Y < b.h
}

// Get returns the tile at c, or a KindOutOfBounds error.
func (b *Board) Get(c Coord) (*Tile, error) {
	if !b.InBounds(c) {
		return nil, newError(KindOutOfBounds, ReasonNone, "position outside board",
			"pos", c, "size", fmt.Sprintf("%dx%d", b.w, b.h))
	}
	return b.slots[c.Y*b.w+c.X], nil
}

// TypeAt returns the tile type at c. Out-of-bounds positions read as Empty.
func (b *Board) TypeAt(c Coord) TileType {
	if !b.InBounds(c) {
		return Empty
	}
	if t := b.slots[c.Y*b.w+c.X]; t != nil {
		return t.Type
	}
	return Empty
}

// slot returns the tile at an in-bounds coordinate without checks.
func (b *Board) slot(c Coord) *Tile {
	return b.slots[c.Y*b.w+c.X]
}

// set overwrites a slot. Callers must follow it with an index update;
// place does both.
func (b *Board) set(c Coord, t *Tile) {
	b.slots[c.Y*b.w+c.X] = t
}

// place puts t at c, updating the tile's stored position and the index.
func (b *Board) place(c Coord, t *Tile) {
	b.set(c, t)
	t.Pos = c
	b.index.Update(t, c)
}

// exchange swaps the tiles held at a and c.
func (b *Board) exchange(a, c Coord) {
	ta, tc := b.slot(a), b.slot(c)
	b.place(a, tc)
	b.place(c, ta)
}

// Types returns a [y][x] snapshot of tile types.
func (b *Board) Types() [][]TileType {
	out := make([][]TileType, b.h)
	for y := range b.h {
		out[y] = make([]TileType, b.w)
		for x := range b.w {
			out[y][x] = b.slot(C(x, y)).Type
		}
	}
	return out
}

// Rows returns the board as layout letter rows.
func (b *Board) Rows() []string {
	rows := make([]string, b.h)
	for y := range b.h {
		var sb strings.Builder
		for x := range b.w {
			sb.WriteRune(b.slot(C(x, y)).Type.Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the layout rows joined by newlines.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// Clone returns a deep copy with the same tile identities and its own index.
func (b *Board) Clone() *Board {
	nb := &Board{
		w:      b.w,
		h:      b.h,
		slots:  make([]*Tile, len(b.slots)),
		index:  newIndex(b.w, b.h),
		nextID: b.nextID,
	}
	for i, t := range b.slots {
		if t == nil {
			continue
		}
		cp := *t
		nb.slots[i] = &cp
	}
	nb.index.Rebuild(nb)
	return nb
}

// Equal reports whether both boards hold the same tile identities and
// types at every slot.
func (b *Board) Equal(other *Board) bool {
	if b.w != other.w || b.h != other.h {
		return false
	}
	for i, t := range b.slots {
		o := other.slots[i]
		if t == nil || o == nil {
			if t != o {
				return false
			}
			continue
		}
		if t.ID != o.ID || t.Type != o.Type || t.Pos != o.Pos {
			return false
		}
	}
	return true
}

// CountEmpty returns the number of Empty slots.
func (b *Board) CountEmpty() int {
	n := 0
	for _, t := range b.slots {
		if t.Type == Empty {
			n++
		}
	}
	return n
}

// CheckInvariants verifies the structural rules of the grid and the index.
func (b *Board) CheckInvariants() error {
	if len(b.slots) != b.w*b.h {
		return newError(KindBoardState, ReasonNone, "slot count differs from board size",
			"slots", len(b.slots), "size", fmt.Sprintf("%dx%d", b.w, b.h))
	}
	seen := make(map[TileID]Coord, len(b.slots))
	for i, t := range b.slots {
		c := C(i%b.w, i/b.w)
		if t == nil {
			return newError(KindBoardState, ReasonNone, "slot holds no tile", "pos", c)
		}
		if t.Pos != c {
			return newError(KindBoardState, ReasonNone, "tile position differs from its slot",
				"pos", c, "tile", t.ID, "stored", t.Pos)
		}
		if prev, dup := seen[t.ID]; dup {
			return newError(KindBoardState, ReasonNone, "tile referenced by two slots",
				"pos", c, "other", prev, "tile", t.ID)
		}
		seen[t.ID] = c
	}
	return b.index.Verify(b)
}
