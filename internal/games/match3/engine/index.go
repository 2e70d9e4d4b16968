package engine

import "fmt"

// Index is a bidirectional cache between tile identity and board position.
// It is derived from the Board and can always be rebuilt from it; the
// board keeps it current incrementally so lookups stay O(1) during cascades.
type Index struct {
	w, h  int
	pos   map[TileID]Coord
	tiles []*Tile // row-major, same layout as Board slots
}

func newIndex(w, h int) *Index {
	return &Index{
		w:     w,
		h:     h,
		pos:   make(map[TileID]Coord, w*h),
		tiles: make([]*Tile, w*h),
	}
}

func (ix *Index) inBounds(c Coord) bool {
	return c.X >= 0 && c.X < ix.w && c.Y >= 0 && c.Y < ix.h
}

// PositionOf returns the position recorded for a tile identity.
func (ix *Index) PositionOf(id TileID) (Coord, bool) {
	c, ok := ix.pos[id]
	return c, ok
}

// TileAt returns the tile recorded at c, or nil.
func (ix *Index) TileAt(c Coord) *Tile {
	if !ix.inBounds(c) {
		return nil
	}
	return ix.tiles[c.Y*ix.w+c.X]
}

// Len returns the number of tracked tiles.
func (ix *Index) Len() int {
	return len(ix.pos)
}

// Update moves the tile's mapping to newPos, dropping the old reverse entry
// if it still points at this tile.
func (ix *Index) Update(t *Tile, newPos Coord) {
	if old, ok := ix.pos[t.ID]; ok && ix.inBounds(old) {
		i := old.Y*ix.w + old.X
		if ix.tiles[i] == t {
			ix.tiles[i] = nil
		}
	}
	ix.pos[t.ID] = newPos
	if ix.inBounds(newPos) {
		ix.tiles[newPos.Y*ix.w+newPos.X] = t
	}
}

// Remove drops both mappings for the tile.
func (ix *Index) Remove(t *Tile) {
	if old, ok := ix.pos[t.ID]; ok {
		if ix.inBounds(old) {
			i := old.Y*ix.w + old.X
			if ix.tiles[i] == t {
				ix.tiles[i] = nil
			}
		}
		delete(ix.pos, t.ID)
	}
}

// Rebuild discards all mappings and re-derives them from the board.
func (ix *Index) Rebuild(b *Board) {
	ix.w, ix.h = b.w, b.h
	ix.pos = make(map[TileID]Coord, len(b.slots))
	ix.tiles = make([]*Tile, len(b.slots))
	for i, t := range b.slots {
		if t == nil {
			continue
		}
		c := C(i%b.w, i/b.w)
		ix.pos[t.ID] = c
		ix.tiles[i] = t
	}
}

// Verify checks the index against the board and reports the first
// disagreement as a BoardState error.
func (ix *Index) Verify(b *Board) error {
	if ix.w != b.w || ix.h != b.h {
		return newError(KindBoardState, ReasonNone, "index dimensions differ from board",
			"index", fmt.Sprintf("%dx%d", ix.w, ix.h), "board", fmt.Sprintf("%dx%d", b.w, b.h))
	}
	if len(ix.pos) != len(b.slots) {
		return newError(KindBoardState, ReasonNone, "index size differs from board",
			"indexed", len(ix.pos), "slots", len(b.slots))
	}
	for i, t := range b.slots {
		c := C(i%b.w, i/b.w)
		if ix.tiles[i] != t {
			return newError(KindBoardState, ReasonNone, "index slot out of sync", "pos", c)
		}
		if t == nil {
			continue
		}
		if p, ok := ix.pos[t.ID]; !ok || p != c {
			return newError(KindBoardState, ReasonNone, "index has no entry for tile",
				"pos", c, "tile", t.ID, "type", t.Type.String())
		}
	}
	return nil
}
