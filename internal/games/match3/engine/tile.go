package engine

// TileType is the kind of gem occupying a slot.
// The zero value is Empty, the sentinel for a cleared slot.
type TileType uint8

const (
	Empty TileType = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Orange
	Cyan
	White
)

// MaxTileKinds is the number of playable (non-Empty) tile types.
const MaxTileKinds = int(White)

var tileNames = [...]string{
	Empty:  "Empty",
	Red:    "Red",
	Green:  "Green",
	Blue:   "Blue",
	Yellow: "Yellow",
	Purple: "Purple",
	Orange: "Orange",
	Cyan:   "Cyan",
	White:  "White",
}

// Layout letters, indexed by TileType. '.' marks an Empty slot.
const tileRunes = ".RGBYPOCW"

// String returns the tile type name.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "Unknown"
}

// Rune returns the single-letter layout code for the type.
func (t TileType) Rune() rune {
	if int(t) < len(tileRunes) {
		return rune(tileRunes[t])
	}
	return '?'
}

// ParseTileType converts a layout letter back into a TileType.
func ParseTileType(r rune) (TileType, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	for i, c := range tileRunes {
		if c == r {
			return TileType(i), true
		}
	}
	return Empty, false
}

// PlayableTypes returns the first n non-Empty tile types.
func PlayableTypes(n int) []TileType {
	if n > MaxTileKinds {
		n = MaxTileKinds
	}
	types := make([]TileType, 0, n)
	for i := 1; i <= n; i++ {
		types = append(types, TileType(i))
	}
	return types
}

// TileID identifies a tile for its whole lifetime on a board.
type TileID uint32

// Tile is a single gem. Tiles are owned by the Board and mutated in place:
// a removed tile turns Empty and is later given a fresh type on refill.
type Tile struct {
	ID      TileID
	Type    TileType
	Pos     Coord
	Moving  bool // set while the tile is falling during gravity
	Matched bool // set while the tile belongs to a match being removed
}

// IsEmpty reports whether the tile currently holds no gem.
func (t *Tile) IsEmpty() bool {
	return t.Type == Empty
}
