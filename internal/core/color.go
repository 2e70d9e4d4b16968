package core

// Color is the paint of one screen cell. Most values are foreground
// colors; the platform maps them to ANSI 256-color codes.
type Color uint8

// Colors for tiles, markers and HUD text.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// ColorFlash is drawn in reverse video. Tiles being cleared use it.
	ColorFlash
)
