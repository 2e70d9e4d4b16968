package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	cellWidth = 3 // Glyph plus a marker column on each side
	hudHeight = 3

	hudMinWidth = 44
)

// tileStyle is how one tile type looks on screen. Every type has its own
// glyph so the board stays readable without colors.
type tileStyle struct {
	glyph rune
	color core.Color
}

var tileStyles = map[engine.TileType]tileStyle{
	engine.Empty:  {'·', core.ColorGray},
	engine.Red:    {'●', core.ColorBrightRed},
	engine.Green:  {'▲', core.ColorBrightGreen},
	engine.Blue:   {'■', core.ColorBrightBlue},
	engine.Yellow: {'◆', core.ColorBrightYellow},
	engine.Purple: {'★', core.ColorBrightMagenta},
	engine.Orange: {'♥', core.ColorOrange},
	engine.Cyan:   {'♣', core.ColorBrightCyan},
	engine.White:  {'♠', core.ColorBrightWhite},
}

// styleOf returns the glyph and color for a tile type.
func styleOf(t engine.TileType) tileStyle {
	if s, ok := tileStyles[t]; ok {
		return s
	}
	return tileStyle{'?', core.ColorDefault}
}

// layout places the board box on screen and maps clicks back to cells.
type layout struct {
	box  core.Rect // Board frame including the border
	cols int
	rows int
	fits bool
}

func newLayout(screenW, screenH, cols, rows int) layout {
	boxW := cols*cellWidth + 2
	boxH := rows + 2
	// Board hangs right under the HUD, centered horizontally
	box := core.NewRect(0, hudHeight, screenW, boxH).CenteredIn(boxW, boxH)

	return layout{
		box:  box,
		cols: cols,
		rows: rows,
		fits: screenW >= boxW && screenH >= hudHeight+boxH+2,
	}
}

// cellOrigin returns the screen position of the glyph column of cell c.
func (l layout) cellOrigin(c engine.Coord) (int, int) {
	return l.box.X + 1 + c.X*cellWidth + 1, l.box.Y + 1 + c.Y
}

// cellAt maps a screen position to a board cell.
func (l layout) cellAt(x, y int) (engine.Coord, bool) {
	inner := core.NewRect(l.box.X+1, l.box.Y+1, l.cols*cellWidth, l.rows)
	if !inner.Contains(x, y) {
		return engine.Coord{}, false
	}
	return engine.C((x-inner.X)/cellWidth, y-inner.Y), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	if g.eng == nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "CANNOT START", g.failure, "Press Q to quit")
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)

	box := g.layout.box
	if g.flashVisible() {
		dst.DrawTextCenteredColor(box.Bottom(), g.flash, core.ColorBrightYellow)
	}
	dst.DrawTextCenteredColor(g.screenH-1, g.Controls(), core.ColorGray)

	cx, cy := box.Center()
	g.renderOverlays(dst, cx, cy)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.layout.box.W, hudHeight+g.layout.box.H+2))
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	hud := core.NewRect(0, 0, g.screenW, hudHeight).
		CenteredIn(core.Min(g.screenW, core.Max(g.layout.box.W, hudMinWidth)), hudHeight)
	left := hud.X
	right := hud.Right()

	dst.DrawTextCenteredColor(0, "MATCH-3", core.ColorBrightMagenta)

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", st.Score))
	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Goal: %d", g.levelIndex+1, len(g.campaign), g.level.TargetScore)
	} else {
		info = fmt.Sprintf("Colors: %d", g.eng.TileKinds())
	}
	dst.DrawText(core.Max(left, right-len(info)), 1, info)

	moves := fmt.Sprintf("Moves: %d", g.eng.Moves())
	color := core.ColorDefault
	if n := g.movesLeft(); n >= 0 {
		moves = fmt.Sprintf("Moves left: %d", n)
		if n <= 3 {
			color = core.ColorBrightRed
		}
	}
	dst.DrawTextColor(left, 2, moves, color)

	chain := fmt.Sprintf("Best chain: x%d", core.Max(1, st.BestChain))
	if g.mode == ModeEndless && g.shufflesLeft >= 0 {
		chain = fmt.Sprintf("Shuffles: %d  %s", g.shufflesLeft, chain)
	}
	dst.DrawText(core.Max(left, right-len(chain)), 2, chain)
}

// renderBoard draws the frame, the tiles and the cursor markers.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBoxColor(g.layout.box, core.ColorGray)

	types := g.eng.Board().Types()
	var marks map[engine.Coord]bool
	kind := frameSettle
	if f, ok := g.replay.current(); ok {
		types, marks, kind = f.types, f.marks, f.kind
	}

	for y, row := range types {
		for x, t := range row {
			c := engine.C(x, y)
			px, py := g.layout.cellOrigin(c)
			style := styleOf(t)
			if marks[c] && kind == frameClear {
				style = tileStyle{style.glyph, core.ColorFlash}
			}
			dst.SetColor(px, py, style.glyph, style.color)
			if marks[c] && kind == frameSwap {
				g.drawMarkers(dst, c, '‹', '›', core.ColorWhite)
			}
		}
	}

	if g.replay.active() {
		return
	}

	if g.hintTicks > 0 {
		g.drawMarkers(dst, g.hint.A, '{', '}', core.ColorBrightCyan)
		g.drawMarkers(dst, g.hint.B, '{', '}', core.ColorBrightCyan)
	}
	if g.selected {
		g.drawMarkers(dst, g.selection, '<', '>', core.ColorBrightYellow)
	}
	if !g.gameOver && !g.won {
		g.drawMarkers(dst, g.cursor, '[', ']', core.ColorBrightWhite)
	}
}

// drawMarkers puts a pair of bracket runes around cell c.
func (g *Game) drawMarkers(dst *core.Screen, c engine.Coord, l, r rune, color core.Color) {
	px, py := g.layout.cellOrigin(c)
	dst.SetColor(px-1, py, l, color)
	dst.SetColor(px+1, py, r, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	st := g.State()

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.levelCleared:
		goal := fmt.Sprintf("Goal %d reached!", g.level.TargetScore)
		if g.levelIndex >= len(g.campaign)-1 {
			g.drawOverlay(dst, centerX, centerY, goal, "Final level complete!")
		} else {
			g.drawOverlay(dst, centerX, centerY, goal, "Next: "+g.campaign[g.levelIndex+1].Title())
		}
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", st.Score), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", g.failure, fmt.Sprintf("Score: %d", st.Score), "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.mode == ModeEndless {
		return "Arrows: Move | Space: Select | ?: Hint | X: Shuffle | P: Pause | Q: Quit"
	}
	return "Arrows: Move | Space: Select | ?: Hint | P: Pause | Q: Quit"
}

func chainMessage(depth int) string {
	return fmt.Sprintf("Chain x%d!", depth)
}
