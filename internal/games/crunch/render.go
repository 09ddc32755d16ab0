package crunch

import (
	"fmt"

	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/engine"
)

const (
	cellWidth = 3 // glyph with a bracket on each side
	hudHeight = 3
)

// cookieGlyph is how one cookie type is drawn.
type cookieGlyph struct {
	Rune  rune
	Color core.Color
}

var glyphs = map[engine.CookieType]cookieGlyph{
	engine.Croissant:   {'C', core.ColorYellow},
	engine.Cupcake:     {'U', core.ColorPink},
	engine.Danish:      {'D', core.ColorOrange},
	engine.Donut:       {'O', core.ColorMagenta},
	engine.Macaroon:    {'M', core.ColorGreen},
	engine.SugarCookie: {'S', core.ColorBrightWhite},
	engine.Eclair:      {'E', core.ColorBrown},
	engine.Brownie:     {'B', core.ColorBrightRed},
}

// Glyph returns the rune and colour used for t.
func Glyph(t engine.CookieType) (rune, core.Color) {
	g, ok := glyphs[t]
	if !ok {
		return ' ', core.ColorDefault
	}
	return g.Rune, g.Color
}

func (g *Game) minScreenSize() (w, h int) {
	w = core.Max(g.view.columns*cellWidth+2, 40)
	h = hudHeight + g.view.rows + 2 + 2
	return w, h
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sess == nil {
		g.drawOverlay(dst, core.NewRect(0, 0, g.screenW, g.screenH), "Cannot start level", g.errorText(), "Press B to go back")
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.view.columns*cellWidth + 2
	boardH := g.view.rows + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY, boardW, boardH)

	if g.message != "" {
		dst.DrawTextCenteredColored(boardY+boardH, g.message, core.ColorBrightYellow)
	}

	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

func (g *Game) errorText() string {
	if g.failure == nil {
		return "unknown error"
	}
	return g.failure.Error()
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score and objective.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightCyan)

	score := fmt.Sprintf("Score: %d", g.shown.Score)
	if g.shown.TargetScore > 0 {
		score = fmt.Sprintf("Score: %d/%d", g.shown.Score, g.shown.TargetScore)
	}
	dst.DrawText(boardX, 1, score)

	moves := fmt.Sprintf("Moves: %d", g.shown.MovesUsed)
	if g.shown.Limited() {
		moves = fmt.Sprintf("Moves left: %d", g.shown.MovesLeft)
	}
	dst.DrawText(core.Max(boardX, boardX+boardW-len(moves)), 1, moves)

	// progress toward the target
	if g.shown.TargetScore > 0 {
		filled := core.Clamp(g.shown.Score*boardW/g.shown.TargetScore, 0, boardW)
		dst.DrawHLine(boardX, 2, boardW, '·')
		dst.DrawHLine(boardX, 2, filled, '=')
	}

	if g.current != nil && g.current.event.Combo > 1 {
		dst.DrawTextCenteredColored(2, fmt.Sprintf("Combo x%d", g.current.event.Combo), core.ColorBrightMagenta)
	}
}

// renderBoard draws the frame and every playable cell.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	for row := 0; row < g.view.rows; row++ {
		for col := 0; col < g.view.columns; col++ {
			x := boardX + 1 + col*cellWidth
			y := boardY + 1 + row
			if !g.sess.TileAt(col, row) {
				for i := 0; i < cellWidth; i++ {
					dst.SetColored(x+i, y, '░', core.ColorGray)
				}
				continue
			}
			g.renderCell(dst, x, y, engine.C(col, row))
		}
	}
}

func (g *Game) renderCell(dst *core.Screen, x, y int, at engine.Coord) {
	t, mark := g.view.at(at.Column, at.Row)
	r, color := Glyph(t)
	if t == engine.NoCookie {
		r = '·'
		color = core.ColorGray
	}

	switch mark {
	case MarkMatch:
		if g.tick%4 < 2 {
			r, color = '*', core.ColorBrightWhite
		}
	case MarkInvalid:
		color = core.ColorRed
	case MarkSpawn:
		if g.current != nil && g.current.Progress() < 0.5 {
			r = '.'
		}
	}

	left, right := ' ', ' '
	switch {
	case g.selected && at == g.anchor:
		left, right = '<', '>'
	case g.hint != nil && (at == g.hint.A || at == g.hint.B):
		left, right = '(', ')'
	}

	reverse := at == g.cursor && !g.animating()
	dst.SetCell(x, y, core.Cell{Rune: left, Color: core.ColorBrightYellow, Reverse: reverse})
	dst.SetCell(x+1, y, core.Cell{Rune: r, Color: color, Reverse: reverse})
	dst.SetCell(x+2, y, core.Cell{Rune: right, Color: core.ColorBrightYellow, Reverse: reverse})
}

// renderOverlays draws game state overlays over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	if g.animating() || !g.shown.Over {
		return
	}

	scoreStr := fmt.Sprintf("Score: %d", g.shown.Score)
	if g.shown.Won {
		g.drawOverlay(dst, board, "LEVEL COMPLETE!", scoreStr, "Press R to play again")
		return
	}
	g.drawOverlay(dst, board, "OUT OF MOVES", scoreStr, "Press R to restart")
}

// drawOverlay draws a boxed text overlay centered on area, kept on screen.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	box.X = core.Clamp(box.X, 0, core.Max(0, g.screenW-box.W))
	box.Y = core.Clamp(box.Y, 0, core.Max(0, g.screenH-box.H))

	// Clear area behind overlay
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(box, core.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawText(box.X+(box.W-len([]rune(line)))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Select | H: Hint | X: Shuffle | P: Pause | R: Restart | Q: Quit"
}
