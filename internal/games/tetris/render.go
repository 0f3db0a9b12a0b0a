package tetris

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
)

const (
	cellWidth  = 2 // terminal columns per board cell
	panelWidth = 16
	panelGap   = 2
	flashSteps = 8 // color flips during a clear animation
)

var pieceColors = [...]core.Color{
	engine.PieceNone: core.ColorDefault,
	engine.PieceI:    core.ColorCyan,
	engine.PieceO:    core.ColorYellow,
	engine.PieceT:    core.ColorMagenta,
	engine.PieceS:    core.ColorGreen,
	engine.PieceZ:    core.ColorRed,
	engine.PieceJ:    core.ColorBlue,
	engine.PieceL:    core.ColorOrange,
}

// PieceColor returns the display color of a piece type.
func PieceColor(p engine.PieceType) core.Color {
	if int(p) < len(pieceColors) {
		return pieceColors[p]
	}
	return core.ColorDefault
}

// MinSize returns the smallest screen that fits a board of the given size.
func MinSize(width, height int) (w, h int) {
	return width*cellWidth + 2 + panelGap + panelWidth, height + 2
}

// Render draws the session into dst.
func (g *Game) Render(dst *core.Screen) {
	DrawSnapshot(dst, g.session.Snapshot())
}

// DrawSnapshot draws a session snapshot centered in dst.
func DrawSnapshot(dst *core.Screen, snap engine.Snapshot) {
	dst.Clear()

	minW, minH := MinSize(snap.Width, snap.Height)
	if dst.Width() < minW || dst.Height() < minH {
		drawTooSmall(dst, minW, minH)
		return
	}

	board := core.NewRect((dst.Width()-minW)/2, (dst.Height()-minH)/2, snap.Width*cellWidth+2, snap.Height+2)
	panel := core.NewRect(board.Right()+panelGap, board.Y, panelWidth, board.H)

	drawBoard(dst, board, snap)
	drawPanel(dst, panel, snap)
	drawOverlay(dst, board, snap)
}

func drawTooSmall(dst *core.Screen, w, h int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorRed)
	dst.DrawTextCentered(y, fmt.Sprintf("need %dx%d", w, h), core.ColorGray)
}

func setCell(dst *core.Screen, board core.Rect, x, y int, left, right rune, c core.Color) {
	px := board.X + 1 + x*cellWidth
	py := board.Y + 1 + y
	dst.SetColored(px, py, left, c)
	dst.SetColored(px+1, py, right, c)
}

func drawBoard(dst *core.Screen, board core.Rect, snap engine.Snapshot) {
	dst.DrawBox(board, core.ColorWhite)

	flash := int(snap.ClearProgress*flashSteps)%2 == 0
	for y, row := range snap.Board {
		clearing := snap.ClearingRow(y)
		for x, p := range row {
			switch {
			case p == engine.PieceNone:
				setCell(dst, board, x, y, ' ', '·', core.ColorGray)
			case clearing && flash:
				setCell(dst, board, x, y, '▓', '▓', core.ColorBrightWhite)
			default:
				setCell(dst, board, x, y, '█', '█', PieceColor(p))
			}
		}
	}

	if snap.Ghost != nil {
		drawPose(dst, board, snap.Ghost, '░', core.ColorGray)
	}
	if snap.Active != nil {
		drawPose(dst, board, snap.Active, '█', PieceColor(snap.Active.Type))
	}
}

func drawPose(dst *core.Screen, board core.Rect, p *engine.PiecePose, r rune, c core.Color) {
	p.Shape.Each(func(dx, dy int) {
		y := p.Y + dy
		if y < 0 {
			return
		}
		setCell(dst, board, p.X+dx, y, r, r, c)
	})
}

// drawPreview draws a piece in its spawn rotation, top-left at (x, y).
func drawPreview(dst *core.Screen, x, y int, p engine.PieceType, c core.Color) {
	if !p.Valid() {
		dst.DrawTextColored(x, y, "--", core.ColorGray)
		return
	}
	engine.ShapeOf(p, 0).Each(func(dx, dy int) {
		dst.SetColored(x+dx*cellWidth, y+dy, '█', c)
		dst.SetColored(x+dx*cellWidth+1, y+dy, '█', c)
	})
}

func drawPanel(dst *core.Screen, panel core.Rect, snap engine.Snapshot) {
	x, y := panel.X, panel.Y

	dst.DrawTextColored(x, y, snap.Mode.Title(), core.ColorBrightYellow)
	y++
	if snap.ModeKey != string(snap.Mode) {
		dst.DrawTextColored(x, y, snap.ModeKey, core.ColorGray)
	}
	y += 2

	dst.DrawText(x, y, "NEXT")
	drawPreview(dst, x+1, y+1, snap.Next, PieceColor(snap.Next))
	y += 4

	holdColor := PieceColor(snap.Held)
	if snap.Used {
		holdColor = core.ColorGray
	}
	dst.DrawText(x, y, "HOLD")
	drawPreview(dst, x+1, y+1, snap.Held, holdColor)
	y += 4

	clockLabel := "TIME"
	if snap.Countdown {
		clockLabel = "LEFT"
	}
	stats := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprint(snap.Score)},
		{"BEST", fmt.Sprint(snap.Best)},
		{"LEVEL", fmt.Sprint(snap.Level)},
		{"LINES", fmt.Sprint(snap.Lines)},
		{clockLabel, snap.ClockText},
	}
	for _, st := range stats {
		if y >= panel.Bottom() {
			break
		}
		dst.DrawTextColored(x, y, fmt.Sprintf("%-6s%*s", st.label, panel.W-6, st.value), core.ColorWhite)
		y++
	}
}

func drawOverlay(dst *core.Screen, board core.Rect, snap engine.Snapshot) {
	var lines []string
	switch snap.State {
	case engine.StatePaused:
		lines = []string{"PAUSED", "p to resume", "b for menu"}
	case engine.StateGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("score %d", snap.Score), "r/enter restart", "b menu"}
	default:
		return
	}

	inner := board.Inner()
	top := inner.Y + (inner.H-len(lines))/2
	for i, line := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		runes := []rune(line)
		x := inner.X + (inner.W-len(runes))/2
		dst.DrawRect(core.NewRect(inner.X, top+i, inner.W, 1), ' ', core.ColorDefault)
		dst.DrawTextColored(x, top+i, line, c)
	}
}
