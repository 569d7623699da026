package blocks

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// Visual characters for rendering. Each board cell is two columns wide.
const (
	SolidChar   = '█'
	ShadowChar  = '░'
	GarbageChar = '▓'
	EmptyChar   = '·'

	cellW  = 2
	panelW = 16
)

var pieceColors = map[engine.PieceID]core.Color{
	'I': core.ColorCyan,
	'O': core.ColorYellow,
	'T': core.ColorMagenta,
	'S': core.ColorGreen,
	'Z': core.ColorRed,
	'J': core.ColorBlue,
	'L': core.ColorOrange,
	'D': core.ColorGreen,
}

// tokenStyle maps a cell token to the rune and color it is drawn with.
func tokenStyle(c engine.Cell) (rune, core.Color) {
	switch {
	case c == engine.Empty:
		return EmptyChar, core.ColorGray
	case c == engine.Garbage:
		return GarbageChar, core.ColorGray
	case c.IsShadow():
		return ShadowChar, core.ColorDim
	}
	if color, ok := pieceColors[c.Piece()]; ok {
		return SolidChar, color
	}
	return SolidChar, core.ColorWhite
}

// boardExtent returns the on-screen size of a board including its frame.
func boardExtent(s BoardSnapshot) (int, int) {
	return s.Width()*cellW + 2, s.Height() + 2
}

// drawBoard draws the framed grid with its top-left corner at (x, y).
func drawBoard(dst *core.Screen, x, y int, s BoardSnapshot, frame core.Color) {
	w, h := boardExtent(s)
	dst.DrawBox(core.NewRect(x, y, w, h), frame)
	for by := 0; by < s.Height(); by++ {
		for bx := 0; bx < s.Width(); bx++ {
			r, color := tokenStyle(s.CellAt(bx, by))
			sx := x + 1 + bx*cellW
			if r == EmptyChar {
				dst.SetColored(sx, y+1+by, ' ', color)
				dst.SetColored(sx+1, y+1+by, r, color)
				continue
			}
			dst.SetColored(sx, y+1+by, r, color)
			dst.SetColored(sx+1, y+1+by, r, color)
		}
	}
}

// drawNext draws the upcoming piece in its spawn rotation.
func drawNext(dst *core.Screen, x, y int, s BoardSnapshot) {
	v, err := engine.ParseVariant(s.Variant)
	if err != nil {
		return
	}
	catalog, err := engine.CatalogFor(v)
	if err != nil {
		return
	}
	id := engine.PieceID(s.Next)
	_, color := tokenStyle(engine.Cell(id))
	for _, p := range catalog.Cells(id, 0) {
		dst.SetColored(x+p.X*cellW, y+p.Y, SolidChar, color)
		dst.SetColored(x+p.X*cellW+1, y+p.Y, SolidChar, color)
	}
}

func drawStats(dst *core.Screen, x, y int, s BoardSnapshot) int {
	lines := []string{
		fmt.Sprintf("Score %d", s.Score),
		fmt.Sprintf("Lines %d", s.Lines),
		fmt.Sprintf("Level %d", s.Level),
	}
	for i, l := range lines {
		dst.DrawText(x, y+i, l)
	}
	y += len(lines)
	if s.Pending > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("Incoming %d", s.Pending), core.ColorRed)
		y++
	}
	return y
}

// RenderSolo draws a single board with its side panel.
func RenderSolo(dst *core.Screen, s BoardSnapshot, title string, paused bool) {
	bw, bh := boardExtent(s)
	if dst.Width() < bw+panelW || dst.Height() < bh {
		drawTooSmall(dst, bw+panelW, bh)
		return
	}
	x := (dst.Width() - bw - panelW) / 2
	y := (dst.Height() - bh) / 2
	drawBoard(dst, x, y, s, core.ColorDefault)

	px := x + bw + 2
	dst.DrawTextColored(px, y, title, core.ColorCyan)
	next := drawStats(dst, px, y+2, s)
	dst.DrawText(px, next+1, "Next")
	drawNext(dst, px, next+2, s)

	switch {
	case s.GameOver:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score %d  |  R restart  Q quit", s.Score))
	case paused:
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

// RenderVersus draws both boards of a garbage battle with a shared panel
// between them. me selects which board is labelled "You".
func RenderVersus(dst *core.Screen, s VersusSnapshot, names [2]string, me multiplayer.PlayerID) {
	b1, b2 := s.Board(multiplayer.Player1), s.Board(multiplayer.Player2)
	w1, h1 := boardExtent(b1)
	w2, h2 := boardExtent(b2)
	need := w1 + panelW + w2
	if dst.Width() < need || dst.Height() < max(h1, h2) {
		drawTooSmall(dst, need, max(h1, h2))
		return
	}
	x := (dst.Width() - need) / 2
	y := (dst.Height() - max(h1, h2)) / 2

	frame := func(p multiplayer.PlayerID) core.Color {
		if p == me {
			return core.ColorCyan
		}
		return core.ColorDefault
	}
	drawBoard(dst, x, y, b1, frame(multiplayer.Player1))
	drawBoard(dst, x+w1+panelW, y, b2, frame(multiplayer.Player2))

	px := x + w1 + 1
	row := y
	for i, p := range []multiplayer.PlayerID{multiplayer.Player1, multiplayer.Player2} {
		label := names[i]
		if p == me {
			label += " (you)"
		}
		dst.DrawTextColored(px, row, truncate(label, panelW-2), frame(p))
		row = drawStats(dst, px, row+1, s.Board(p))
		st := s.Stats[i]
		dst.DrawText(px, row, fmt.Sprintf("Sent %d", st.GarbageSent))
		row += 2
	}

	if s.GameOver {
		title := "DRAW"
		switch multiplayer.PlayerID(s.Winner) {
		case me:
			title = "YOU WIN!"
		case me.Opponent():
			title = "YOU LOSE"
		}
		if me == 0 && s.Winner != 0 {
			title = names[s.Winner-1] + " WINS"
		}
		drawMessage(dst, title, "R rematch  Q quit")
	}
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for yy := boxY; yy < boxY+boxH; yy++ {
		for xx := boxX; xx < boxX+boxW; xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

func drawTooSmall(dst *core.Screen, w, h int) {
	dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
	dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", w, h))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
