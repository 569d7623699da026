package core

import "strings"

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a character buffer games draw into. Colors are logical; the
// platform decides how to style them. Writes outside the buffer are dropped.
type Screen struct {
	w, h  int
	cells []Cell // row-major
}

// NewScreen returns a blank w×h screen.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Resize changes the dimensions and keeps the overlapping top-left region.
func (s *Screen) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.cells != nil && w == s.w && h == s.h {
		return
	}
	old, oldW := s.cells, s.w
	s.cells = make([]Cell, w*h)
	s.w, s.h = w, h
	s.Clear()
	if oldW == 0 {
		return
	}
	for y := 0; y < min(len(old)/oldW, h); y++ {
		copy(s.cells[y*w:y*w+min(w, oldW)], old[y*oldW:])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes r in the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text left to right from (x, y), one column per rune.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.w-len([]rune(text)))/2, y, text)
}

// DrawBox outlines r with light box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	x0, y0, x1, y1 := r.X, r.Y, r.Right()-1, r.Bottom()-1
	for x := x0 + 1; x < x1; x++ {
		s.SetColored(x, y0, '─', c)
		s.SetColored(x, y1, '─', c)
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetColored(x0, y, '│', c)
		s.SetColored(x1, y, '│', c)
	}
	s.SetColored(x0, y0, '┌', c)
	s.SetColored(x1, y0, '┐', c)
	s.SetColored(x0, y1, '└', c)
	s.SetColored(x1, y1, '┘', c)
}

// Row returns row y as plain text; rows outside the buffer are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	runes := make([]rune, s.w)
	for x, c := range s.cells[y*s.w : (y+1)*s.w] {
		runes[x] = c.Rune
	}
	return string(runes)
}

// String returns the buffer as plain text, rows separated by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
