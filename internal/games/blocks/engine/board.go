package engine

import (
	"errors"
	"fmt"
)

// Cell is an opaque token stored in the board grid.
// Solid piece cells use the upper-case piece id; ghost and preview overlays
// use the lower-case form so renderers can tell them apart.
type Cell byte

const (
	Empty   Cell = 0
	Garbage Cell = 'X' // rows injected by an opponent attack
)

// Solid reports whether the cell occupies space on the board.
func (c Cell) Solid() bool {
	return c != Empty && !c.IsShadow()
}

// IsShadow reports whether the cell is a ghost or preview overlay token.
func (c Cell) IsShadow() bool {
	return c >= 'a' && c <= 'z'
}

// Shadow returns the overlay form of a piece token.
func (c Cell) Shadow() Cell {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Piece returns the piece id behind a solid or shadow token.
func (c Cell) Piece() PieceID {
	if c.IsShadow() {
		return PieceID(c - ('a' - 'A'))
	}
	return PieceID(c)
}

// ErrInvalidDimensions is returned for non-positive board sizes.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// Board is the grid of placed cells. Row 0 is the top.
// Rows above the visible area are never stored.
type Board struct {
	width  int
	height int
	rows   [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	b := &Board{width: width, height: height, rows: make([][]Cell, height)}
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// At returns the cell at (x, y). Out-of-range coordinates read as Empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Empty
	}
	return b.rows[y][x]
}

// IsBlocked reports whether a piece cell may not occupy (x, y).
// Cells above the top edge are never blocked so pieces can overhang at spawn.
func (b *Board) IsBlocked(x, y int) bool {
	if x < 0 || x >= b.width || y >= b.height {
		return true
	}
	if y < 0 {
		return false
	}
	return b.rows[y][x] != Empty
}

// Fits reports whether every cell is unblocked.
func (b *Board) Fits(cells []Point) bool {
	for _, p := range cells {
		if b.IsBlocked(p.X, p.Y) {
			return false
		}
	}
	return true
}

// Lock writes the piece token into every visible cell. Cells with y < 0 are
// dropped.
func (b *Board) Lock(cells []Point, id PieceID) {
	for _, p := range cells {
		if p.Y < 0 || p.Y >= b.height || p.X < 0 || p.X >= b.width {
			continue
		}
		b.rows[p.Y][p.X] = Cell(id)
	}
}

// ClearFullRows removes every row without an Empty cell, shifts the rest down
// in order and pads the top with empty rows. It returns the number removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Cell, 0, b.height)
	for _, row := range b.rows {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}
	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}
	fresh := make([][]Cell, cleared, b.height)
	for i := range fresh {
		fresh[i] = make([]Cell, b.width)
	}
	b.rows = append(fresh, kept...)
	return cleared
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// InjectGarbage pushes one garbage row per hole column up from the bottom.
// Each injection drops the current top row. Hole columns outside the board
// are clamped.
func (b *Board) InjectGarbage(holes []int) {
	for _, hole := range holes {
		if hole < 0 {
			hole = 0
		}
		if hole >= b.width {
			hole = b.width - 1
		}
		row := make([]Cell, b.width)
		for x := range row {
			if x != hole {
				row[x] = Garbage
			}
		}
		b.rows = append(b.rows[1:], row)
	}
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y, row := range b.rows {
		out[y] = make([]Cell, b.width)
		copy(out[y], row)
	}
	return out
}

// FilledCount returns the number of non-empty cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.rows {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}
