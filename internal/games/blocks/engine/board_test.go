package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, y int, id PieceID, except ...int) {
	skip := make(map[int]bool)
	for _, x := range except {
		skip[x] = true
	}
	var cells []Point
	for x := 0; x < b.Width(); x++ {
		if !skip[x] {
			cells = append(cells, Point{X: x, Y: y})
		}
	}
	b.Lock(cells, id)
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 20}, {10, 0}, {-1, 5}} {
		_, err := NewBoard(dims[0], dims[1])
		assert.True(t, errors.Is(err, ErrInvalidDimensions), "dims %v", dims)
	}
}

func TestIsBlocked(t *testing.T) {
	b, err := NewBoard(10, 20)
	require.NoError(t, err)
	b.Lock([]Point{{3, 5}}, 'T')

	tests := []struct {
		name    string
		x, y    int
		blocked bool
	}{
		{"empty cell", 0, 0, false},
		{"left wall", -1, 0, true},
		{"right wall", 10, 0, true},
		{"floor", 0, 20, true},
		{"above top", 4, -3, false},
		{"above top outside wall", -1, -3, true},
		{"filled cell", 3, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, b.IsBlocked(tt.x, tt.y))
		})
	}
}

func TestLockDiscardsOverhang(t *testing.T) {
	b, err := NewBoard(4, 4)
	require.NoError(t, err)

	b.Lock([]Point{{1, -1}, {1, 0}, {2, -2}}, 'L')
	assert.Equal(t, 1, b.FilledCount())
	assert.Equal(t, Cell('L'), b.At(1, 0))
}

func TestClearFullRowsPreservesOrder(t *testing.T) {
	b, err := NewBoard(4, 6)
	require.NoError(t, err)

	fillRow(b, 5, 'I')
	fillRow(b, 4, 'S', 0)
	fillRow(b, 3, 'O')
	fillRow(b, 2, 'Z', 3)

	n := b.ClearFullRows()
	assert.Equal(t, 2, n)

	rows := b.Rows()
	// Survivors keep their order and sink to the bottom.
	assert.Equal(t, []Cell{Empty, 'S', 'S', 'S'}, rows[5])
	assert.Equal(t, []Cell{'Z', 'Z', 'Z', Empty}, rows[4])
	for y := 0; y < 4; y++ {
		assert.Equal(t, make([]Cell, 4), rows[y], "row %d", y)
	}

	assert.Equal(t, 0, b.ClearFullRows(), "second clear is a no-op")
}

func TestInjectGarbage(t *testing.T) {
	b, err := NewBoard(10, 20)
	require.NoError(t, err)
	for y := 0; y < 20; y++ {
		b.Lock([]Point{{y % 10, y}}, 'T')
	}
	before := b.Rows()

	b.InjectGarbage([]int{2, 7, 0})

	after := b.Rows()
	for y := 0; y < 17; y++ {
		assert.Equal(t, before[y+3], after[y], "row %d shifted", y)
	}
	for i, hole := range []int{2, 7, 0} {
		row := after[17+i]
		for x, c := range row {
			if x == hole {
				assert.Equal(t, Empty, c)
			} else {
				assert.Equal(t, Garbage, c)
			}
		}
	}
}

func TestCellTokens(t *testing.T) {
	c := Cell('T')
	assert.True(t, c.Solid())
	assert.False(t, c.IsShadow())
	assert.Equal(t, Cell('t'), c.Shadow())
	assert.True(t, c.Shadow().IsShadow())
	assert.False(t, c.Shadow().Solid())
	assert.Equal(t, PieceID('T'), c.Shadow().Piece())
	assert.True(t, Garbage.Solid())
	assert.False(t, Empty.Solid())
}
