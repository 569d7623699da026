package blocks

import (
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// BoardSnapshot is the renderable state of one board.
// Uses primitive types only so it can be compared and broadcast as is.
type BoardSnapshot struct {
	Variant  string
	Rows     []string // one byte per cell: piece id, 'X', lowercase shadow or 0
	Next     byte
	Score    int
	Lines    int
	Level    int
	Pieces   int
	Pending  int // garbage rows queued for the next tick
	GameOver bool
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (BoardSnapshot) IsGameSnapshot() {}

// Width returns the board width in cells.
func (s BoardSnapshot) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Height returns the board height in cells.
func (s BoardSnapshot) Height() int {
	return len(s.Rows)
}

// CellAt returns the token at (x, y), or Empty outside the board.
func (s BoardSnapshot) CellAt(x, y int) engine.Cell {
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= len(s.Rows[y]) {
		return engine.Empty
	}
	return engine.Cell(s.Rows[y][x])
}

// VersusSnapshot is the state of a garbage battle.
type VersusSnapshot struct {
	Tick     uint64
	Boards   [2]BoardSnapshot // indexed by PlayerID-1
	Stats    [2]multiplayer.PlayerStats
	GameOver bool
	Winner   int // 0=none or draw, 1=Player1, 2=Player2
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (VersusSnapshot) IsGameSnapshot() {}

// Board returns the board of player p.
func (s VersusSnapshot) Board(p multiplayer.PlayerID) BoardSnapshot {
	return s.Boards[seat(p)]
}

var (
	_ multiplayer.GameSnapshot = BoardSnapshot{}
	_ multiplayer.GameSnapshot = VersusSnapshot{}
)
