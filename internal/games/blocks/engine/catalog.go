// Package engine implements the falling-block simulation: piece catalogs with
// wall kicks, the bag randomizer, the board, the rules engine and the clock
// that drives gravity, lock delay and auto-repeat.
//
// The package is pure: no rendering, no I/O, no global state. All randomness
// comes from a *rand.Rand supplied by the caller.
package engine

import (
	"errors"
	"fmt"
)

// Point is a cell coordinate or an offset. X grows to the right, Y grows down.
type Point struct {
	X, Y int
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// PieceID identifies a shape inside a catalog. IDs are upper-case ASCII letters.
type PieceID byte

func (id PieceID) String() string {
	return string(rune(id))
}

// Variant selects the rule set a catalog is built for.
type Variant int

const (
	VariantTetromino Variant = iota // 4-cell shapes, 4x4 box, SRS kicks
	VariantTriomino                 // 2-3 cell shapes, 3x3 box, small kicks
)

func (v Variant) String() string {
	switch v {
	case VariantTetromino:
		return "tetromino"
	case VariantTriomino:
		return "triomino"
	default:
		return "unknown"
	}
}

// ParseVariant converts a config name into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "tetromino", "tetris":
		return VariantTetromino, nil
	case "triomino", "tritris":
		return VariantTriomino, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// ErrUnknownPiece is returned when a piece id is not part of the catalog.
var ErrUnknownPiece = errors.New("unknown piece id")

type rotationPair struct {
	from, to int
}

// PieceDef is a shape with its four rotation states.
type PieceDef struct {
	ID        PieceID
	Rotations [4][]Point
}

// Catalog holds the shapes and kick tables of one variant.
// It is immutable after construction and safe to share.
type Catalog struct {
	variant  Variant
	box      int
	spawnRow int
	order    []PieceID
	pieces   map[PieceID]*PieceDef
	kicks    map[rotationPair][]Point
	// special holds per-piece kick tables that replace kicks (the I piece).
	special map[PieceID]map[rotationPair][]Point
}

// CatalogFor returns the catalog for the given variant.
func CatalogFor(v Variant) (*Catalog, error) {
	switch v {
	case VariantTetromino:
		return tetrominoCatalog, nil
	case VariantTriomino:
		return triominoCatalog, nil
	default:
		return nil, fmt.Errorf("catalog: unsupported variant %d", int(v))
	}
}

// Variant returns the rule set of this catalog.
func (c *Catalog) Variant() Variant { return c.variant }

// Box returns the side of the bounding box shapes are defined in.
func (c *Catalog) Box() int { return c.box }

// SpawnRow returns the anchor row a new piece spawns on.
func (c *Catalog) SpawnRow() int { return c.spawnRow }

// Pieces returns the piece ids in catalog order.
func (c *Catalog) Pieces() []PieceID {
	out := make([]PieceID, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id PieceID) bool {
	_, ok := c.pieces[id]
	return ok
}

// Cells returns the occupied offsets of a piece in the given rotation.
// Unknown ids yield nil.
func (c *Catalog) Cells(id PieceID, rot int) []Point {
	def, ok := c.pieces[id]
	if !ok {
		return nil
	}
	return def.Rotations[((rot%4)+4)%4]
}

// Kicks returns the ordered kick candidates for a rotation transition.
// A transition without an entry only tries the unshifted position.
func (c *Catalog) Kicks(id PieceID, from, to int) []Point {
	key := rotationPair{from: from, to: to}
	if table, ok := c.special[id]; ok {
		if list, ok := table[key]; ok {
			return list
		}
		return noKick
	}
	if list, ok := c.kicks[key]; ok {
		return list
	}
	return noKick
}

var noKick = []Point{{0, 0}}

// validate checks the catalog against the board cell encoding.
func (c *Catalog) validate() error {
	for _, id := range c.order {
		if id < 'A' || id > 'Z' || Cell(id) == Garbage {
			return fmt.Errorf("catalog: piece id %q collides with board markers", id)
		}
		def, ok := c.pieces[id]
		if !ok {
			return fmt.Errorf("catalog: %w %q", ErrUnknownPiece, id)
		}
		for r, cells := range def.Rotations {
			if len(cells) == 0 {
				return fmt.Errorf("catalog: piece %q rotation %d is empty", id, r)
			}
			for _, p := range cells {
				if p.X < 0 || p.Y < 0 || p.X >= c.box || p.Y >= c.box {
					return fmt.Errorf("catalog: piece %q rotation %d leaves its box", id, r)
				}
			}
		}
	}
	return nil
}

// fromBitmap parses rows of '1'/'0' into offsets, then derives the three
// clockwise rotations inside an n x n box.
func fromBitmap(id PieceID, n int, rows ...string) *PieceDef {
	var base []Point
	for y, row := range rows {
		for x, ch := range row {
			if ch == '1' {
				base = append(base, Point{X: x, Y: y})
			}
		}
	}
	def := &PieceDef{ID: id}
	def.Rotations[0] = base
	for r := 1; r < 4; r++ {
		def.Rotations[r] = rotateCW(def.Rotations[r-1], n)
	}
	return def
}

// rotateCW maps new[r][c] = old[n-1-c][r], so an old cell at column x,
// row y lands at column n-1-y, row x.
func rotateCW(cells []Point, n int) []Point {
	out := make([]Point, len(cells))
	for i, p := range cells {
		out[i] = Point{X: n - 1 - p.Y, Y: p.X}
	}
	return out
}

func newCatalog(v Variant, box, spawnRow int, defs []*PieceDef, kicks map[rotationPair][]Point, special map[PieceID]map[rotationPair][]Point) *Catalog {
	c := &Catalog{
		variant:  v,
		box:      box,
		spawnRow: spawnRow,
		pieces:   make(map[PieceID]*PieceDef, len(defs)),
		kicks:    kicks,
		special:  special,
	}
	for _, d := range defs {
		c.order = append(c.order, d.ID)
		c.pieces[d.ID] = d
	}
	if err := c.validate(); err != nil {
		panic(err)
	}
	return c
}

var srsKicks = map[rotationPair][]Point{
	{0, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{1, 0}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{1, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{2, 1}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{2, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{3, 2}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{0, 3}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
}

var srsKicksI = map[rotationPair][]Point{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

var tetrominoCatalog = newCatalog(VariantTetromino, 4, -1,
	[]*PieceDef{
		fromBitmap('I', 4, "0000", "1111"),
		fromBitmap('O', 4, "0110", "0110"),
		fromBitmap('T', 4, "0100", "1110"),
		fromBitmap('J', 4, "1000", "1110"),
		fromBitmap('L', 4, "0010", "1110"),
		fromBitmap('S', 4, "0110", "1100"),
		fromBitmap('Z', 4, "1100", "0110"),
	},
	srsKicks,
	map[PieceID]map[rotationPair][]Point{'I': srsKicksI},
)

var triominoKickList = []Point{{0, 0}, {-1, 0}, {1, 0}, {0, -1}}

var triominoCatalog = newCatalog(VariantTriomino, 3, 0,
	[]*PieceDef{
		{ID: 'I', Rotations: [4][]Point{
			{{0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}},
		}},
		{ID: 'L', Rotations: [4][]Point{
			{{0, 0}, {0, 1}, {1, 1}},
			{{0, 1}, {1, 1}, {0, 2}},
			{{0, 1}, {1, 1}, {1, 2}},
			{{1, 0}, {1, 1}, {0, 1}},
		}},
		{ID: 'D', Rotations: [4][]Point{
			{{0, 0}, {1, 0}},
			{{0, 0}, {0, 1}},
			{{0, 0}, {1, 0}},
			{{0, 0}, {0, 1}},
		}},
	},
	map[rotationPair][]Point{
		{0, 1}: triominoKickList,
		{1, 2}: triominoKickList,
		{2, 3}: triominoKickList,
		{3, 0}: triominoKickList,
		{1, 0}: triominoKickList,
		{2, 1}: triominoKickList,
		{3, 2}: triominoKickList,
		{0, 3}: triominoKickList,
	},
	nil,
)
