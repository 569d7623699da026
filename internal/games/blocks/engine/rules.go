package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the externally visible state of the rules engine.
type Phase int

const (
	PhaseFalling  Phase = iota // active piece can still move down
	PhaseLocking               // active piece is grounded, lock delay running
	PhaseGameOver              // a spawned piece did not fit; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config describes the board and rule set an Engine is built with.
type Config struct {
	Width   int
	Height  int
	Variant Variant
	// Pieces restricts the bag to a subset of the catalog. Empty means all.
	Pieces []PieceID
}

// DefaultConfig returns the classic board size for a variant.
func DefaultConfig(v Variant) Config {
	if v == VariantTriomino {
		return Config{Width: 4, Height: 5, Variant: v}
	}
	return Config{Width: 10, Height: 20, Variant: v}
}

// ActivePiece is the piece currently under player control.
type ActivePiece struct {
	ID       PieceID
	Rotation int
	X, Y     int
}

// Engine owns the board, the bag and the active piece.
// It is not safe for concurrent use; exactly one goroutine drives it.
type Engine struct {
	catalog    *Catalog
	board      *Board
	bag        *Bag
	garbageRng *rand.Rand

	active    ActivePiece
	next      PieceID
	over      bool
	lockTimer time.Duration
}

// New validates cfg and builds an engine with its first piece spawned.
func New(cfg Config, rng *rand.Rand) (*Engine, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	catalog, err := CatalogFor(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if cfg.Width < catalog.Box() && cfg.Width > 0 {
		return nil, fmt.Errorf("%w: width %d is narrower than the %d-cell piece box",
			ErrInvalidDimensions, cfg.Width, catalog.Box())
	}
	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	set := catalog.Pieces()
	if len(cfg.Pieces) > 0 {
		for _, id := range cfg.Pieces {
			if !catalog.Has(id) {
				return nil, fmt.Errorf("%w %q in %s catalog", ErrUnknownPiece, id, catalog.Variant())
			}
		}
		set = cfg.Pieces
	}

	// Garbage holes get their own stream so attacks do not shift the bag order.
	garbageRng := rand.New(rand.NewSource(rng.Int63()))
	bag, err := NewBag(set, rng)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:    catalog,
		board:      board,
		bag:        bag,
		garbageRng: garbageRng,
	}
	e.next = bag.Next()
	e.Spawn()
	return e, nil
}

// Catalog returns the piece catalog in use.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Board returns the board. Callers must treat it as read-only.
func (e *Engine) Board() *Board { return e.board }

// Active returns the active piece.
func (e *Engine) Active() ActivePiece { return e.active }

// Next returns the id of the upcoming piece.
func (e *Engine) Next() PieceID { return e.next }

// GameOver reports whether the engine reached its terminal state.
func (e *Engine) GameOver() bool { return e.over }

// LockTimer returns the time the active piece has spent grounded.
func (e *Engine) LockTimer() time.Duration { return e.lockTimer }

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.over:
		return PhaseGameOver
	case !e.fits(e.active.X, e.active.Y+1, e.active.Rotation):
		return PhaseLocking
	default:
		return PhaseFalling
	}
}

func (e *Engine) cellsAt(id PieceID, x, y, rot int) []Point {
	offsets := e.catalog.Cells(id, rot)
	out := make([]Point, len(offsets))
	for i, o := range offsets {
		out[i] = Point{X: x + o.X, Y: y + o.Y}
	}
	return out
}

func (e *Engine) fits(x, y, rot int) bool {
	return e.board.Fits(e.cellsAt(e.active.ID, x, y, rot))
}

// Spawn brings the next piece into play. It returns false and enters the
// terminal phase when the new piece does not fit.
func (e *Engine) Spawn() bool {
	if e.over {
		return false
	}
	e.active = ActivePiece{
		ID: e.next,
		X:  e.spawnColumn(),
		Y:  e.catalog.SpawnRow(),
	}
	e.next = e.bag.Next()
	e.lockTimer = 0
	if !e.fits(e.active.X, e.active.Y, 0) {
		e.over = true
		return false
	}
	return true
}

func (e *Engine) spawnColumn() int {
	return e.board.Width()/2 - e.catalog.Box()/2
}

// Move shifts the active piece horizontally by dx columns.
func (e *Engine) Move(dx int) bool {
	if e.over || dx == 0 {
		return false
	}
	if !e.fits(e.active.X+dx, e.active.Y, e.active.Rotation) {
		return false
	}
	e.active.X += dx
	e.lockTimer = 0
	return true
}

// TryRotate rotates clockwise using the first kick offset that fits.
// On failure nothing changes.
func (e *Engine) TryRotate() bool {
	if e.over {
		return false
	}
	from := e.active.Rotation
	to := (from + 1) % 4
	for _, k := range e.catalog.Kicks(e.active.ID, from, to) {
		if e.fits(e.active.X+k.X, e.active.Y+k.Y, to) {
			e.active.X += k.X
			e.active.Y += k.Y
			e.active.Rotation = to
			e.lockTimer = 0
			return true
		}
	}
	return false
}

// SoftDrop moves the active piece one row down.
func (e *Engine) SoftDrop() bool {
	if e.over {
		return false
	}
	if !e.fits(e.active.X, e.active.Y+1, e.active.Rotation) {
		return false
	}
	e.active.Y++
	e.lockTimer = 0
	return true
}

// DropDistance returns how many rows the active piece can fall.
func (e *Engine) DropDistance() int {
	d := 0
	for e.fits(e.active.X, e.active.Y+d+1, e.active.Rotation) {
		d++
	}
	return d
}

// Drop moves the active piece to the lowest row it fits on and returns the
// number of rows travelled. It does not lock.
func (e *Engine) Drop() int {
	if e.over {
		return 0
	}
	d := e.DropDistance()
	e.active.Y += d
	if d > 0 {
		e.lockTimer = 0
	}
	return d
}

// ActiveCells returns the board coordinates of the active piece.
func (e *Engine) ActiveCells() []Point {
	return e.cellsAt(e.active.ID, e.active.X, e.active.Y, e.active.Rotation)
}

// GhostCells returns where the active piece would land.
func (e *Engine) GhostCells() []Point {
	return e.cellsAt(e.active.ID, e.active.X, e.active.Y+e.DropDistance(), e.active.Rotation)
}

// PreviewCells returns the next piece in spawn rotation at the top-center
// display anchor.
func (e *Engine) PreviewCells() []Point {
	return e.cellsAt(e.next, e.spawnColumn(), 0, 0)
}

// LockPiece writes the active piece into the board and spawns the next one.
func (e *Engine) LockPiece() {
	if e.over {
		return
	}
	e.board.Lock(e.ActiveCells(), e.active.ID)
	e.Spawn()
}

// ClearLines removes completed rows and returns how many there were.
func (e *Engine) ClearLines() int {
	return e.board.ClearFullRows()
}

// AddGarbage injects n attack rows, each with one random hole. If the
// rising stack overlaps the active piece, the piece is pushed up until it
// fits again.
func (e *Engine) AddGarbage(n int) {
	if e.over || n <= 0 {
		return
	}
	holes := make([]int, n)
	for i := range holes {
		holes[i] = e.garbageRng.Intn(e.board.Width())
	}
	e.board.InjectGarbage(holes)
	for !e.fits(e.active.X, e.active.Y, e.active.Rotation) {
		e.active.Y--
	}
}

// Overlay selects which transient layers Frame draws over the board.
type Overlay uint8

const (
	OverlayGhost Overlay = 1 << iota
	OverlayPreview
)

// Frame composes the board with the active piece and the selected overlays.
// Ghost and preview cells use shadow tokens and never cover solid cells.
func (e *Engine) Frame(layers Overlay) [][]Cell {
	grid := e.board.Rows()
	put := func(cells []Point, c Cell, onlyEmpty bool) {
		for _, p := range cells {
			if p.Y < 0 || p.Y >= len(grid) || p.X < 0 || p.X >= len(grid[p.Y]) {
				continue
			}
			if onlyEmpty && grid[p.Y][p.X] != Empty {
				continue
			}
			grid[p.Y][p.X] = c
		}
	}
	if layers&OverlayGhost != 0 && !e.over {
		put(e.GhostCells(), Cell(e.active.ID).Shadow(), true)
	}
	put(e.ActiveCells(), Cell(e.active.ID), false)
	if layers&OverlayPreview != 0 {
		put(e.PreviewCells(), Cell(e.next).Shadow(), true)
	}
	return grid
}
