package blocks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

// board is one seat: an engine and the clock driving it.
type board struct {
	engine *engine.Engine
	clock  *engine.Clock
}

func newBoard(vc config.VariantConfig, v engine.Variant, seed int64) (*board, error) {
	e, err := engine.New(vc.EngineConfig(v), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	c, err := engine.NewClock(e, vc.ClockConfig())
	if err != nil {
		return nil, fmt.Errorf("create clock: %w", err)
	}
	return &board{engine: e, clock: c}, nil
}

// step applies the frame's actions and then advances the board by dt.
// It returns the rows cleared during the tick.
func (b *board) step(in core.InputFrame, dt time.Duration) int {
	c := b.clock
	cleared := 0
	if in.Has(core.ActionPressLeft) {
		c.PressLeft()
	}
	if in.Has(core.ActionReleaseLeft) {
		c.ReleaseLeft()
	}
	if in.Has(core.ActionPressRight) {
		c.PressRight()
	}
	if in.Has(core.ActionReleaseRight) {
		c.ReleaseRight()
	}
	if in.Has(core.ActionMoveLeft) {
		c.Move(-1)
	}
	if in.Has(core.ActionMoveRight) {
		c.Move(1)
	}
	if in.Has(core.ActionRotate) {
		c.Rotate()
	}
	if in.Has(core.ActionSoftDrop) {
		c.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		cleared += c.HardDrop()
	}
	return cleared + c.Update(dt, in.Has(core.ActionSoftDropHeld))
}

func (b *board) over() bool {
	return b.engine.GameOver()
}

func (b *board) snapshot() BoardSnapshot {
	e := b.engine
	grid := e.Frame(engine.OverlayGhost | engine.OverlayPreview)
	rows := make([]string, len(grid))
	for y, row := range grid {
		buf := make([]byte, len(row))
		for x, c := range row {
			buf[x] = byte(c)
		}
		rows[y] = string(buf)
	}
	s := b.clock.Stats()
	return BoardSnapshot{
		Variant:  e.Catalog().Variant().String(),
		Rows:     rows,
		Next:     byte(e.Next()),
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		Pieces:   s.Pieces,
		Pending:  b.clock.Garbage().Pending(),
		GameOver: e.GameOver(),
	}
}

// dtFor converts a tick rate into the fixed simulation step.
func dtFor(cfg core.RuntimeConfig) time.Duration {
	return time.Second / time.Duration(cfg.TickRateOrDefault())
}
