package blocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

func newTestBoard(t *testing.T, lockDelay bool) *board {
	t.Helper()
	vc := config.DefaultBlocksConfig().Variant(engine.VariantTetromino)
	vc.Timing.LockDelayEnabled = lockDelay
	b, err := newBoard(vc, engine.VariantTetromino, 3)
	require.NoError(t, err)
	return b
}

func TestHardDropOnGravityTickLocksOnePiece(t *testing.T) {
	b := newTestBoard(t, false)
	b.engine.Drop()
	require.Equal(t, engine.PhaseLocking, b.engine.Phase())

	dt := b.clock.Interval(false)
	b.step(core.NewInputFrame(core.ActionHardDrop), dt)
	assert.Equal(t, 1, b.clock.Stats().Pieces)
}

func TestMoveAppliesBeforeGravityLock(t *testing.T) {
	b := newTestBoard(t, false)
	b.engine.Drop()
	cells := b.engine.ActiveCells()

	b.step(core.NewInputFrame(core.ActionMoveLeft), b.clock.Interval(false))
	require.Equal(t, 1, b.clock.Stats().Pieces)

	for _, p := range cells {
		assert.True(t, b.engine.Board().IsBlocked(p.X-1, p.Y), "cell %v", p)
	}
}

func TestTapWithinOneFrameMovesOnce(t *testing.T) {
	b := newTestBoard(t, true)
	x := b.engine.Active().X

	b.step(core.NewInputFrame(core.ActionPressLeft, core.ActionReleaseLeft), 16*time.Millisecond)
	assert.Equal(t, x-1, b.engine.Active().X)

	b.step(core.NewInputFrame(), 16*time.Millisecond)
	assert.Equal(t, x-1, b.engine.Active().X)
}

func TestPressMovesOnTheSameFrame(t *testing.T) {
	b := newTestBoard(t, true)
	x := b.engine.Active().X

	b.step(core.NewInputFrame(core.ActionPressRight), 16*time.Millisecond)
	assert.Equal(t, x+1, b.engine.Active().X)
}
