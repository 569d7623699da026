package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock(t *testing.T, cfg ClockConfig) (*Clock, *Engine) {
	t.Helper()
	e := newTestEngine(t, DefaultConfig(VariantTetromino), 1)
	withActive(e, 'O')
	c, err := NewClock(e, cfg)
	require.NoError(t, err)
	return c, e
}

func TestFallInterval(t *testing.T) {
	assert.Equal(t, time.Second, FallInterval(0))
	assert.Equal(t, 800*time.Millisecond, FallInterval(1))
	assert.Equal(t, 30*time.Millisecond, FallInterval(40))
	assert.Equal(t, time.Second, FallInterval(-3))
}

func TestClockConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClockConfig)
	}{
		{"negative level", func(c *ClockConfig) { c.Level = -1 }},
		{"negative lock delay", func(c *ClockConfig) { c.LockDelay = -time.Millisecond }},
		{"negative das", func(c *ClockConfig) { c.DAS = -time.Millisecond }},
		{"soft drop below one", func(c *ClockConfig) { c.SoftDropFactor = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultClockConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidTiming)
		})
	}
	assert.NoError(t, DefaultClockConfig().Validate())
}

func TestGravityMovesPieceDown(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())
	y := e.Active().Y

	c.Update(999*time.Millisecond, false)
	assert.Equal(t, y, e.Active().Y)

	c.Update(time.Millisecond, false)
	assert.Equal(t, y+1, e.Active().Y)
}

func TestSoftDropHeldAcceleratesGravity(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())
	assert.Equal(t, c.Interval(false)/10, c.Interval(true))

	y := e.Active().Y
	c.Update(100*time.Millisecond, true)
	assert.Equal(t, y+1, e.Active().Y)
}

func TestLockDelayGrace(t *testing.T) {
	cfg := DefaultClockConfig()
	cfg.Level = 10
	c, e := newTestClock(t, cfg)
	interval := c.Interval(false)
	require.Less(t, 4*interval, cfg.LockDelay)
	require.GreaterOrEqual(t, 5*interval, cfg.LockDelay)

	e.Drop()
	require.Equal(t, PhaseLocking, e.Phase())

	for i := 1; i <= 4; i++ {
		c.Update(interval, false)
		assert.Equal(t, time.Duration(i)*interval, e.LockTimer())
		assert.Zero(t, e.Board().FilledCount())
	}

	require.True(t, c.Move(-1))
	assert.Zero(t, e.LockTimer())

	for i := 0; i < 4; i++ {
		c.Update(interval, false)
	}
	assert.Zero(t, e.Board().FilledCount(), "move restarted the full window")

	c.Update(interval, false)
	assert.Equal(t, 4, e.Board().FilledCount())
	assert.Zero(t, e.LockTimer())
	assert.Equal(t, 1, c.Stats().Pieces)
}

func TestLockDelayDisabledLocksImmediately(t *testing.T) {
	cfg := DefaultClockConfig()
	cfg.LockDelayEnabled = false
	c, e := newTestClock(t, cfg)
	e.Drop()

	c.Update(c.Interval(false), false)
	assert.Equal(t, 4, e.Board().FilledCount())
}

func TestAutoRepeat(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())
	step := 10 * time.Millisecond
	x := e.Active().X

	c.PressRight()
	assert.Equal(t, x+1, e.Active().X, "press moves once immediately")

	for i := 0; i < 14; i++ {
		c.Update(step, false)
	}
	assert.Equal(t, x+1, e.Active().X, "no repeat before DAS")

	c.Update(step, false)
	assert.Equal(t, x+2, e.Active().X, "first repeat at DAS")

	for i := 0; i < 5; i++ {
		c.Update(step, false)
	}
	assert.Equal(t, x+3, e.Active().X, "repeat every ARR")

	c.ReleaseRight()
	for i := 0; i < 30; i++ {
		c.Update(step, false)
	}
	assert.Equal(t, x+3, e.Active().X, "release stops repeating")

	c.PressLeft()
	assert.Equal(t, x+2, e.Active().X, "press after release starts over")
}

func TestTapMovesOnce(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())
	x := e.Active().X

	c.PressLeft()
	c.ReleaseLeft()
	c.Update(10*time.Millisecond, false)
	assert.Equal(t, x-1, e.Active().X)

	for i := 0; i < 30; i++ {
		c.Update(10*time.Millisecond, false)
	}
	assert.Equal(t, x-1, e.Active().X)
}

func TestAutoRepeatZeroARRShiftsToWall(t *testing.T) {
	cfg := DefaultClockConfig()
	cfg.ARR = 0
	c, e := newTestClock(t, cfg)

	c.PressLeft()
	c.Update(time.Millisecond, false)
	c.Update(cfg.DAS, false)
	assert.Equal(t, -1, e.Active().X)
}

func TestHardDropScoresAndLevels(t *testing.T) {
	cfg := DefaultClockConfig()
	cfg.LinesPerLevel = 1
	c, e := newTestClock(t, cfg)
	fillRow(e.board, 19, 'I', 4, 5)
	fillRow(e.board, 18, 'I', 4, 5)

	cleared := c.HardDrop()
	assert.Equal(t, 2, cleared)

	s := c.Stats()
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 2, s.LastClear)
	assert.Zero(t, e.Board().FilledCount())
}

func TestGarbageDrainedAtTickBoundary(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Garbage().Push(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, c.Garbage().Pending())
	assert.Zero(t, e.Board().FilledCount(), "queued rows wait for the next update")

	c.Update(time.Millisecond, false)
	assert.Zero(t, c.Garbage().Pending())
	assert.Equal(t, 4*9, e.Board().FilledCount())
}

func TestUpdateAfterGameOverIsNoop(t *testing.T) {
	c, e := newTestClock(t, DefaultClockConfig())
	for y := 0; y < 20; y++ {
		fillRow(e.board, y, 'X', 0)
	}
	e.LockPiece()
	require.True(t, e.GameOver())

	before := e.Board().Rows()
	c.Garbage().Push(3)
	assert.Zero(t, c.Update(time.Second, true))
	assert.Zero(t, c.HardDrop())
	assert.Equal(t, before, e.Board().Rows())
}
