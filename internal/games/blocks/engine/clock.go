package engine

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTiming is returned for negative delays or a soft-drop factor below 1.
var ErrInvalidTiming = errors.New("invalid clock timing")

const (
	baseFallInterval = time.Second
	minFallInterval  = 30 * time.Millisecond
	minSoftInterval  = 3 * time.Millisecond
	fallDecay        = 0.8
)

// ClockConfig holds timing and progression settings.
type ClockConfig struct {
	Level            int           // starting level
	LinesPerLevel    int           // lines needed per level up, 0 keeps the level fixed
	MaxLevel         int           // cap for level progression, 0 means no cap
	LockDelay        time.Duration // grace period once grounded
	LockDelayEnabled bool          // false locks on the first blocked gravity step
	DAS              time.Duration // hold time before auto-repeat starts
	ARR              time.Duration // auto-repeat interval, 0 shifts to the wall
	SoftDropFactor   float64       // gravity speed-up while soft drop is held
}

// DefaultClockConfig returns the standard timings.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		LockDelay:        500 * time.Millisecond,
		LockDelayEnabled: true,
		DAS:              150 * time.Millisecond,
		ARR:              50 * time.Millisecond,
		SoftDropFactor:   10,
	}
}

// Validate checks the configuration for impossible values.
func (c ClockConfig) Validate() error {
	switch {
	case c.Level < 0 || c.LinesPerLevel < 0 || c.MaxLevel < 0:
		return fmt.Errorf("%w: negative level settings", ErrInvalidTiming)
	case c.LockDelay < 0 || c.DAS < 0 || c.ARR < 0:
		return fmt.Errorf("%w: negative delay", ErrInvalidTiming)
	case c.SoftDropFactor < 1:
		return fmt.Errorf("%w: soft drop factor %.2f < 1", ErrInvalidTiming, c.SoftDropFactor)
	}
	return nil
}

// FallInterval returns the gravity interval for a level.
func FallInterval(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	d := time.Duration(float64(baseFallInterval) * math.Pow(fallDecay, float64(level)))
	if d < minFallInterval {
		return minFallInterval
	}
	return d
}

// Stats is the running tally of a game.
type Stats struct {
	Score     int
	Lines     int
	Level     int
	Pieces    int
	LastClear int
}

// Clock advances an Engine in real time: gravity, lock delay, horizontal
// auto-repeat and pending garbage. It has the same single-writer contract as
// the Engine it drives.
type Clock struct {
	engine  *Engine
	cfg     ClockConfig
	garbage *GarbageQueue

	fallAcc     time.Duration
	left, right autoRepeat
	stats       Stats
}

// NewClock wraps e with the given timings.
func NewClock(e *Engine, cfg ClockConfig) (*Clock, error) {
	if e == nil {
		return nil, errors.New("clock: nil engine")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Clock{
		engine:  e,
		cfg:     cfg,
		garbage: NewGarbageQueue(),
	}
	c.stats.Level = c.levelFor(0)
	return c, nil
}

// Engine returns the driven engine.
func (c *Clock) Engine() *Engine { return c.engine }

// Garbage returns the queue other goroutines push attacks into.
func (c *Clock) Garbage() *GarbageQueue { return c.garbage }

// Stats returns the current tally.
func (c *Clock) Stats() Stats { return c.stats }

// Level returns the current level.
func (c *Clock) Level() int { return c.stats.Level }

// Interval returns the current gravity interval.
func (c *Clock) Interval(softDrop bool) time.Duration {
	d := FallInterval(c.stats.Level)
	if softDrop {
		d = time.Duration(float64(d) / c.cfg.SoftDropFactor)
		if d < minSoftInterval {
			d = minSoftInterval
		}
	}
	return d
}

// Update advances the simulation by dt and returns the rows cleared.
// Pending garbage is applied first, before any movement.
func (c *Clock) Update(dt time.Duration, softDrop bool) int {
	e := c.engine
	if e.GameOver() {
		return 0
	}
	if n := c.garbage.Drain(); n > 0 {
		e.AddGarbage(n)
	}

	limit := e.Board().Width()
	for i := c.left.step(dt, c.cfg.DAS, c.cfg.ARR, limit); i > 0; i-- {
		if !e.Move(-1) {
			break
		}
	}
	for i := c.right.step(dt, c.cfg.DAS, c.cfg.ARR, limit); i > 0; i-- {
		if !e.Move(1) {
			break
		}
	}

	interval := c.Interval(softDrop)
	cleared := 0
	c.fallAcc += dt
	for c.fallAcc >= interval && !e.GameOver() {
		c.fallAcc -= interval
		if e.SoftDrop() {
			continue
		}
		e.lockTimer += interval
		if !c.cfg.LockDelayEnabled || e.lockTimer >= c.cfg.LockDelay {
			cleared += c.lockAndClear()
			c.fallAcc = 0
			break
		}
	}
	return cleared
}

// Move shifts the active piece one column.
func (c *Clock) Move(dx int) bool { return c.engine.Move(dx) }

// Rotate rotates the active piece clockwise.
func (c *Clock) Rotate() bool { return c.engine.TryRotate() }

// SoftDrop moves the active piece down one row.
func (c *Clock) SoftDrop() bool { return c.engine.SoftDrop() }

// HardDrop drops, locks and clears in one step and returns the rows cleared.
func (c *Clock) HardDrop() int {
	if c.engine.GameOver() {
		return 0
	}
	c.engine.Drop()
	n := c.lockAndClear()
	c.fallAcc = 0
	return n
}

// PressLeft moves left once and starts holding left.
func (c *Clock) PressLeft() {
	c.left.press()
	c.engine.Move(-1)
}

// ReleaseLeft stops holding left.
func (c *Clock) ReleaseLeft() { c.left.release() }

// PressRight moves right once and starts holding right.
func (c *Clock) PressRight() {
	c.right.press()
	c.engine.Move(1)
}

// ReleaseRight stops holding right.
func (c *Clock) ReleaseRight() { c.right.release() }

func (c *Clock) lockAndClear() int {
	e := c.engine
	level := c.stats.Level
	e.LockPiece()
	n := e.ClearLines()
	e.lockTimer = 0

	c.stats.Pieces++
	c.stats.LastClear = n
	c.stats.Lines += n
	c.stats.Score += ScoreForClear(n, level)
	c.stats.Level = c.levelFor(c.stats.Lines)
	return n
}

func (c *Clock) levelFor(lines int) int {
	level := c.cfg.Level
	if c.cfg.LinesPerLevel > 0 {
		level += lines / c.cfg.LinesPerLevel
	}
	if c.cfg.MaxLevel > 0 && level > c.cfg.MaxLevel {
		level = c.cfg.MaxLevel
	}
	return level
}

// autoRepeat tracks one held direction. The press itself moves once;
// after DAS it repeats every ARR.
type autoRepeat struct {
	held    bool
	elapsed time.Duration
}

func (r *autoRepeat) press() {
	*r = autoRepeat{held: true}
}

func (r *autoRepeat) release() {
	*r = autoRepeat{}
}

func (r *autoRepeat) step(dt, das, arr time.Duration, limit int) int {
	if !r.held {
		return 0
	}
	before := repeatsAt(r.elapsed, das, arr, limit)
	r.elapsed += dt
	after := repeatsAt(r.elapsed, das, arr, limit)
	if arr <= 0 && r.elapsed >= das {
		return limit
	}
	return min(after-before, limit)
}

// repeatsAt counts the repeat moves due after holding for t.
func repeatsAt(t, das, arr time.Duration, limit int) int {
	if t < das {
		return 0
	}
	if arr <= 0 {
		return limit
	}
	return int((t-das)/arr) + 1
}
