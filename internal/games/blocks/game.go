package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Game is a single-player board.
type Game struct {
	variant engine.Variant
	runtime core.RuntimeConfig
	seeds   *rand.Rand
	board   *board
	dt      time.Duration
	paused  bool
	err     error
}

// NewTetris creates the tetromino game on the configured board.
func NewTetris() *Game {
	return &Game{variant: engine.VariantTetromino}
}

// NewTritris creates the triomino game on the configured board.
func NewTritris() *Game {
	return &Game{variant: engine.VariantTriomino}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == engine.VariantTriomino {
		return "tritris"
	}
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == engine.VariantTriomino {
		return "Tritris"
	}
	return "Tetris"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.variant == engine.VariantTriomino {
		return "Three-cell pieces on a tiny 4x5 well"
	}
	return "Classic seven tetrominoes, SRS rotation"
}

// Reset starts a new game. Restarts within the session draw fresh seeds from
// cfg.Seed, so a whole session is reproducible.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.dt = dtFor(cfg)
	g.restart()
}

// restart recreates the engine from scratch.
func (g *Game) restart() {
	g.paused = false
	g.board, g.err = newBoard(variantSettings(loadConfig(), g.variant), g.variant, g.seeds.Int63())
}

// Err returns the construction error, if the configured board was rejected.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) && (g.board.over() || g.paused) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.board.over() {
		g.paused = !g.paused
	}
	if g.paused || g.board.over() {
		return core.StepResult{State: g.State()}
	}
	cleared := g.board.step(in, g.dt)
	return core.StepResult{State: g.State(), Cleared: cleared}
}

// Snapshot returns the renderable board state.
func (g *Game) Snapshot() BoardSnapshot {
	if g.board == nil {
		return BoardSnapshot{}
	}
	return g.board.snapshot()
}

// Render draws the board and side panel.
func (g *Game) Render(dst *core.Screen) {
	if g.err != nil {
		drawMessage(dst, "CONFIG ERROR", g.err.Error())
		return
	}
	RenderSolo(dst, g.Snapshot(), g.Title(), g.paused)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	s := g.board.clock.Stats()
	return core.GameState{
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		GameOver: g.board.over(),
		Paused:   g.paused,
	}
}

// VsCPU is a local garbage battle against the random AI.
type VsCPU struct {
	versus  *Versus
	ai      *RandomAI
	dt      time.Duration
	runtime core.RuntimeConfig
	paused  bool
}

// NewVsCPU creates the local battle.
func NewVsCPU() *VsCPU {
	return &VsCPU{}
}

// ID returns the game identifier.
func (g *VsCPU) ID() string { return "tetris_vs_cpu" }

// Title returns the display name.
func (g *VsCPU) Title() string { return "Tetris vs CPU" }

// Description returns a one-line summary for listings.
func (g *VsCPU) Description() string {
	return "Garbage battle: clear rows to bury the AI"
}

// Reset starts a new battle.
func (g *VsCPU) Reset(cfg core.RuntimeConfig) {
	bc := loadConfig()
	g.versus = NewVersus(engine.VariantTetromino, bc)
	g.versus.Reset(cfg)
	g.runtime = cfg
	g.dt = dtFor(cfg)
	g.ai = NewRandomAI(rand.New(rand.NewSource(cfg.Seed^0x5eed)), time.Duration(bc.Demo.ThinkMs)*time.Millisecond)
	g.paused = false
}

// Step advances both boards; Player2 is driven by the AI.
func (g *VsCPU) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && (g.versus.IsGameOver() || g.paused) {
		next := g.runtime
		next.Seed++
		g.Reset(next)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.versus.IsGameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(multiplayer.Player1, in)
	multi.SetPlayer(multiplayer.Player2, g.ai.Next(g.dt))
	res := g.versus.StepMulti(multi)
	res.State.Paused = g.paused
	return res
}

// Render draws both boards.
func (g *VsCPU) Render(dst *core.Screen) {
	RenderVersus(dst, g.versus.snapshot(), [2]string{"Player", "CPU"}, multiplayer.Player1)
	if g.paused {
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

// State reports the local player's tally.
func (g *VsCPU) State() core.GameState {
	s := g.versus.state(multiplayer.Player1)
	s.Paused = g.paused
	return s
}

// Versus exposes the underlying battle.
func (g *VsCPU) Versus() *Versus {
	return g.versus
}

// Demo is the screensaver as a registry game. Only pause is honoured; the
// AI ignores every other action.
type Demo struct {
	session *DemoSession
	dt      time.Duration
	paused  bool
	err     error
}

// NewDemo creates the screensaver game.
func NewDemo() *Demo {
	return &Demo{}
}

// ID returns the game identifier.
func (d *Demo) ID() string { return "tetris_demo" }

// Title returns the display name.
func (d *Demo) Title() string { return "Tetris Demo" }

// Description returns a one-line summary for listings.
func (d *Demo) Description() string {
	return "Screensaver: the AI plays forever"
}

// Reset builds a new demo session.
func (d *Demo) Reset(cfg core.RuntimeConfig) {
	d.dt = dtFor(cfg)
	d.paused = false
	d.session, d.err = NewDemoSession(loadConfig(), engine.VariantTetromino, cfg.Seed)
}

// Step advances the AI by one tick.
func (d *Demo) Step(in core.InputFrame) core.StepResult {
	if d.err != nil {
		return core.StepResult{}
	}
	if in.Has(core.ActionPause) {
		d.paused = !d.paused
	}
	if d.paused {
		return core.StepResult{State: d.State()}
	}
	var cleared int
	cleared, d.err = d.session.Step(d.dt)
	return core.StepResult{State: d.State(), Cleared: cleared}
}

// Render draws the AI's board.
func (d *Demo) Render(dst *core.Screen) {
	if d.err != nil {
		drawMessage(dst, "DEMO ERROR", d.err.Error())
		return
	}
	RenderSolo(dst, d.session.Snapshot(), "Demo", d.paused)
}

// State returns the running game's tally. A demo never ends on its own.
func (d *Demo) State() core.GameState {
	if d.session == nil {
		return core.GameState{}
	}
	s := d.session.Stats()
	return core.GameState{Score: s.Score, Lines: s.Lines, Level: s.Level, Paused: d.paused}
}

// Session exposes the underlying demo session.
func (d *Demo) Session() *DemoSession {
	return d.session
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return NewTetris()
	})
	registry.Register("tritris", func() registry.Game {
		return NewTritris()
	})
	registry.Register("tetris_vs_cpu", func() registry.Game {
		return NewVsCPU()
	})
	registry.Register("tetris_demo", func() registry.Game {
		return NewDemo()
	})
}
