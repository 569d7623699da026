package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

// DemoSession is a self-playing board for the screensaver. It is owned by
// whoever creates it; there is no shared demo state.
type DemoSession struct {
	variant engine.Variant
	vc      config.VariantConfig
	seeds   *rand.Rand
	ai      *RandomAI
	board   *board

	games     int
	bestLines int
}

// NewDemoSession builds a demo on variant v. All randomness, the AI's and
// the bag's, derives from seed.
func NewDemoSession(cfg config.BlocksConfig, v engine.Variant, seed int64) (*DemoSession, error) {
	seeds := rand.New(rand.NewSource(seed))
	d := &DemoSession{
		variant: v,
		vc:      cfg.Variant(v),
		seeds:   seeds,
		ai:      NewRandomAI(rand.New(rand.NewSource(seeds.Int63())), time.Duration(cfg.Demo.ThinkMs)*time.Millisecond),
	}
	if err := d.restart(); err != nil {
		return nil, err
	}
	return d, nil
}

// restart replaces the board with a freshly constructed one.
func (d *DemoSession) restart() error {
	b, err := newBoard(d.vc, d.variant, d.seeds.Int63())
	if err != nil {
		return err
	}
	d.board = b
	d.ai.Reset()
	d.games++
	return nil
}

// Step advances the demo by dt. After a game over the next step starts a new
// game. It returns the rows cleared.
func (d *DemoSession) Step(dt time.Duration) (int, error) {
	if d.board.over() {
		d.bestLines = max(d.bestLines, d.board.clock.Stats().Lines)
		if err := d.restart(); err != nil {
			return 0, err
		}
	}
	return d.board.step(d.ai.Next(dt), dt), nil
}

// Snapshot returns the current board.
func (d *DemoSession) Snapshot() BoardSnapshot {
	return d.board.snapshot()
}

// Games returns how many games the demo has started.
func (d *DemoSession) Games() int {
	return d.games
}

// BestLines returns the most lines cleared in any finished or running game.
func (d *DemoSession) BestLines() int {
	return max(d.bestLines, d.board.clock.Stats().Lines)
}

// Stats returns the tally of the running game.
func (d *DemoSession) Stats() engine.Stats {
	return d.board.clock.Stats()
}
