package blocks

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// Versus is a garbage battle: two boards on the same rules, where clearing
// rows sends garbage to the opponent. The match loop owns StepMulti;
// QueueGarbage may be called from any goroutine.
type Versus struct {
	variant engine.Variant
	cfg     config.BlocksConfig
	accept  config.GarbageAccept

	seeds  *rand.Rand
	boards [2]*board
	dt     time.Duration
	tick   uint64

	sent  [2]int
	taken [2]atomic.Int64
	route func(from, to multiplayer.PlayerID, n int)

	over   bool
	winner multiplayer.PlayerID
}

// NewVersus creates a battle on variant v. Call Reset before stepping.
func NewVersus(v engine.Variant, cfg config.BlocksConfig) *Versus {
	return &Versus{variant: v, cfg: cfg, accept: cfg.Garbage.Accept}
}

// NewOnlineGame is the multiplayer.GameFactory for garbage battles.
func NewOnlineGame(gameID string, rc core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	v, err := engine.ParseVariant(gameID)
	if err != nil {
		return nil, fmt.Errorf("blocks: no online mode for %q: %w", gameID, err)
	}
	vs := NewVersus(v, loadConfig())
	if err := vs.reset(rc); err != nil {
		return nil, err
	}
	return vs, nil
}

func seat(p multiplayer.PlayerID) int {
	if p == multiplayer.Player2 {
		return 1
	}
	return 0
}

// Reset starts a fresh battle. Both boards get their own seed drawn from
// cfg.Seed, so a battle is reproducible from a single seed.
func (v *Versus) Reset(rc core.RuntimeConfig) {
	if err := v.reset(rc); err != nil {
		// The embedded defaults always construct.
		v.cfg = config.DefaultBlocksConfig()
		v.accept = v.cfg.Garbage.Accept
		_ = v.reset(rc)
	}
}

func (v *Versus) reset(rc core.RuntimeConfig) error {
	v.seeds = rand.New(rand.NewSource(rc.Seed))
	v.dt = dtFor(rc)
	vc := variantSettings(v.cfg, v.variant)
	for i := range v.boards {
		b, err := newBoard(vc, v.variant, v.seeds.Int63())
		if err != nil {
			return err
		}
		v.boards[i] = b
		v.sent[i] = 0
		v.taken[i].Store(0)
	}
	v.tick = 0
	v.over = false
	v.winner = 0
	return nil
}

// QueueGarbage offers n rows from one seat to another and reports whether
// the accept policy let them through.
func (v *Versus) QueueGarbage(from, to multiplayer.PlayerID, n int) bool {
	if n <= 0 || !v.accepts(from, to) {
		return false
	}
	v.boards[seat(to)].clock.Garbage().Push(n)
	v.taken[seat(to)].Add(int64(n))
	return true
}

func (v *Versus) accepts(from, to multiplayer.PlayerID) bool {
	if from == to || (to != multiplayer.Player1 && to != multiplayer.Player2) {
		return false
	}
	switch v.accept {
	case config.GarbageOff:
		return false
	case config.GarbagePreferred:
		return from == to.Opponent()
	}
	return true
}

// RouteAttacks sends attacks through send instead of queueing them on the
// opponent's board. Call it before the first StepMulti.
func (v *Versus) RouteAttacks(send func(from, to multiplayer.PlayerID, n int)) {
	v.route = send
}

func (v *Versus) attack(from multiplayer.PlayerID, n int) {
	to := from.Opponent()
	if v.route == nil {
		if v.QueueGarbage(from, to, n) {
			v.sent[seat(from)] += n
		}
		return
	}
	if v.accepts(from, to) {
		v.sent[seat(from)] += n
		v.route(from, to, n)
	}
}

// StepMulti advances both boards by one tick and routes attacks.
func (v *Versus) StepMulti(in core.MultiInputFrame) core.StepResult {
	var cleared [2]int
	if !v.over {
		for i, p := range []multiplayer.PlayerID{multiplayer.Player1, multiplayer.Player2} {
			cleared[i] = v.boards[i].step(in.Player(p), v.dt)
		}
		for i, p := range []multiplayer.PlayerID{multiplayer.Player1, multiplayer.Player2} {
			if n := engine.AttackForClear(cleared[i]); n > 0 {
				v.attack(p, n)
			}
		}
		v.tick++
		v.checkOver()
	}
	return core.StepResult{State: v.state(multiplayer.Player1), Cleared: cleared[0]}
}

func (v *Versus) checkOver() {
	o1, o2 := v.boards[0].over(), v.boards[1].over()
	if !o1 && !o2 {
		return
	}
	v.over = true
	switch {
	case o1 && o2:
		v.winner = 0
	case o1:
		v.winner = multiplayer.Player2
	default:
		v.winner = multiplayer.Player1
	}
}

func (v *Versus) state(p multiplayer.PlayerID) core.GameState {
	s := v.boards[seat(p)].clock.Stats()
	return core.GameState{
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		GameOver: v.over,
	}
}

// Snapshot returns both boards.
func (v *Versus) Snapshot() multiplayer.GameSnapshot {
	return v.snapshot()
}

func (v *Versus) snapshot() VersusSnapshot {
	return VersusSnapshot{
		Tick:     v.tick,
		Boards:   [2]BoardSnapshot{v.boards[0].snapshot(), v.boards[1].snapshot()},
		Stats:    [2]multiplayer.PlayerStats{v.Stats(multiplayer.Player1), v.Stats(multiplayer.Player2)},
		GameOver: v.over,
		Winner:   int(v.winner),
	}
}

// IsGameOver reports whether a board has topped out.
func (v *Versus) IsGameOver() bool {
	return v.over
}

// Winner returns the surviving player, or 0 while running or on a draw.
func (v *Versus) Winner() multiplayer.PlayerID {
	return v.winner
}

// Stats returns the tally for player p.
func (v *Versus) Stats(p multiplayer.PlayerID) multiplayer.PlayerStats {
	i := seat(p)
	s := v.boards[i].clock.Stats()
	return multiplayer.PlayerStats{
		Score:        s.Score,
		Lines:        s.Lines,
		GarbageSent:  v.sent[i],
		GarbageTaken: int(v.taken[i].Load()),
	}
}

var (
	_ multiplayer.OnlineGame   = (*Versus)(nil)
	_ multiplayer.AttackRouter = (*Versus)(nil)
)
