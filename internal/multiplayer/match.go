package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// OnlineGame is a two-board game the match loop can drive.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances both boards by one tick.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot is broadcast to both players after every tick.
	Snapshot() GameSnapshot

	// QueueGarbage offers n rows sent by from (0 if the sender is not a seat)
	// to player to, subject to the game's accept policy. It may be called from
	// any goroutine; accepted rows land at the start of the next tick.
	QueueGarbage(from, to PlayerID, n int) bool

	IsGameOver() bool

	// Winner is Player1, Player2 or 0 for a draw or a game still running.
	Winner() PlayerID

	Stats(p PlayerID) PlayerStats
}

// AttackRouter is implemented by games that hand their attacks to the
// coordinator instead of queueing them directly. The coordinator delivers
// them back through QueueGarbage.
type AttackRouter interface {
	RouteAttacks(send func(from, to PlayerID, n int))
}

// MatchResult is how a match ended.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Stats1  PlayerStats
	Stats2  PlayerStats
	Ticks   uint64
}

type seatInput struct {
	player PlayerID
	frame  core.InputFrame
}

// OnlineMatch runs the authoritative loop for one versus game. The game is
// only touched from Run, except for QueueGarbage.
type OnlineMatch struct {
	id       MatchID
	gameID   string
	game     OnlineGame
	seats    [2]SessionHandle
	tickRate int
	tick     uint64

	inputs  chan seatInput
	leaving chan SessionID
	cancel  chan struct{}
	once    sync.Once
}

// NewOnlineMatch seats p1 and p2 at a game. A non-positive tickRate means
// 60 Hz.
func NewOnlineMatch(id MatchID, gameID string, game OnlineGame, p1, p2 SessionHandle, tickRate int) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &OnlineMatch{
		id:       id,
		gameID:   gameID,
		game:     game,
		seats:    [2]SessionHandle{p1, p2},
		tickRate: tickRate,
		inputs:   make(chan seatInput, 64),
		leaving:  make(chan SessionID, 2),
		cancel:   make(chan struct{}),
	}
}

func (m *OnlineMatch) ID() MatchID { return m.id }

func (m *OnlineMatch) GameID() string { return m.gameID }

// Session returns the handle seated at p, or nil.
func (m *OnlineMatch) Session(p PlayerID) SessionHandle {
	if p != Player1 && p != Player2 {
		return nil
	}
	return m.seats[p-1]
}

// SendInput queues a frame for the next tick. Frames arriving between two
// ticks are merged. It never blocks; input is dropped when the queue is full.
func (m *OnlineMatch) SendInput(player PlayerID, frame core.InputFrame) {
	select {
	case m.inputs <- seatInput{player: player, frame: frame}:
	default:
	}
}

// SendGarbage forwards an attack to the game's thread-safe queue and reports
// whether it was accepted.
func (m *OnlineMatch) SendGarbage(from, to PlayerID, n int) bool {
	if n <= 0 || from == to || m.Session(to) == nil {
		return false
	}
	return m.game.QueueGarbage(from, to, n)
}

// PlayerDisconnected forfeits the match for the given session.
func (m *OnlineMatch) PlayerDisconnected(id SessionID) {
	select {
	case m.leaving <- id:
	default:
	}
}

// Cancel ends the match without a winner.
func (m *OnlineMatch) Cancel() {
	m.once.Do(func() { close(m.cancel) })
}

// Run ticks the game until it ends, a player leaves or the match is
// cancelled, then reports the result to onComplete.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go m.watchSessions(stopWatch)

	result := m.loop(ticker.C)
	if onComplete != nil {
		onComplete(result)
	}
}

func (m *OnlineMatch) loop(ticks <-chan time.Time) MatchResult {
	pending := [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()}
	for {
		select {
		case in := <-m.inputs:
			if m.Session(in.player) != nil {
				pending[in.player-1].Merge(in.frame)
			}
		case <-ticks:
			frame := core.NewMultiInputFrame()
			frame.SetPlayer(Player1, pending[0])
			frame.SetPlayer(Player2, pending[1])
			pending = [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()}

			m.game.StepMulti(frame)
			m.tick++
			m.broadcast(SnapshotEvent{MatchID: m.id, Tick: m.tick, Snapshot: m.game.Snapshot()})
			if m.game.IsGameOver() {
				return m.result(MatchEndReasonCompleted, m.game.Winner())
			}
		case id := <-m.leaving:
			winner := Player1
			if id == m.seats[0].ID() {
				winner = Player2
			}
			return m.result(MatchEndReasonDisconnect, winner)
		case <-m.cancel:
			return m.result(MatchEndReasonCancelled, 0)
		}
	}
}

func (m *OnlineMatch) broadcast(evt SessionEvent) {
	for _, s := range m.seats {
		s.Send(evt)
	}
}

func (m *OnlineMatch) result(reason MatchEndReason, winner PlayerID) MatchResult {
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Stats1:  m.game.Stats(Player1),
		Stats2:  m.game.Stats(Player2),
		Ticks:   m.tick,
	}
}

// watchSessions turns a closed transport into a forfeit.
func (m *OnlineMatch) watchSessions(stop <-chan struct{}) {
	select {
	case <-m.seats[0].Done():
		m.PlayerDisconnected(m.seats[0].ID())
	case <-m.seats[1].Done():
		m.PlayerDisconnected(m.seats[1].ID())
	case <-stop:
	}
}
