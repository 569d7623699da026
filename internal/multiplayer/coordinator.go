package multiplayer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
)

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // how long a lobby waits for a joiner
	TickRate      int           // match tick rate in Hz
	CleanupPeriod time.Duration // how often expired lobbies are swept
}

// DefaultCoordinatorConfig returns the settings used by the SSH server.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      60,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates the versus game a match runs.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver persists finished matches. The storage package satisfies
// it without the coordinator importing storage.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData is a finished match ready for persistence. Player and
// winner fields hold display names.
type MatchResultData struct {
	MatchID   string
	GameID    string
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Lines1    int
	Lines2    int
	Winner    string
	EndReason string
	Seconds   int
}

// Coordinator pairs sessions through lobbies and owns the running matches.
// All requests arrive through Send and are handled on one goroutine.
type Coordinator struct {
	config   CoordinatorConfig
	factory  GameFactory
	sessions *SessionRegistry
	saver    MatchResultSaver
	logger   *log.Logger

	mu       sync.RWMutex
	lobbies  lobbyTable
	matches  map[MatchID]*OnlineMatch
	inMatch  map[SessionID]MatchID
	inbox    chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a coordinator. Call Start before sending to it.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	return &Coordinator{
		config:   cfg,
		factory:  factory,
		sessions: sessions,
		logger:   log.New(io.Discard),
		lobbies:  newLobbyTable(),
		matches:  make(map[MatchID]*OnlineMatch),
		inMatch:  make(map[SessionID]MatchID),
		inbox:    make(chan CoordinatorMessage, 256),
		done:     make(chan struct{}),
	}
}

// SetLogger routes lobby and match lifecycle logs to l.
func (c *Coordinator) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l.WithPrefix("coordinator")
	}
}

// SetResultSaver enables persistence of finished matches.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.saver = saver
}

// Start launches the message loop and the lobby sweeper.
func (c *Coordinator) Start() {
	go c.loop()
}

// Stop shuts the coordinator down and cancels running matches.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.RLock()
		for _, m := range c.matches {
			m.Cancel()
		}
		c.mu.RUnlock()
	})
}

// Send queues msg for the coordinator goroutine. It blocks only while the
// inbox is full and returns immediately after Stop.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.inbox <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) loop() {
	sweep := time.NewTicker(c.config.CleanupPeriod)
	defer sweep.Stop()

	for {
		select {
		case msg := <-c.inbox:
			c.dispatch(msg)
		case now := <-sweep.C:
			c.expireLobbies(now)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) dispatch(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.createLobby(m)
	case JoinLobbyMsg:
		c.joinLobby(m)
	case LeaveLobbyMsg:
		c.leaveLobby(m.SessionID)
	case LeaveMatchMsg:
		if match := c.match(m.MatchID); match != nil {
			match.PlayerDisconnected(m.SessionID)
		}
	case PlayerInputMsg:
		if match := c.match(m.MatchID); match != nil {
			match.SendInput(m.Player, m.Input)
		}
	case GarbageMsg:
		// Runs concurrently with the match loop; the receiving board's
		// garbage queue makes that safe.
		if match := c.match(m.MatchID); match != nil && !match.SendGarbage(m.From, m.To, m.Lines) {
			c.logger.Debug("garbage rejected", "match", m.MatchID, "from", m.From, "to", m.To, "lines", m.Lines)
		}
	case SessionDisconnectedMsg:
		c.leaveLobby(m.SessionID)
		c.mu.RLock()
		id, ok := c.inMatch[m.SessionID]
		c.mu.RUnlock()
		if match := c.match(id); ok && match != nil {
			match.PlayerDisconnected(m.SessionID)
		}
	}
}

func (c *Coordinator) match(id MatchID) *OnlineMatch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matches[id]
}

func (c *Coordinator) createLobby(msg CreateLobbyMsg) {
	host, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	var lobby *Lobby
	err := c.playingLocked(msg.SessionID)
	if err == nil {
		lobby, err = c.lobbies.open(host, msg.GameID, time.Now())
	}
	c.mu.Unlock()
	if err != nil {
		host.Send(LobbyErrorEvent{Message: err.Error()})
		return
	}

	c.logger.Info("lobby created", "code", lobby.Code, "game", msg.GameID, "host", host.Name())
	host.Send(LobbyCreatedEvent{Code: lobby.Code, GameID: msg.GameID})
}

func (c *Coordinator) joinLobby(msg JoinLobbyMsg) {
	joiner, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.playingLocked(msg.SessionID)
	var lobby *Lobby
	if err == nil {
		lobby, err = c.lobbies.claim(msg.Code, msg.SessionID)
	}
	if err != nil {
		joiner.Send(LobbyErrorEvent{Message: err.Error()})
		return
	}

	host := lobby.Host
	host.Send(LobbyJoinedEvent{Code: lobby.Code, Side: Player1, OpponentID: joiner.ID(), OpponentName: joiner.Name()})
	joiner.Send(LobbyJoinedEvent{Code: lobby.Code, Side: Player2, OpponentID: host.ID(), OpponentName: host.Name()})

	c.startMatchLocked(lobby, joiner)
}

func (c *Coordinator) playingLocked(id SessionID) error {
	if _, ok := c.inMatch[id]; ok {
		return errAlreadyPlaying
	}
	return nil
}

// startMatchLocked builds the game for a claimed lobby and runs it. c.mu
// must be held.
func (c *Coordinator) startMatchLocked(lobby *Lobby, joiner SessionHandle) {
	host := lobby.Host
	id := MatchID(fmt.Sprintf("match-%s-%d", lobby.Code, time.Now().UnixNano()))

	game, err := c.factory(lobby.GameID, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
	})
	if err != nil {
		c.logger.Error("failed to create game", "game", lobby.GameID, "err", err)
		failed := LobbyErrorEvent{Message: "Failed to create game"}
		host.Send(failed)
		joiner.Send(failed)
		return
	}

	if r, ok := game.(AttackRouter); ok {
		r.RouteAttacks(func(from, to PlayerID, n int) {
			c.Send(GarbageMsg{MatchID: id, From: from, To: to, Lines: n})
		})
	}

	match := NewOnlineMatch(id, lobby.GameID, game, host, joiner, c.config.TickRate)
	c.matches[id] = match
	c.inMatch[host.ID()] = id
	c.inMatch[joiner.ID()] = id

	host.Send(MatchStartedEvent{MatchID: id, Side: Player1, Code: lobby.Code})
	joiner.Send(MatchStartedEvent{MatchID: id, Side: Player2, Code: lobby.Code})
	c.logger.Info("match started", "match", id, "game", lobby.GameID, "p1", host.Name(), "p2", joiner.Name())

	go match.Run(func(result MatchResult) { c.finishMatch(id, result) })
}

func (c *Coordinator) finishMatch(id MatchID, result MatchResult) {
	c.mu.Lock()
	match, ok := c.matches[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	p1, p2 := match.Session(Player1), match.Session(Player2)
	delete(c.matches, id)
	delete(c.inMatch, p1.ID())
	delete(c.inMatch, p2.ID())
	c.mu.Unlock()

	c.logger.Info("match ended", "match", id, "reason", result.Reason,
		"winner", result.Winner, "score1", result.Stats1.Score, "score2", result.Stats2.Score)

	if c.saver != nil {
		go c.save(c.resultData(match, result))
	}

	ended := MatchEndedEvent{
		MatchID: id,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Stats1:  result.Stats1,
		Stats2:  result.Stats2,
	}
	p1.Send(ended)
	p2.Send(ended)
}

func (c *Coordinator) resultData(match *OnlineMatch, result MatchResult) MatchResultData {
	var winner string
	if w := match.Session(result.Winner); w != nil {
		winner = w.Name()
	}
	rate := uint64(max(1, c.config.TickRate)) //nolint:gosec // clamped positive
	return MatchResultData{
		MatchID:   string(match.ID()),
		GameID:    match.GameID(),
		Player1:   match.Session(Player1).Name(),
		Player2:   match.Session(Player2).Name(),
		Score1:    result.Stats1.Score,
		Score2:    result.Stats2.Score,
		Lines1:    result.Stats1.Lines,
		Lines2:    result.Stats2.Lines,
		Winner:    winner,
		EndReason: result.Reason.String(),
		Seconds:   int(result.Ticks / rate), //nolint:gosec // seconds fit in int
	}
}

func (c *Coordinator) save(data MatchResultData) {
	if err := c.saver.SaveMatchResult(data); err != nil {
		c.logger.Warn("failed to save match result", "match", data.MatchID, "err", err)
	}
}

// leaveLobby closes the lobby hosted by id, if there is one.
func (c *Coordinator) leaveLobby(id SessionID) {
	c.mu.Lock()
	lobby, ok := c.lobbies.closeHosted(id)
	c.mu.Unlock()
	if ok {
		c.logger.Info("lobby closed", "code", lobby.Code)
	}
}

func (c *Coordinator) expireLobbies(now time.Time) {
	c.mu.Lock()
	expired := c.lobbies.expire(now, c.config.LobbyTimeout)
	c.mu.Unlock()

	for _, l := range expired {
		c.logger.Debug("lobby expired", "code", l.Code)
		l.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
	}
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lobbies.len()
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
