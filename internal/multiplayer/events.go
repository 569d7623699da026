package multiplayer

import "github.com/vovakirdan/blockfall/internal/core"

// SessionEvent flows from the coordinator or a match to one session.
type SessionEvent interface {
	sessionEvent()
}

// CoordinatorMessage flows from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// GameSnapshot is the game-specific state published every tick.
type GameSnapshot interface {
	IsGameSnapshot()
}

type (
	// LobbyCreatedEvent answers CreateLobbyMsg with the join code to share.
	LobbyCreatedEvent struct {
		Code   string
		GameID string
	}

	// LobbyErrorEvent reports a refused lobby request or an expired lobby.
	LobbyErrorEvent struct {
		Message string
	}

	// LobbyJoinedEvent tells each player who the opponent is and which
	// seat they hold. It precedes MatchStartedEvent.
	LobbyJoinedEvent struct {
		Code         string
		Side         PlayerID
		OpponentID   SessionID
		OpponentName string
	}

	MatchStartedEvent struct {
		MatchID MatchID
		Side    PlayerID
		Code    string
	}

	SnapshotEvent struct {
		MatchID  MatchID
		Tick     uint64
		Snapshot GameSnapshot
	}

	// MatchEndedEvent is the final event of a match. Winner is zero for a
	// draw.
	MatchEndedEvent struct {
		MatchID MatchID
		Reason  MatchEndReason
		Winner  PlayerID
		Stats1  PlayerStats
		Stats2  PlayerStats
	}
)

func (LobbyCreatedEvent) sessionEvent() {}
func (LobbyErrorEvent) sessionEvent()   {}
func (LobbyJoinedEvent) sessionEvent()  {}
func (MatchStartedEvent) sessionEvent() {}
func (SnapshotEvent) sessionEvent()     {}
func (MatchEndedEvent) sessionEvent()   {}

// MatchEndReason says why a match stopped.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // a board topped out
	MatchEndReasonDisconnect                       // a player left
	MatchEndReasonCancelled                        // the server stopped the match
)

var endReasonNames = [...]struct{ key, text string }{
	MatchEndReasonCompleted:  {"completed", "Match completed"},
	MatchEndReasonDisconnect: {"disconnect", "Opponent disconnected"},
	MatchEndReasonCancelled:  {"cancelled", "Match cancelled"},
}

// String is the key stored with match results.
func (r MatchEndReason) String() string {
	if r < 0 || int(r) >= len(endReasonNames) {
		return "unknown"
	}
	return endReasonNames[r].key
}

// Describe is the sentence shown on end-of-match screens.
func (r MatchEndReason) Describe() string {
	if r < 0 || int(r) >= len(endReasonNames) {
		return "Unknown"
	}
	return endReasonNames[r].text
}

type (
	CreateLobbyMsg struct {
		SessionID SessionID
		GameID    string
	}

	// JoinLobbyMsg claims the lobby with Code and starts its match.
	JoinLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveLobbyMsg closes the lobby the session is hosting.
	LeaveLobbyMsg struct {
		SessionID SessionID
	}

	// LeaveMatchMsg forfeits a running match.
	LeaveMatchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	PlayerInputMsg struct {
		MatchID MatchID
		Player  PlayerID
		Input   core.InputFrame
	}

	// GarbageMsg delivers an attack of Lines rows from one seat to the
	// other, the in-process form of a "GARBAGE from to lines" message.
	GarbageMsg struct {
		MatchID MatchID
		From    PlayerID
		To      PlayerID
		Lines   int
	}

	SessionDisconnectedMsg struct {
		SessionID SessionID
	}
)

func (CreateLobbyMsg) coordinatorMessage()         {}
func (JoinLobbyMsg) coordinatorMessage()           {}
func (LeaveLobbyMsg) coordinatorMessage()          {}
func (LeaveMatchMsg) coordinatorMessage()          {}
func (PlayerInputMsg) coordinatorMessage()         {}
func (GarbageMsg) coordinatorMessage()             {}
func (SessionDisconnectedMsg) coordinatorMessage() {}
