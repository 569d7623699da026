// Package multiplayer runs garbage battles between two sessions: lobbies with
// join codes, an authoritative match loop, and the event plumbing that keeps
// transports (SSH, Bubble Tea) out of game code.
package multiplayer

import "github.com/vovakirdan/blockfall/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a game match.
type MatchID string

// MatchMode defines who fills the second seat.
type MatchMode int

const (
	MatchModeSolo   MatchMode = iota // single board, no opponent
	MatchModeVsCPU                   // local player against the AI
	MatchModeOnline                  // two sessions through the coordinator
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeOnline:
		return "Online"
	default:
		return "Unknown"
	}
}

// PlayerStats is the per-seat tally reported at the end of a match.
type PlayerStats struct {
	Score        int
	Lines        int
	GarbageSent  int
	GarbageTaken int
}
