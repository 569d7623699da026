package multiplayer

import (
	"crypto/rand"
	"strings"
	"time"
)

// Join codes are six characters of the RFC 4648 base32 alphabet.
const (
	joinCodeLen      = 6
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
)

// lobbyError is shown to the player verbatim.
type lobbyError string

func (e lobbyError) Error() string { return string(e) }

const (
	errAlreadyWaiting lobbyError = "Already in a lobby"
	errAlreadyPlaying lobbyError = "Already in a match"
	errLobbyNotFound  lobbyError = "Lobby not found"
	errOwnLobby       lobbyError = "Cannot join your own lobby"
)

// Lobby is a hosted game waiting for its second player.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	CreatedAt time.Time
}

// lobbyTable indexes open lobbies by code and by host. It is not safe for
// concurrent use; the coordinator guards it.
type lobbyTable struct {
	byCode map[string]*Lobby
	byHost map[SessionID]string
}

func newLobbyTable() lobbyTable {
	return lobbyTable{
		byCode: make(map[string]*Lobby),
		byHost: make(map[SessionID]string),
	}
}

func (t lobbyTable) hosting(id SessionID) bool {
	_, ok := t.byHost[id]
	return ok
}

// open registers a new lobby hosted by host under a fresh code.
func (t lobbyTable) open(host SessionHandle, gameID string, now time.Time) (*Lobby, error) {
	if t.hosting(host.ID()) {
		return nil, errAlreadyWaiting
	}
	code := generateJoinCode()
	for _, taken := t.byCode[code]; taken; _, taken = t.byCode[code] {
		code = generateJoinCode()
	}
	l := &Lobby{Code: code, GameID: gameID, Host: host, CreatedAt: now}
	t.byCode[code] = l
	t.byHost[host.ID()] = code
	return l, nil
}

// claim removes and returns the lobby a joiner asked for. Codes match
// case-insensitively.
func (t lobbyTable) claim(code string, joiner SessionID) (*Lobby, error) {
	l, ok := t.byCode[strings.ToUpper(code)]
	switch {
	case !ok:
		return nil, errLobbyNotFound
	case l.Host.ID() == joiner:
		return nil, errOwnLobby
	case t.hosting(joiner):
		return nil, errAlreadyWaiting
	}
	t.remove(l)
	return l, nil
}

// closeHosted drops the lobby hosted by id, if any.
func (t lobbyTable) closeHosted(id SessionID) (*Lobby, bool) {
	code, ok := t.byHost[id]
	if !ok {
		return nil, false
	}
	l := t.byCode[code]
	t.remove(l)
	return l, true
}

// expire drops and returns lobbies older than ttl.
func (t lobbyTable) expire(now time.Time, ttl time.Duration) []*Lobby {
	var out []*Lobby
	for _, l := range t.byCode {
		if now.Sub(l.CreatedAt) > ttl {
			out = append(out, l)
		}
	}
	for _, l := range out {
		t.remove(l)
	}
	return out
}

func (t lobbyTable) remove(l *Lobby) {
	delete(t.byCode, l.Code)
	delete(t.byHost, l.Host.ID())
}

func (t lobbyTable) len() int { return len(t.byCode) }

// generateJoinCode returns a random six-character code.
func generateJoinCode() string {
	var buf [joinCodeLen]byte
	if _, err := rand.Read(buf[:]); err != nil {
		n := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (5 * i))
		}
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf[:])
}
