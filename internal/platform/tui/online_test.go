package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

func newTestLobby(t *testing.T) (OnlineLobbyModel, *multiplayer.ChannelSession) {
	t.Helper()
	session := multiplayer.NewChannelSession("s1", "alice", 16)
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), nil, multiplayer.NewSessionRegistry())
	return NewOnlineLobbyModel("tetris", session, coord, 80, 24), session
}

func typeKeys(m OnlineLobbyModel, keys string) OnlineLobbyModel {
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(OnlineLobbyModel)
	}
	return m
}

func TestOnlineLobbyJoinCodeInput(t *testing.T) {
	m, _ := newTestLobby(t)
	m = typeKeys(m, "j")
	require.Equal(t, OnlineStateJoinEnterCode, m.State())

	m = typeKeys(m, "ab-c1?23xyz")
	assert.Equal(t, "ABC123", m.input, "only alphanumerics, capped at six")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(OnlineLobbyModel)
	assert.Equal(t, "ABC12", m.input)
	assert.Contains(t, m.View(), "[ ABC12_ ]")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(OnlineLobbyModel).BackToMenu())
}

func TestOnlineLobbyEvents(t *testing.T) {
	m, _ := newTestLobby(t)
	assert.Contains(t, m.View(), "Playing as alice")

	next, _ := m.Update(multiplayer.LobbyCreatedEvent{Code: "QWERTY"})
	m = next.(OnlineLobbyModel)
	assert.Equal(t, OnlineStateHostWaiting, m.State())
	assert.Equal(t, "QWERTY", m.LobbyCode())
	assert.Contains(t, m.View(), "[ QWERTY ]")

	next, _ = m.Update(multiplayer.LobbyErrorEvent{Message: "lobby closed"})
	m = next.(OnlineLobbyModel)
	assert.Equal(t, OnlineStateChooseMode, m.State())
	assert.Contains(t, m.View(), "Error: lobby closed")
}

func TestOnlineLobbyMatchFlow(t *testing.T) {
	m, _ := newTestLobby(t)
	next, _ := m.Update(multiplayer.LobbyJoinedEvent{OpponentName: "bob"})
	m = next.(OnlineLobbyModel)
	next, _ = m.Update(multiplayer.MatchStartedEvent{MatchID: "m1"})
	m = next.(OnlineLobbyModel)
	require.Equal(t, OnlineStateInMatch, m.State())
	assert.Contains(t, m.View(), "alice vs bob")

	next, _ = m.Update(multiplayer.MatchEndedEvent{MatchID: "m1", Reason: multiplayer.MatchEndReasonCancelled})
	m = next.(OnlineLobbyModel)
	assert.Equal(t, OnlineStateMatchEnded, m.State())
	assert.Contains(t, m.View(), "DRAW")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, next.(OnlineLobbyModel).BackToMenu())
}
