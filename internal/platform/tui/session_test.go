package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

func newTestSession(t *testing.T, coordinator *multiplayer.Coordinator) SessionModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 1}
	session := multiplayer.NewChannelSession("alice-1", "alice", 16)
	return NewSessionModel(nil, cfg, session, coordinator)
}

func update(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestMenuListsRegisteredGames(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, false)
	ids := make([]string, 0, len(m.items))
	for _, item := range m.items {
		ids = append(ids, item.GameID)
	}
	assert.Contains(t, ids, "tetris")
	assert.Contains(t, ids, "tritris")

	for _, item := range m.items {
		assert.NotEqual(t, multiplayer.MatchModeOnline, item.Mode, "offline menu lists %s", item.GameID)
		if item.GameID == "tetris_vs_cpu" {
			assert.Equal(t, multiplayer.MatchModeVsCPU, item.Mode)
		}
	}

	online := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, true)
	last := online.items[len(online.items)-1]
	assert.Equal(t, multiplayer.MatchModeOnline, last.Mode)
}

func TestSessionPlayAndReturnToMenu(t *testing.T) {
	m := newTestSession(t, nil)
	assert.Contains(t, m.View(), "B L O C K F A L L")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.IsType(t, GameModel{}, m.active)
	assert.NotNil(t, cmd, "game starts its tick loop")

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	require.True(t, m.active.(GameModel).State().Paused)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.active)
	assert.False(t, m.quitting)
	assert.Nil(t, cmd, "back to menu must not end the session")
	assert.Contains(t, m.View(), "Select a game")
}

func TestSessionBackIgnoredWhilePlaying(t *testing.T) {
	m := newTestSession(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.IsType(t, GameModel{}, m.active)
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := newTestSession(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.IsType(t, ScoreboardModel{}, m.active)
	assert.Contains(t, m.View(), "No scores recorded yet")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.active)
	assert.False(t, m.quitting)
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, nil)
	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
