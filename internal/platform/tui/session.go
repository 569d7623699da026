package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// subScreen is a screen the session hands control to until the player asks
// for the menu again or quits.
type subScreen interface {
	tea.Model
	IsQuitting() bool
	BackToMenu() bool
}

var (
	_ subScreen = GameModel{}
	_ subScreen = OnlineLobbyModel{}
	_ subScreen = ScoreboardModel{}
)

// SessionModel drives one SSH connection: the menu, then a game, the
// scoreboard or an online battle, then the menu again.
type SessionModel struct {
	store       *storage.Store
	config      core.RuntimeConfig
	session     *multiplayer.ChannelSession
	coordinator *multiplayer.Coordinator
	menu        MenuModel
	active      subScreen
	quitting    bool
}

// NewSessionModel starts a session on the menu. Online battles are offered
// when coordinator is non-nil.
func NewSessionModel(
	store *storage.Store,
	cfg core.RuntimeConfig,
	session *multiplayer.ChannelSession,
	coordinator *multiplayer.Coordinator,
) SessionModel {
	return SessionModel{
		store:       store,
		config:      cfg,
		session:     session,
		coordinator: coordinator,
		menu:        NewMenuModel(store, cfg, coordinator != nil),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}
	if m.active == nil {
		return m.updateMenu(msg)
	}

	next, cmd := m.active.Update(msg)
	if s, ok := next.(subScreen); ok {
		m.active = s
	}
	switch {
	case m.active.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.active.BackToMenu():
		// Sub-screens quit their own program when run standalone; here
		// that tea.Quit is dropped so the connection stays open.
		m.active = nil
		m.menu = NewMenuModel(m.store, m.config, m.coordinator != nil)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.menu.WantsScoreboard() {
		return m.open(NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH))
	}

	item := m.menu.Selected()
	if item == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	if item.Mode == multiplayer.MatchModeOnline {
		return m.open(NewOnlineLobbyModel(item.GameID, m.session, m.coordinator, m.config.ScreenW, m.config.ScreenH))
	}
	game, err := registry.Create(item.GameID)
	if err != nil {
		// The menu only lists registered games.
		m.menu = NewMenuModel(m.store, m.config, m.coordinator != nil)
		return m, nil
	}
	m.config.Seed = time.Now().UnixNano()
	return m.open(NewGameModel(game, m.store, m.config))
}

func (m SessionModel) open(s subScreen) (tea.Model, tea.Cmd) {
	m.active = s
	return m, s.Init()
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.active != nil:
		return m.active.View()
	}
	return m.menu.View()
}
