package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// OnlineState is a step of the host/join flow.
type OnlineState int

const (
	OnlineStateChooseMode OnlineState = iota
	OnlineStateHostWaiting
	OnlineStateJoinEnterCode
	OnlineStateJoinWaiting
	OnlineStateInMatch
	OnlineStateMatchEnded
)

// OnlineLobbyModel is the online screen of one SSH session. It hosts or
// joins a lobby and then shows the garbage battle the lobby starts.
type OnlineLobbyModel struct {
	state   OnlineState
	gameID  string
	session *multiplayer.ChannelSession
	coord   *multiplayer.Coordinator
	keys    *KeyMapper
	screen  *core.Screen
	width   int

	code   string // lobby we host
	input  string // code being typed
	errMsg string

	match    multiplayer.MatchID
	side     core.PlayerID
	opponent string
	snapshot *blocks.VersusSnapshot
	ended    *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel returns the lobby screen for gameID.
func NewOnlineLobbyModel(
	gameID string,
	session *multiplayer.ChannelSession,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		gameID:  gameID,
		session: session,
		coord:   coordinator,
		keys:    NewKeyMapper(),
		screen:  core.NewScreen(width, height),
		width:   width,
	}
}

// Init starts listening for coordinator events. Exactly one listener is
// pending at a time; it is re-armed after every event.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return m.listen()
}

func (m OnlineLobbyModel) listen() tea.Cmd {
	events, done := m.session.Events(), m.session.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		return onlineKeyHandlers[m.state](m, msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.screen.Resize(msg.Width, msg.Height)
	case multiplayer.SessionEvent:
		m.apply(msg)
		return m, m.listen()
	}
	return m, nil
}

// apply folds one coordinator event into the screen state.
func (m *OnlineLobbyModel) apply(evt multiplayer.SessionEvent) {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.code = evt.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.side, m.opponent = evt.Side, evt.OpponentName
	case multiplayer.LobbyErrorEvent:
		m.errMsg = evt.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		case OnlineStateHostWaiting:
			m.state = OnlineStateChooseMode
		}
	case multiplayer.MatchStartedEvent:
		m.match, m.side = evt.MatchID, evt.Side
		m.snapshot, m.ended = nil, nil
		m.state = OnlineStateInMatch
	case multiplayer.SnapshotEvent:
		if snap, ok := evt.Snapshot.(blocks.VersusSnapshot); ok && evt.MatchID == m.match {
			m.snapshot = &snap
		}
	case multiplayer.MatchEndedEvent:
		m.ended = &evt
		m.state = OnlineStateMatchEnded
	}
}

type onlineKeyHandler func(OnlineLobbyModel, tea.KeyMsg) (tea.Model, tea.Cmd)

var onlineKeyHandlers = [...]onlineKeyHandler{
	OnlineStateChooseMode:    OnlineLobbyModel.chooseModeKey,
	OnlineStateHostWaiting:   OnlineLobbyModel.hostWaitingKey,
	OnlineStateJoinEnterCode: OnlineLobbyModel.joinCodeKey,
	OnlineStateJoinWaiting:   OnlineLobbyModel.joinWaitingKey,
	OnlineStateInMatch:       OnlineLobbyModel.matchKey,
	OnlineStateMatchEnded:    OnlineLobbyModel.matchEndedKey,
}

func (m OnlineLobbyModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m OnlineLobbyModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	return m, nil
}

// matchKey forwards gameplay actions as they arrive; the match merges
// everything received between two ticks.
func (m OnlineLobbyModel) matchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, _ := m.keys.MapKey(msg)
	switch action {
	case core.ActionBack, core.ActionQuit:
		m.coord.Send(multiplayer.LeaveMatchMsg{SessionID: m.session.ID(), MatchID: m.match})
		return m.leave()
	case core.ActionNone, core.ActionPause, core.ActionRestart:
	default:
		m.coord.Send(multiplayer.PlayerInputMsg{MatchID: m.match, Player: m.side, Input: core.NewInputFrame(action)})
	}
	return m, nil
}

func (m OnlineLobbyModel) matchEndedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.quit()
	case MenuActionBack, MenuActionSelect:
		return m.leave()
	}
	return m, nil
}

const joinCodeLen = 6

func (m OnlineLobbyModel) chooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "h", "1":
		m.coord.Send(multiplayer.CreateLobbyMsg{SessionID: m.session.ID(), GameID: m.gameID})
	case "j", "2":
		m.state = OnlineStateJoinEnterCode
		m.input, m.errMsg = "", ""
	case "esc", "b":
		return m.leave()
	case "q":
		return m.quit()
	}
	return m, nil
}

// closeLobby withdraws the lobby this session is hosting.
func (m OnlineLobbyModel) closeLobby() {
	m.coord.Send(multiplayer.LeaveLobbyMsg{SessionID: m.session.ID()})
}

func (m OnlineLobbyModel) hostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.closeLobby()
		return m.leave()
	case "q":
		m.closeLobby()
		return m.quit()
	}
	return m, nil
}

func (m OnlineLobbyModel) joinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.leave()
	case tea.KeyEnter:
		if m.input != "" {
			m.state = OnlineStateJoinWaiting
			m.errMsg = ""
			m.coord.Send(multiplayer.JoinLobbyMsg{SessionID: m.session.ID(), Code: m.input})
		}
	case tea.KeyBackspace:
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case tea.KeyRunes:
		for _, r := range strings.ToUpper(string(msg.Runes)) {
			if len(m.input) < joinCodeLen && isCodeRune(r) {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func isCodeRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// joinWaitingKey lets the player stop waiting. A join is answered at
// once, so there is nothing to withdraw from the coordinator.
func (m OnlineLobbyModel) joinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.state = OnlineStateJoinEnterCode
	}
	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.state == OnlineStateInMatch && m.snapshot != nil:
		m.screen.Clear()
		blocks.RenderVersus(m.screen, *m.snapshot, m.names(), m.side)
		return RenderScreen(m.screen)
	case m.state == OnlineStateMatchEnded:
		return m.viewMatchEnded()
	}
	title, body, help := m.lobbyText()
	return m.panel(title, body, help)
}

// lobbyText returns the heading, body lines and key help for the
// non-gameplay states.
func (m OnlineLobbyModel) lobbyText() (string, []string, string) {
	var errLine []string
	if m.errMsg != "" {
		errLine = []string{"", "Error: " + m.errMsg}
	}

	switch m.state {
	case OnlineStateHostWaiting:
		return "HOSTING GAME", []string{
			"Share this code with your opponent:",
			"",
			"[ " + m.code + " ]",
			"",
			"Waiting for player to join...",
		}, "Esc: Cancel  |  Q: Quit"
	case OnlineStateJoinEnterCode:
		field := m.input
		if len(field) < joinCodeLen {
			field += "_" + strings.Repeat(" ", joinCodeLen-len(field)-1)
		}
		return "JOIN GAME", append([]string{
			"Enter the game code:",
			"",
			"[ " + field + " ]",
		}, errLine...), "Enter: Connect  |  Esc: Back"
	case OnlineStateJoinWaiting:
		return "CONNECTING", []string{
			"Joining game: " + m.input,
			"",
			"Please wait...",
		}, "Esc: Cancel"
	case OnlineStateInMatch:
		return "MATCH STARTING", []string{
			fmt.Sprintf("%s vs %s", m.session.Name(), m.opponent),
			"",
			"Get ready!",
		}, ""
	}
	return "GARBAGE BATTLE", append([]string{
		"Playing as " + m.session.Name(),
		"",
		"[H] Host a game",
		"[J] Join a game",
	}, errLine...), "Esc: Back  |  Q: Quit"
}

func (m OnlineLobbyModel) panel(title string, body []string, help string) string {
	lines := make([]string, 0, len(body)+6)
	lines = append(lines, "", menuTitleStyle.Render(title), "")
	lines = append(lines, body...)
	if help != "" {
		lines = append(lines, "", menuDimStyle.Render(help))
	}
	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m OnlineLobbyModel) names() [2]string {
	if m.side == core.Player2 {
		return [2]string{m.opponent, m.session.Name()}
	}
	return [2]string{m.session.Name(), m.opponent}
}

func (m OnlineLobbyModel) viewMatchEnded() string {
	title := "DRAW"
	switch {
	case m.ended == nil || m.ended.Winner == 0:
	case m.ended.Winner == m.side:
		title = "YOU WIN!"
	default:
		title = "YOU LOSE"
	}

	var body []string
	if m.ended != nil {
		body = append(body, m.ended.Reason.Describe(), "")
		names := m.names()
		for i, st := range []multiplayer.PlayerStats{m.ended.Stats1, m.ended.Stats2} {
			body = append(body, fmt.Sprintf("%-12s score %6d  lines %3d  sent %3d",
				truncateName(names[i], 12), st.Score, st.Lines, st.GarbageSent))
		}
	}
	return m.panel(title, body, "Enter/Esc: Menu  |  Q: Quit")
}

func truncateName(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState { return m.state }

// BackToMenu reports whether the player asked to return to the menu.
func (m OnlineLobbyModel) BackToMenu() bool { return m.backToMenu }

// IsQuitting reports whether the player asked to close the session.
func (m OnlineLobbyModel) IsQuitting() bool { return m.quitting }

// LobbyCode is the code of the hosted lobby, if any.
func (m OnlineLobbyModel) LobbyCode() string { return m.code }
