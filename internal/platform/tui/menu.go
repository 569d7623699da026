package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// onlineGames are the variants offered as garbage battles.
var onlineGames = []struct{ id, title string }{
	{"tetris", "Online Battle"},
	{"tritris", "Online Battle (Tritris)"},
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuChrome = 6 // header and footer lines around the list

// MenuItem is one entry of the game picker.
type MenuItem struct {
	GameID string
	Name   string
	Blurb  string
	Mode   multiplayer.MatchMode
	Best   int
}

// Title, Description and FilterValue make MenuItem a list.DefaultItem.
func (i MenuItem) Title() string       { return i.Name }
func (i MenuItem) FilterValue() string { return i.Name }

func (i MenuItem) Description() string {
	if i.Best > 0 {
		return fmt.Sprintf("best %d · %s", i.Best, i.Blurb)
	}
	return i.Blurb
}

// MenuModel is the game picker.
type MenuModel struct {
	items     []MenuItem
	list      list.Model
	width     int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	scores    bool
}

// NewMenuModel lists every registered game, plus online battles when online
// is true. Best scores come from store when it is non-nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, online bool) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Name: g.Title, Blurb: g.Description, Mode: multiplayer.MatchModeSolo}
		if strings.HasSuffix(g.ID, "_vs_cpu") {
			item.Mode = multiplayer.MatchModeVsCPU
		}
		if store != nil {
			//nolint:errcheck // a missing high score just hides the suffix
			item.Best, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
	}
	if online {
		for _, g := range onlineGames {
			items = append(items, MenuItem{
				GameID: g.id,
				Name:   g.title,
				Blurb:  "Host or join with a code; clears send garbage",
				Mode:   multiplayer.MatchModeOnline,
			})
		}
	}

	entries := make([]list.Item, len(items))
	for i, it := range items {
		entries[i] = it
	}
	l := list.New(entries, list.NewDefaultDelegate(), cfg.ScreenW, max(cfg.ScreenH-menuChrome, 6))
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return MenuModel{
		items:     items,
		list:      l,
		width:     cfg.ScreenW,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-menuChrome, 6))
		return m, nil
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionScoreboard:
			m.scores = true
			return m, tea.Quit
		case MenuActionSelect:
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.selected = &item
				return m, tea.Quit
			}
			return m, nil
		case MenuActionBack:
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	return strings.Join([]string{
		"",
		centerText(menuTitleStyle.Render("B L O C K F A L L"), m.width),
		centerText("Select a game", m.width),
		"",
		m.list.View(),
		centerText(menuDimStyle.Render("↑/↓: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width),
	}, "\n")
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Mode            multiplayer.MatchMode
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the local menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, false), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.Mode = m.Selected().Mode
	}
	return result, nil
}
