package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	maxScores  = 100
	maxBattles = 50
	dateLayout = "Jan 02 15:04"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tableFrame      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// scoreboardTab is one page of the scoreboard. An empty ID is the battle log.
type scoreboardTab struct {
	ID    string
	Title string
}

func (t scoreboardTab) battles() bool { return t.ID == "" }

func (t scoreboardTab) columns(dateWidth int) []table.Column {
	if t.battles() {
		return []table.Column{
			{Title: "Winner", Width: 12},
			{Title: "Players", Width: 22},
			{Title: "Lines", Width: 7},
			{Title: "Date", Width: dateWidth},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Lines", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Date", Width: dateWidth},
	}
}

// rows reads the tab's records. A store error shows as an empty page.
func (t scoreboardTab) rows(store *storage.Store) []table.Row {
	if store == nil {
		return nil
	}
	var rows []table.Row
	if t.battles() {
		results, err := store.RecentVersus("", maxBattles)
		if err != nil {
			return nil
		}
		for _, r := range results {
			winner := r.Winner
			if winner == "" {
				winner = "-"
			}
			rows = append(rows, table.Row{
				winner,
				r.Player1 + " v " + r.Player2,
				fmt.Sprintf("%d-%d", r.Lines1, r.Lines2),
				r.CreatedAt.Format(dateLayout),
			})
		}
		return rows
	}

	scores, err := store.TopScores(t.ID, maxScores)
	if err != nil {
		return nil
	}
	for i, s := range scores {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Level),
			s.CreatedAt.Format(dateLayout),
		})
	}
	return rows
}

func (t scoreboardTab) emptyText() string {
	if t.battles() {
		return "No battles recorded yet.\nHost one over SSH!"
	}
	return "No scores recorded yet.\nPlay a game to set a high score!"
}

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultScoreboardKeys = scoreboardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows per-game high scores and the versus battle log.
type ScoreboardModel struct {
	tabs      []scoreboardTab
	current   int
	store     *storage.Store
	table     table.Model
	empty     bool
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var tabs []scoreboardTab
	for _, g := range registry.List() {
		// The attract loop never records scores.
		if !strings.HasSuffix(g.ID, "_demo") {
			tabs = append(tabs, scoreboardTab{ID: g.ID, Title: g.Title})
		}
	}
	tabs = append(tabs, scoreboardTab{Title: "Battles"})

	m := ScoreboardModel{
		tabs:   tabs,
		store:  store,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *ScoreboardModel) tab() scoreboardTab {
	return m.tabs[m.current]
}

// reload rebuilds the table for the current tab and window size.
func (m *ScoreboardModel) reload() {
	tab := m.tab()
	dateWidth := min(max(m.width-44, 12), 18)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	rows := tab.rows(m.store)
	m.empty = len(rows) == 0
	m.table = table.New(
		table.WithColumns(tab.columns(dateWidth)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.tabs)
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	case tea.KeyMsg:
		keys := defaultScoreboardKeys
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.cycle(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES - " + m.tab().Title
	if m.tab().battles() {
		title = "RECENT BATTLES"
	}

	labels := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := tabStyle
		if i == m.current {
			style = activeTabStyle
		}
		labels[i] = style.Render(t.Title)
	}
	bar := strings.Join(labels, " ")
	if lipgloss.Width(bar) > m.width-4 {
		bar = "< " + m.tab().Title + " >"
	}

	content := m.table.View()
	if m.empty {
		content = emptyStyle.Render(m.tab().emptyText())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText(title, m.width)),
		centerText(bar, m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableFrame.Render(content)),
		menuDimStyle.Render(m.help.View(defaultScoreboardKeys)),
	)
}

// BackToMenu reports whether the player asked to return to the menu.
func (m ScoreboardModel) BackToMenu() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the player wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.BackToMenu(), nil
}
