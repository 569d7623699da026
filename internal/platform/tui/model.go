package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel drives one registry game at the configured tick rate. Keys
// pressed between two ticks form the frame of the next Step, and the score
// is recorded once per game over.
type GameModel struct {
	game   registry.Game
	store  *storage.Store
	cfg    core.RuntimeConfig
	screen *core.Screen
	keys   *KeyMapper
	help   help.Model

	pending core.InputFrame
	state   core.GameState
	saved   bool

	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game. A zero seed is replaced with the current time.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return GameModel{
		game:   game,
		store:  store,
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		keys:   NewKeyMapper(),
		help:   h,
	}
}

// Init resets the game and schedules the first tick.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.cfg)
	return tickCmd(m.cfg.TickRate)
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.backToMenu {
			return m, nil
		}
		m.step()
		return m, tickCmd(m.cfg.TickRate)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlS {
			//nolint:errcheck // screenshots are best effort
			m.screenshot(time.Now())
			return m, nil
		}
		if m.keys.MapKeyToFrame(msg, &m.pending) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.pending.Has(core.ActionBack) && (m.state.GameOver || m.state.Paused) {
			m.backToMenu = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// The board keeps its size; only the frame around it moves.
		m.cfg.ScreenW, m.cfg.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *GameModel) step() {
	m.state = m.game.Step(m.pending).State
	m.pending.Clear()

	if !m.state.GameOver {
		m.saved = false
		return
	}
	if !m.saved {
		m.recordScore()
		m.saved = true
	}
}

func (m *GameModel) recordScore() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	//nolint:errcheck // a lost score never interrupts play
	m.store.SaveScore(m.game.ID(), m.state.Score, m.state.Lines, m.state.Level)
}

// screenshot writes the current frame as plain text to
// ~/.blockfall/screenshots/<game>_<time>.txt.
func (m GameModel) screenshot(now time.Time) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), now.Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.frame().String()), 0o600)
}

func (m GameModel) frame() *core.Screen {
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.screen
}

// View renders the game with a one-line key help footer.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	return RenderScreen(m.frame()) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// State is the state reported by the last tick.
func (m GameModel) State() core.GameState { return m.state }

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player left a paused or finished game.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewGameModel(game, store, cfg), tea.WithAltScreen()).Run()
	return err
}
