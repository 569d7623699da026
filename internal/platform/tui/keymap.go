package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// GameKeyMap holds the in-game bindings. Terminals report presses only, so
// movement is one column per press.
type GameKeyMap struct {
	Left, Right, Rotate        key.Binding
	SoftDrop, HardDrop         key.Binding
	Pause, Restart, Back, Quit key.Binding
}

// DefaultGameKeyMap accepts arrows, WASD and vi keys.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left:     bind("←/a", "left", "left", "a", "h"),
		Right:    bind("→/d", "right", "right", "d", "l"),
		Rotate:   bind("↑/w", "rotate", "up", "w", "k", "x"),
		SoftDrop: bind("↓/s", "soft drop", "down", "s", "j"),
		HardDrop: bind("space", "hard drop", " "),
		Pause:    bind("p", "pause", "p"),
		Restart:  bind("r", "restart", "r"),
		Back:     bind("esc/b", "menu", "esc", "b"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.SoftDrop, k.HardDrop, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.SoftDrop, k.HardDrop},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// actions pairs each binding with its action, in match priority order.
func (k GameKeyMap) actions() []actionBinding {
	return []actionBinding{
		{k.Quit, core.ActionQuit},
		{k.Left, core.ActionMoveLeft},
		{k.Right, core.ActionMoveRight},
		{k.Rotate, core.ActionRotate},
		{k.SoftDrop, core.ActionSoftDrop},
		{k.HardDrop, core.ActionHardDrop},
		{k.Pause, core.ActionPause},
		{k.Restart, core.ActionRestart},
		{k.Back, core.ActionBack},
	}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// MenuAction is what a key means on the menu and result screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

var menuBindings = []struct {
	binding key.Binding
	action  MenuAction
}{
	{bind("q", "quit", "q", "ctrl+c"), MenuActionQuit},
	{bind("↑", "up", "up", "w", "k"), MenuActionUp},
	{bind("↓", "down", "down", "s", "j"), MenuActionDown},
	{bind("enter", "select", "enter", " "), MenuActionSelect},
	{bind("esc", "back", "esc", "b"), MenuActionBack},
	{bind("tab", "scores", "tab"), MenuActionScoreboard},
}

// KeyMapper turns Bubble Tea key messages into actions.
type KeyMapper struct {
	keys  GameKeyMap
	table []actionBinding
}

// NewKeyMapper uses DefaultGameKeyMap.
func NewKeyMapper() *KeyMapper {
	keys := DefaultGameKeyMap()
	return &KeyMapper{keys: keys, table: keys.actions()}
}

// Keys returns the bindings for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey returns the action bound to msg, ActionNone if there is none, and
// whether msg asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	for _, b := range km.table {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the action bound to msg to frame and reports whether
// msg asks to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, quit := km.MapKey(msg)
	frame.Set(action)
	return quit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range menuBindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
