// Package registry lets game packages announce themselves from init so the
// CLI and the TUI can list and start them by ID.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is a playable mode. Games are pure logic: the platform owns timing,
// key mapping and terminal output.
type Game interface {
	// ID is the stable key used on the command line and in the scores table.
	ID() string
	Title() string

	// Reset starts a new round. It is called before the first Step and on
	// restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Describer is an optional one-line description shown in listings.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory returns a fresh game.
type Factory func() Game

type entry struct {
	info GameInfo
	make Factory
}

// Registry maps game IDs to factories. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds f under id, reading the title and description from one
// instance. It panics on a duplicate ID.
func (r *Registry) Register(id string, f Factory) {
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{info: info, make: f}
}

// List returns every game ordered by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	out := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of the game registered as id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.make(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// Default is the registry game packages add themselves to.
var Default = New()

// Register adds f to Default.
func Register(id string, f Factory) { Default.Register(id, f) }

// List returns the games in Default.
func List() []GameInfo { return Default.List() }

// Create instantiates a game from Default.
func Create(id string) (Game, error) { return Default.Create(id) }

// Exists reports whether Default knows id.
func Exists(id string) bool { return Default.Exists(id) }
