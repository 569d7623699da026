package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                         { return g.id }
func (g stubGame) Title() string                      { return "Stub " + g.id }
func (g stubGame) Description() string                { return "a stub" }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func TestRegistryListAndCreate(t *testing.T) {
	r := New()
	r.Register("b", func() Game { return stubGame{"b"} })
	r.Register("a", func() Game { return stubGame{"a"} })

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, GameInfo{ID: "a", Title: "Stub a", Description: "a stub"}, list[0])
	assert.Equal(t, "b", list[1].ID)

	g, err := r.Create("b")
	require.NoError(t, err)
	assert.Equal(t, "b", g.ID())
	assert.True(t, r.Exists("a"))
	assert.False(t, r.Exists("c"))

	_, err = r.Create("c")
	assert.ErrorContains(t, err, `unknown game "c"`)
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", func() Game { return stubGame{"a"} })
	assert.Panics(t, func() { r.Register("a", func() Game { return stubGame{"a"} }) })
}
