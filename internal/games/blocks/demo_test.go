package blocks

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

const frame = time.Second / 60

func TestDemoSessionRestartsAfterGameOver(t *testing.T) {
	d, err := NewDemoSession(config.DefaultBlocksConfig(), engine.VariantTriomino, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Games())

	for i := 0; i < 60*60 && d.Games() < 3; i++ {
		_, err := d.Step(frame)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, d.Games(), 3, "soft drop held on a 4x5 well tops out quickly")
	assert.False(t, d.Snapshot().GameOver)
}

func TestDemoSessionsAreIndependent(t *testing.T) {
	a, err := NewDemoSession(config.DefaultBlocksConfig(), engine.VariantTetromino, 5)
	require.NoError(t, err)
	b, err := NewDemoSession(config.DefaultBlocksConfig(), engine.VariantTetromino, 5)
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		_, err := a.Step(frame)
		require.NoError(t, err)
	}
	assert.NotEqual(t, a.Snapshot(), b.Snapshot(), "stepping one demo leaves the other alone")

	for i := 0; i < 600; i++ {
		_, err := b.Step(frame)
		require.NoError(t, err)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot(), "same seed, same game")
}

func TestDemoSessionRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Tetris.Board.Width = 0
	_, err := NewDemoSession(cfg, engine.VariantTetromino, 1)
	assert.ErrorIs(t, err, engine.ErrInvalidDimensions)
}

func TestRandomAIAlwaysHoldsSoftDrop(t *testing.T) {
	ai := NewRandomAI(rand.New(rand.NewSource(1)), 0)
	held := map[core.Action]bool{}
	for i := 0; i < 200; i++ {
		in := ai.Next(frame)
		assert.True(t, in.Has(core.ActionSoftDropHeld))
		for _, pair := range [][2]core.Action{
			{core.ActionPressLeft, core.ActionReleaseLeft},
			{core.ActionPressRight, core.ActionReleaseRight},
		} {
			press, release := pair[0], pair[1]
			assert.False(t, in.Has(press) && in.Has(release))
			if in.Has(press) {
				assert.False(t, held[press], "press only on transition")
				held[press] = true
			}
			if in.Has(release) {
				assert.True(t, held[press], "release only while held")
				held[press] = false
			}
		}
	}
}

func TestRandomAIThinkInterval(t *testing.T) {
	ai := NewRandomAI(rand.New(rand.NewSource(3)), 100*time.Millisecond)
	decisions := 0
	for i := 0; i < 60; i++ {
		if ai.Next(frame).Len() > 1 {
			decisions++
		}
	}
	// One second at 60 fps allows at most ten decisions.
	assert.LessOrEqual(t, decisions, 10)
}
