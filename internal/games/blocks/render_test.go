package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

func TestTokenStyle(t *testing.T) {
	tests := []struct {
		cell  engine.Cell
		r     rune
		color core.Color
	}{
		{engine.Empty, EmptyChar, core.ColorGray},
		{engine.Garbage, GarbageChar, core.ColorGray},
		{'I', SolidChar, core.ColorCyan},
		{'L', SolidChar, core.ColorOrange},
		{'t', ShadowChar, core.ColorDim},
	}
	for _, tt := range tests {
		r, c := tokenStyle(tt.cell)
		assert.Equal(t, tt.r, r, "cell %q", tt.cell)
		assert.Equal(t, tt.color, c, "cell %q", tt.cell)
	}
}

func TestRenderSolo(t *testing.T) {
	g := NewTetris()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "Score 0")
	assert.Contains(t, out, "Next")
	assert.Equal(t, 1, strings.Count(out, "┌"))
	assert.Contains(t, out, string(SolidChar))
	assert.Contains(t, out, string(ShadowChar), "ghost and preview are drawn")
}

func TestRenderTooSmall(t *testing.T) {
	g := NewTetris()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Terminal too small")
}

func TestRenderVersus(t *testing.T) {
	g := NewVsCPU()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Equal(t, 2, strings.Count(out, "┌"))
	assert.Contains(t, out, "Player (you)")
	assert.Contains(t, out, "CPU")
}
