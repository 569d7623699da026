package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFor(t *testing.T) {
	tests := []struct {
		variant Variant
		pieces  string
		box     int
	}{
		{VariantTetromino, "IOTJLSZ", 4},
		{VariantTriomino, "ILD", 3},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			c, err := CatalogFor(tt.variant)
			require.NoError(t, err)
			assert.Equal(t, tt.box, c.Box())

			var got []byte
			for _, id := range c.Pieces() {
				got = append(got, byte(id))
			}
			assert.Equal(t, tt.pieces, string(got))
		})
	}

	_, err := CatalogFor(Variant(99))
	assert.Error(t, err)
}

func TestTetrominoShapes(t *testing.T) {
	c, err := CatalogFor(VariantTetromino)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Point{{1, 0}, {2, 0}, {1, 1}, {2, 1}}, c.Cells('O', 0))
	assert.ElementsMatch(t, []Point{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, c.Cells('I', 0))
	// I rotated clockwise stands in column 2.
	assert.ElementsMatch(t, []Point{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, c.Cells('I', 1))
	assert.ElementsMatch(t, []Point{{1, 0}, {0, 1}, {1, 1}, {2, 1}}, c.Cells('T', 0))
	assert.ElementsMatch(t, []Point{{2, 0}, {2, 1}, {2, 2}, {3, 1}}, c.Cells('T', 1))

	for _, id := range c.Pieces() {
		for r := 0; r < 4; r++ {
			assert.Len(t, c.Cells(id, r), 4, "piece %s rotation %d", id, r)
		}
		// Four clockwise turns return to the spawn shape.
		assert.ElementsMatch(t, c.Cells(id, 0), c.Cells(id, 4), "piece %s", id)
	}
}

func TestTriominoShapes(t *testing.T) {
	c, err := CatalogFor(VariantTriomino)
	require.NoError(t, err)

	assert.Len(t, c.Cells('I', 0), 3)
	assert.Len(t, c.Cells('L', 2), 3)
	assert.Len(t, c.Cells('D', 1), 2)
	assert.Nil(t, c.Cells('T', 0))
}

func TestKicks(t *testing.T) {
	c, err := CatalogFor(VariantTetromino)
	require.NoError(t, err)

	assert.Equal(t, []Point{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, c.Kicks('I', 0, 1))
	assert.Equal(t, []Point{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, c.Kicks('T', 0, 1))
	assert.Equal(t, []Point{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, c.Kicks('I', 0, 3))
	// I and the rest disagree on every transition.
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		assert.NotEqual(t, c.Kicks('I', pair[0], pair[1]), c.Kicks('J', pair[0], pair[1]))
	}
	// Unknown transitions only try the unshifted position.
	assert.Equal(t, []Point{{0, 0}}, c.Kicks('T', 0, 2))

	tri, err := CatalogFor(VariantTriomino)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {-1, 0}, {1, 0}, {0, -1}}, tri.Kicks('L', 3, 0))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("tritris")
	require.NoError(t, err)
	assert.Equal(t, VariantTriomino, v)

	v, err = ParseVariant("tetromino")
	require.NoError(t, err)
	assert.Equal(t, VariantTetromino, v)

	_, err = ParseVariant("pentomino")
	assert.Error(t, err)
}
