package engine

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stableRows is an 8x8 layout over "#$%&@" with no runs and no swap that creates one
var stableRows = []string{
	"#$%&@#$%",
	"%&@#$%&@",
	"@#$%&@#$",
	"$%&@#$%&",
	"&@#$%&@#",
	"#$%&@#$%",
	"%&@#$%&@",
	"@#$%&@#$",
}

func withRow(rows []string, y int, row string) []string {
	out := make([]string, len(rows))
	copy(out, rows)
	out[y] = row
	return out
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(8, "#$%&@", testRand(1))
	require.NoError(t, err)

	assert.Equal(t, 8, b.Size())
	assert.Equal(t, 0, b.CountEmpty())
	for _, row := range b.Rows() {
		assert.Len(t, row, 8)
		for _, c := range row {
			assert.True(t, strings.ContainsRune("#$%&@", c), "unexpected symbol %q", c)
		}
	}
}

func TestNewBoard_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"too small", MinBoardSize - 1},
		{"too large", MaxBoardSize + 1},
		{"zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.size, "#$%", nil)
			assert.Error(t, err)
		})
	}

	_, err := NewBoard(8, "", nil)
	assert.Error(t, err, "empty alphabet should fail")
}

func TestNewBoardFromRows(t *testing.T) {
	b, err := NewBoardFromRows(stableRows, "#$%&@", nil)
	require.NoError(t, err)
	assert.Equal(t, stableRows, b.Rows())

	_, err = NewBoardFromRows([]string{"abc", "ab", "abc"}, "abc", nil)
	assert.Error(t, err, "ragged rows should fail")
}

func TestBoard_GetSet(t *testing.T) {
	b, err := NewBoardFromRows(stableRows, "#$%&@", nil)
	require.NoError(t, err)

	s, err := b.Get(Position{X: 2, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, Symbol('@'), s)

	require.NoError(t, b.Set(Position{X: 2, Y: 1}, '#'))
	s, _ = b.Get(Position{X: 2, Y: 1})
	assert.Equal(t, Symbol('#'), s)

	outside := []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 8, Y: 0}, {X: 0, Y: 8}}
	for _, p := range outside {
		_, err := b.Get(p)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.ErrorIs(t, b.Set(p, '#'), ErrOutOfBounds)
		assert.ErrorIs(t, b.Swap(p, Position{}), ErrOutOfBounds)
	}
	assert.Equal(t, withRow(stableRows, 1, "%&##$%&@"), b.Rows())
}

func TestBoard_SwapTwiceRestores(t *testing.T) {
	b, err := NewBoard(8, "#$%&@", testRand(7))
	require.NoError(t, err)
	before := b.Clone()

	rng := testRand(99)
	for i := 0; i < 200; i++ {
		a := Position{X: rng.IntN(8), Y: rng.IntN(8)}
		c := Position{X: rng.IntN(8), Y: rng.IntN(8)}
		require.NoError(t, b.Swap(a, c))
		require.NoError(t, b.Swap(a, c))
		require.True(t, b.Equal(before), "swap %v<->%v twice changed the board", a, c)
	}
}

func TestBoard_SwapExchanges(t *testing.T) {
	b, err := NewBoardFromRows(stableRows, "#$%&@", nil)
	require.NoError(t, err)

	require.NoError(t, b.Swap(Position{X: 0, Y: 0}, Position{X: 1, Y: 0}))
	assert.Equal(t, "$#%&@#$%", b.Rows()[0])
}

func TestBoard_RandomTileUniform(t *testing.T) {
	b, err := NewBoard(8, "#$%&@", testRand(3))
	require.NoError(t, err)

	counts := map[Symbol]int{}
	for i := 0; i < 5000; i++ {
		counts[b.RandomTile()]++
	}
	assert.Len(t, counts, 5)
	for s, c := range counts {
		assert.InDelta(t, 1000, c, 150, "symbol %q drawn %d times", s, c)
	}
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	b, err := NewBoardFromRows(stableRows, "#$%&@", nil)
	require.NoError(t, err)

	c := b.Clone()
	require.True(t, b.Equal(c))
	require.NoError(t, c.Set(Position{}, '@'))
	assert.False(t, b.Equal(c))
	assert.False(t, b.Equal(nil))
}

func TestAreAdjacent(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{Position{0, 0}, Position{0, 1}, true},
		{Position{0, 0}, Position{1, 0}, true},
		{Position{3, 3}, Position{2, 3}, true},
		{Position{0, 0}, Position{0, 0}, false},
		{Position{0, 0}, Position{1, 1}, false},
		{Position{0, 0}, Position{5, 5}, false},
		{Position{0, 0}, Position{0, 2}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AreAdjacent(tt.a, tt.b), "%v %v", tt.a, tt.b)
	}
}

func TestAreAdjacent_Symmetric(t *testing.T) {
	for ax := 0; ax < 4; ax++ {
		for ay := 0; ay < 4; ay++ {
			for bx := 0; bx < 4; bx++ {
				for by := 0; by < 4; by++ {
					a, b := Position{ax, ay}, Position{bx, by}
					require.Equal(t, AreAdjacent(a, b), AreAdjacent(b, a))
					require.Equal(t, ManhattanDistance(a, b) == 1, AreAdjacent(a, b))
				}
			}
		}
	}
}
