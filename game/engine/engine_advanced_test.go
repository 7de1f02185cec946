package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_CascadeReachesStableBoard(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		config := createTestConfig()
		config.Seed = seed
		eng, err := NewEngine(config)
		require.NoError(t, err)

		_, err = eng.Cascade(0)
		require.NoError(t, err, "seed %d", seed)

		assert.False(t, HasRun(eng.Board()), "seed %d left a run", seed)
		assert.Equal(t, 0, eng.Board().CountEmpty(), "seed %d left an empty cell", seed)
		assert.Equal(t, Idle, eng.Status())
	}
}

func TestEngine_CascadeCountsPasses(t *testing.T) {
	eng := newTestEngine(t, withRow(stableRows, 2, "&&&%&@#$")...)

	passes, err := eng.Cascade(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, passes, 1)
	assert.Equal(t, passes, eng.Cascades())
	assert.GreaterOrEqual(t, eng.Score(), 10)
}

func TestEngine_CascadeStable(t *testing.T) {
	eng := newTestEngine(t, stableRows...)

	passes, err := eng.Cascade(0)
	require.NoError(t, err)
	assert.Equal(t, 0, passes)
	assert.Equal(t, stableRows, eng.Board().Rows())
}

func TestEngine_CascadeLimit(t *testing.T) {
	config := createTestConfig()
	config.BoardSize = 3
	config.TileTypes = 3
	config.Symbols = "abc"
	// a single symbol alphabet refills into a run forever
	eng, err := NewEngine(config, WithRows("aaa", "bcb", "cbc"))
	require.NoError(t, err)
	eng.board.alphabet = []Symbol{'a'}

	passes, err := eng.Cascade(5)
	assert.ErrorIs(t, err, ErrCascadeLimit)
	assert.Equal(t, 5, passes)
	assert.Equal(t, Idle, eng.Status())
}

func TestEngine_ScoreCountsWindows(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		score int
	}{
		{"run of three", "@@@$%&@#", 10},
		{"run of four", "@@@@%&@#", 20},
		{"run of five", "@@@@@&@#", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t, withRow(stableRows, 4, tt.row)...)
			eng.Tick(nil)
			assert.Equal(t, tt.score, eng.Score())
		})
	}
}

func TestEngine_AnimationTerminates(t *testing.T) {
	eng := newTestEngine(t, withRow(stableRows, 7, "@@@$%&@#")...)
	require.True(t, eng.Tick(nil))

	// cells of the bottom row were replaced by everything above sliding one row;
	// the highest offset is the new top tile at 42px
	maxOffset := eng.Falls().Max()
	require.Equal(t, 42.0, maxOffset)

	ticks := 0
	for eng.Falls().Step(eng.Config().FallSpeed) {
		ticks++
	}
	ticks++
	assert.Equal(t, 6, ticks)
	assert.Equal(t, Idle, eng.Status())
}

func TestEngine_PressNeverChangesStateWhileFalling(t *testing.T) {
	eng := newTestEngine(t, swapRows...)
	eng.Click(Position{X: 2, Y: 0})
	eng.Click(Position{X: 3, Y: 0})

	rng := testRand(5)
	for eng.Status() == Animating {
		before := eng.Board().Rows()
		p := Position{X: rng.IntN(8), Y: rng.IntN(8)}
		require.Equal(t, PressIgnored, eng.Click(p))
		_, ok := eng.Selected()
		require.False(t, ok)
		require.Equal(t, before, eng.Board().Rows())
		eng.Falls().Step(eng.Config().FallSpeed)
	}
}

func TestEngine_RandomPlayKeepsInvariants(t *testing.T) {
	eng := newTestEngine(t)
	rng := testRand(77)

	for frame := 0; frame < 3000; frame++ {
		p := &fakePointer{
			x:       rng.Float64() * 9 * 42,
			y:       rng.Float64() * 9 * 42,
			pressed: rng.IntN(3) == 0,
		}
		prevScore := eng.Score()
		eng.Tick(p)

		require.GreaterOrEqual(t, eng.Score(), prevScore)
		require.Equal(t, 0, eng.Board().CountEmpty())
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				require.GreaterOrEqual(t, eng.Falls().At(x, y), 0.0)
			}
		}
	}
}
