package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockmatch/game/engine"
)

func TestAnalyzePreset(t *testing.T) {
	cfg := engine.DefaultConfig()

	report, err := analyzePreset(cfg, 5, 10)
	require.NoError(t, err)

	assert.Equal(t, "classic", report.Preset)
	assert.Equal(t, 8, report.BoardSize)
	assert.Equal(t, 5, report.Seeds)
	assert.GreaterOrEqual(t, report.AvgInitialWindows, 0.0)
	assert.LessOrEqual(t, report.AvgSwapsToStall, 10.0)
	assert.LessOrEqual(t, report.Stalled, 5)
	if report.AvgSwapsToStall > 0 {
		assert.Positive(t, report.AvgScore)
	}
	assert.Equal(t, uint64(0), cfg.Seed, "preset must not be modified")
}

func TestAnalyzePreset_Deterministic(t *testing.T) {
	a, err := analyzePreset(engine.DefaultConfig(), 4, 20)
	require.NoError(t, err)
	b, err := analyzePreset(engine.DefaultConfig(), 4, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAnalyzePreset_NoSeeds(t *testing.T) {
	report, err := analyzePreset(engine.DefaultConfig(), 0, 10)
	require.NoError(t, err)
	assert.Zero(t, report.AvgHints)
	assert.Zero(t, report.AvgSwapsToStall)
}

func TestPlayOut_StalledBoard(t *testing.T) {
	eng, err := engine.NewEngine(engine.DefaultConfig(), engine.WithRows(
		"#$%&@#$%",
		"%&@#$%&@",
		"@#$%&@#$",
		"$%&@#$%&",
		"&@#$%&@#",
		"#$%&@#$%",
		"%&@#$%&@",
		"@#$%&@#$",
	))
	require.NoError(t, err)

	played, stalled, limited := playOut(eng, 10)
	assert.Equal(t, 0, played)
	assert.True(t, stalled)
	assert.False(t, limited)
}

func TestAnalyzeDir(t *testing.T) {
	reports, err := analyzeDir(context.Background(), "../../configs", 2, 5)
	require.NoError(t, err)
	require.NotEmpty(t, reports)

	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.Preset)
		assert.Equal(t, 2, r.Seeds)
	}
	assert.Contains(t, ids, "classic")

	_, err = analyzeDir(context.Background(), "/non/existent/path", 2, 5)
	assert.Error(t, err)
}

func TestPrintReports(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printReports(&out, []PresetReport{{
		Preset: "classic", BoardSize: 8, TileTypes: 5, Seeds: 10,
		AvgInitialWindows: 1.5, AvgHints: 12, AvgSwapsToStall: 40, AvgScore: 520, Stalled: 3,
	}}))

	assert.Contains(t, out.String(), "PRESET")
	assert.Contains(t, out.String(), "8x8")
	assert.Contains(t, out.String(), "3/10")
}
