// Command analyze prints Monte-Carlo heuristics about the presets in the
// project's configs directory. For every preset it fills boards from a range
// of seeds and reports how many runs a fresh fill contains, how many swaps
// are available once the board is stable, and how long a first-hint bot
// plays before it runs out of moves.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/blockmatch/game/config"
	"github.com/wricardo/blockmatch/game/engine"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PresetReport summarizes one preset over a range of seeds.
type PresetReport struct {
	Preset            string  `json:"preset"`
	BoardSize         int     `json:"board_size"`
	TileTypes         int     `json:"tile_types"`
	Seeds             int     `json:"seeds"`
	AvgInitialWindows float64 `json:"avg_initial_windows"`
	AvgHints          float64 `json:"avg_hints"`
	AvgSwapsToStall   float64 `json:"avg_swaps_to_stall"`
	AvgScore          float64 `json:"avg_score"`
	Stalled           int     `json:"stalled"` // seeds that ran out of moves before the swap cap
	CascadeLimitHits  int     `json:"cascade_limit_hits"`
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Monte-Carlo statistics for board presets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.IntFlag{Name: "seeds", Value: 50, Usage: "boards per preset"},
			&cli.IntFlag{Name: "max-swaps", Value: 200, Usage: "swap cap per board"},
			&cli.BoolFlag{Name: "json", Usage: "print reports as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reports, err := analyzeDir(ctx, cmd.String("config-dir"), int(cmd.Int("seeds")), int(cmd.Int("max-swaps")))
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			return printReports(os.Stdout, reports)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

// analyzeDir runs analyzePreset for every valid preset in dir.
func analyzeDir(ctx context.Context, dir string, seeds, maxSwaps int) ([]PresetReport, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	infos, err := manager.ListConfigs()
	if err != nil {
		return nil, err
	}

	var reports []PresetReport
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			return nil, err
		}
		report, err := analyzePreset(cfg, seeds, maxSwaps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", info.ConfigID, err)
		}
		report.Preset = info.ConfigID
		reports = append(reports, report)
	}
	return reports, nil
}

// analyzePreset plays seeds boards of cfg, using seeds 1..n.
func analyzePreset(cfg *engine.Config, seeds, maxSwaps int) (PresetReport, error) {
	report := PresetReport{
		Preset:    cfg.Name,
		BoardSize: cfg.BoardSize,
		TileTypes: cfg.TileTypes,
		Seeds:     seeds,
	}
	if seeds <= 0 {
		return report, nil
	}

	var windows, hints, swaps, score int
	for seed := 1; seed <= seeds; seed++ {
		c := *cfg
		c.Seed = uint64(seed)
		eng, err := engine.NewEngine(&c)
		if err != nil {
			return report, err
		}

		windows += engine.Scan(eng.Board(), engine.NewMatchMask(c.BoardSize))
		if _, err := eng.Cascade(0); err != nil {
			if !errors.Is(err, engine.ErrCascadeLimit) {
				return report, err
			}
			report.CascadeLimitHits++
			continue
		}
		hints += len(eng.Hints())

		played, stalled, limited := playOut(eng, maxSwaps)
		swaps += played
		score += eng.Score()
		if stalled {
			report.Stalled++
		}
		if limited {
			report.CascadeLimitHits++
		}
	}

	n := float64(seeds)
	report.AvgInitialWindows = float64(windows) / n
	report.AvgHints = float64(hints) / n
	report.AvgSwapsToStall = float64(swaps) / n
	report.AvgScore = float64(score) / n
	return report, nil
}

// playOut applies the first hint until none is left or maxSwaps is reached.
// Cascades resolve instantly. It reports the swaps played, whether the board
// stalled, and whether a cascade hit the pass limit.
func playOut(eng *engine.GameEngine, maxSwaps int) (int, bool, bool) {
	for played := 0; played < maxSwaps; played++ {
		hints := eng.Hints()
		if len(hints) == 0 {
			return played, true, false
		}
		eng.Deselect()
		eng.Click(hints[0].From)
		if eng.Click(hints[0].To) != engine.PressSwapped {
			return played, false, false
		}
		if _, err := eng.Cascade(0); err != nil {
			return played + 1, false, true
		}
	}
	return maxSwaps, false, false
}

func printReports(w io.Writer, reports []PresetReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tSIZE\tTYPES\tSEEDS\tINIT RUNS\tHINTS\tSWAPS\tSCORE\tSTALLED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%.2f\t%.2f\t%.1f\t%.1f\t%d/%d\n",
			r.Preset, r.BoardSize, r.BoardSize, r.TileTypes, r.Seeds,
			r.AvgInitialWindows, r.AvgHints, r.AvgSwapsToStall, r.AvgScore, r.Stalled, r.Seeds)
	}
	return tw.Flush()
}
