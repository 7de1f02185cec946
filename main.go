// Command blockmatch runs block-match boards from the terminal.
//
// It supports three commands:
//  1. "play" – a line-driven shell on stdin for clicking, ticking and inspecting a board
//  2. "simulate" – lets a first-hint bot play a number of swaps and prints a summary
//  3. "configs" – lists the presets found in the config directory
//
// Flags control the config directory, preset, seed and debug logging.
// BLOCKMATCH_* environment variables (or a .env file) override preset fields.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/blockmatch/game/config"
	"github.com/wricardo/blockmatch/game/engine"
	"github.com/wricardo/blockmatch/game/service"
	"github.com/wricardo/blockmatch/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "blockmatch"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// main loads .env, wires the services and runs the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newApp builds the command tree reading from in and writing to out.
func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "match-3 board engine shell",
		Version: Version,
		Reader:  in,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing board presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Value:   config.DefaultName,
				Usage:   "preset to start from",
			},
			&cli.StringFlag{
				Name:  "seed",
				Value: "0",
				Usage: "random seed; 0 uses the preset's seed or a random one",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("BLOCKMATCH_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play a board from stdin commands",
				Action: runPlay,
			},
			{
				Name:  "simulate",
				Usage: "let a bot play the first hint until it runs out of moves",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "moves",
						Value: 100,
						Usage: "maximum number of swaps",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the full result as JSON",
					},
				},
				Action: runSimulate,
			},
			{
				Name:   "configs",
				Usage:  "list available presets",
				Action: runConfigs,
			},
		},
		Action: runPlay,
	}
}

// app holds the services one command invocation works with.
type app struct {
	service service.GameService
	logger  *zap.Logger
	out     io.Writer
	in      io.Reader
}

// newLogger returns a development logger under debug and a quiet
// production logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// initializeServices wires session/config managers and the game service.
func initializeServices(configDir string, logger *zap.Logger) (service.GameService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(logger.Named("session"))
	return service.NewGameService(sessionManager, &envConfigs{Manager: configManager, logger: logger}, logger.Named("service")), nil
}

// envConfigs applies BLOCKMATCH_* overrides to every preset it hands out.
type envConfigs struct {
	*config.Manager
	logger *zap.Logger
}

func (c *envConfigs) LoadConfig(name string) (*engine.Config, error) {
	base, err := c.Manager.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	return config.ApplyEnv(base)
}

func (c *envConfigs) GetDefault() *engine.Config {
	base := c.Manager.GetDefault()
	overlaid, err := config.ApplyEnv(base)
	if err != nil {
		c.logger.Warn("ignoring environment overrides", zap.Error(err))
		return base
	}
	return overlaid
}

func setup(cmd *cli.Command) (*app, error) {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	svc, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return nil, err
	}

	root := cmd.Root()
	return &app{service: svc, logger: logger, out: root.Writer, in: root.Reader}, nil
}

// newSession starts a board from the --preset and --seed flags.
func (a *app) newSession(ctx context.Context, cmd *cli.Command) (*service.SessionInfo, error) {
	seed, err := cast.ToUint64E(cmd.String("seed"))
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", cmd.String("seed"), err)
	}
	return a.service.CreateSession(ctx, cmd.String("preset"), seed)
}

func runConfigs(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	configs, err := a.service.ListConfigs(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tTYPES\tSYMBOLS\tDESCRIPTION")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%s\t%s\n", c.ConfigID, c.Name, c.BoardSize, c.BoardSize, c.TileTypes, c.Symbols, c.Description)
	}
	return tw.Flush()
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	info, err := a.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := a.service.Simulate(ctx, info.ID, int(cmd.Int("moves")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}

	render(a.out, result.Snapshot)
	fmt.Fprintf(a.out, "preset %s seed %d\n", info.ConfigName, info.Config.Seed)
	fmt.Fprintf(a.out, "moves %d/%d  score %d  cascades %d  frames %d\n",
		result.MovesExecuted, result.RequestedMoves, result.EndScore, result.Cascades, result.Frames)
	if result.StoppedReason != "" {
		fmt.Fprintf(a.out, "stopped: %s\n", result.StoppedReason)
	}
	return nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	info, err := a.newSession(ctx, cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s v%s  preset %s  session %s\n", AppName, Version, info.ConfigName, info.ID)
	fmt.Fprintln(a.out, "commands: click X Y | press PX PY | tick [N] | hint | show | json | reset | quit")
	render(a.out, info.Snapshot)

	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		quit, err := a.exec(ctx, info.ID, strings.Fields(line))
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

var errUsage = errors.New("usage")

// exec runs one shell command and reports whether the shell should exit.
func (a *app) exec(ctx context.Context, id string, args []string) (bool, error) {
	switch strings.ToLower(args[0]) {
	case "quit", "exit", "q":
		return true, nil

	case "click", "c":
		if len(args) != 3 {
			return false, fmt.Errorf("%w: click X Y", errUsage)
		}
		x, errX := cast.ToIntE(args[1])
		y, errY := cast.ToIntE(args[2])
		if err := errors.Join(errX, errY); err != nil {
			return false, fmt.Errorf("invalid cell: %w", err)
		}
		res, err := a.service.Click(ctx, id, engine.Position{X: x, Y: y})
		if err != nil {
			return false, err
		}
		a.printClick(res)

	case "press", "p":
		if len(args) != 3 {
			return false, fmt.Errorf("%w: press PX PY", errUsage)
		}
		px, errX := cast.ToFloat64E(args[1])
		py, errY := cast.ToFloat64E(args[2])
		if err := errors.Join(errX, errY); err != nil {
			return false, fmt.Errorf("invalid point: %w", err)
		}
		res, err := a.service.Press(ctx, id, px, py)
		if err != nil {
			return false, err
		}
		a.printClick(res)

	case "tick", "t":
		var res *service.TickResult
		var err error
		if len(args) > 1 {
			frames, convErr := cast.ToIntE(args[1])
			if convErr != nil {
				return false, fmt.Errorf("invalid frame count: %w", convErr)
			}
			res, err = a.service.Tick(ctx, id, frames)
		} else {
			res, err = a.service.Settle(ctx, id)
		}
		if err != nil {
			return false, err
		}
		fmt.Fprintf(a.out, "%d frames  +%d  cascades %d\n", res.Frames, res.ScoreDelta, res.Cascades)
		render(a.out, res.Snapshot)

	case "hint", "h":
		hints, err := a.service.Hints(ctx, id)
		if err != nil {
			return false, err
		}
		if len(hints) == 0 {
			fmt.Fprintln(a.out, "no moves")
			break
		}
		h := hints[0]
		fmt.Fprintf(a.out, "swap (%d,%d) with (%d,%d)  [%d moves available]\n", h.From.X, h.From.Y, h.To.X, h.To.Y, len(hints))

	case "show", "s":
		snap, err := a.service.Snapshot(ctx, id)
		if err != nil {
			return false, err
		}
		render(a.out, snap)

	case "json":
		snap, err := a.service.Snapshot(ctx, id)
		if err != nil {
			return false, err
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return false, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		fmt.Fprintln(a.out, string(data))

	case "reset", "r":
		snap, err := a.service.Reset(ctx, id)
		if err != nil {
			return false, err
		}
		render(a.out, snap)

	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}

func (a *app) printClick(res *service.ClickResult) {
	for _, ev := range res.Events {
		fmt.Fprintln(a.out, ev.Message)
	}
	switch res.Result {
	case engine.PressOutOfGrid:
		fmt.Fprintln(a.out, "outside the board")
	case engine.PressIgnored:
		fmt.Fprintln(a.out, "board is animating; tick first")
	case engine.PressSwapped:
		fmt.Fprintf(a.out, "+%d\n", res.ScoreDelta)
	}
}

// render prints the board with column and row labels.
func render(w io.Writer, snap *engine.Snapshot) {
	fmt.Fprintf(w, "score %d  %s  tick %d\n", snap.Score, snap.Status, snap.Ticks)

	var header strings.Builder
	header.WriteString("   ")
	for x := 0; x < snap.BoardSize; x++ {
		header.WriteString(fmt.Sprintf("%d", x%10))
	}
	fmt.Fprintln(w, header.String())

	for y, row := range snap.Rows {
		fmt.Fprintf(w, "%2d %s\n", y, row)
	}
	if snap.Selected != nil {
		fmt.Fprintf(w, "selected [%d,%d]\n", snap.Selected.X, snap.Selected.Y)
	}
}
